package opcodes

// OperandType is the schema's operand type code.
type OperandType string

const (
	TypeNone OperandType = ""
	TypeB    OperandType = "b"   // byte
	TypeBS   OperandType = "bs"  // byte, sign-extended to the destination size
	TypeBSS  OperandType = "bss" // byte, sign-extended to the stack pointer size
	TypeD    OperandType = "d"   // doubleword
	TypeDQP  OperandType = "dqp" // doubleword, or quadword promoted by REX.W
	TypeQ    OperandType = "q"   // quadword
	TypeSS   OperandType = "ss"  // scalar single-precision element of an XMM register
	TypeSD   OperandType = "sd"  // scalar double-precision element of an XMM register
	TypeV    OperandType = "v"   // word or doubleword, by operand-size attribute
	TypeVDS  OperandType = "vds" // word or doubleword, or doubleword sign-extended to 64 bits
	TypeVQ   OperandType = "vq"  // quadword, or word with an operand-size prefix
	TypeVQP  OperandType = "vqp" // word or doubleword, or quadword promoted by REX.W
	TypeVS   OperandType = "vs"  // word or doubleword sign-extended to the stack pointer size
	TypeW    OperandType = "w"   // word

	// x87 memory operands.
	TypeSR OperandType = "sr" // single-precision real
	TypeDR OperandType = "dr" // double-precision real
	TypeER OperandType = "er" // extended-precision real
	TypeWI OperandType = "wi" // word integer
	TypeDI OperandType = "di" // doubleword integer
	TypeQI OperandType = "qi" // quadword integer

	// TypeOne is the implicit immediate 1 of the shift and rotate forms.
	TypeOne OperandType = "1"
)

// Scalar single and double precision share the 16 and 32-bit slots with the
// ss and sd suffixed aliases in alias.go.
var operandTypeSizes = map[OperandType][]Size{
	TypeB:   {Size8},
	TypeBS:  {Size8},
	TypeBSS: {Size8},
	TypeD:   {Size32},
	TypeDQP: {Size16, Size32, Size64},
	TypeQ:   {Size64},
	TypeSS:  {Size16},
	TypeSD:  {Size32},
	TypeV:   {Size16, Size32},
	TypeVDS: {Size16, Size32},
	TypeVQ:  {Size16, Size64},
	TypeVQP: {Size16, Size32, Size64},
	TypeVS:  {Size16, Size32},
	TypeW:   {Size16},
	TypeSR:  {Size32},
	TypeDR:  {Size64},
	TypeER:  {SizeST},
	TypeWI:  {Size16},
	TypeDI:  {Size32},
	TypeQI:  {Size64},
	TypeOne: {Size8},
}

// Types whose size follows the operand-size attribute.
var operandSizeTypes = map[OperandType]bool{
	TypeV:   true,
	TypeVDS: true,
	TypeVQ:  true,
	TypeVQP: true,
	TypeVS:  true,
	TypeW:   true,
}

var signExtendedTypes = map[OperandType]bool{
	TypeBS:  true,
	TypeBSS: true,
	TypeVDS: true,
}

// Types that take a full 64-bit immediate when the operation size is 64
// bits, as in MOV r64, imm64.
var imm64Types = map[OperandType]bool{
	TypeVQP: true,
}

var wordOrDoublewordTypes = map[OperandType]bool{
	TypeV:  true,
	TypeVQ: true,
}

// ParseOperandType returns the operand type named by s. The empty string is
// TypeNone.
func ParseOperandType(s string) (OperandType, bool) {
	if s == "" {
		return TypeNone, true
	}
	t := OperandType(s)
	_, ok := operandTypeSizes[t]
	return t, ok
}

// Sizes returns the set of sizes an operand of type t can have. It is
// empty only for TypeNone.
func (t OperandType) Sizes() Sizes {
	return NewSizes(operandTypeSizes[t]...)
}
