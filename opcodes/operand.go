package opcodes

import (
	"strconv"
	"strings"
)

// Operand is a classified operand of an OpcodeVariant.
type Operand struct {
	Mode  AddressingMode
	Type  OperandType
	Sizes Sizes

	UsesOperandSize  bool // size follows the operand-size attribute
	SignExtended     bool
	Imm64            bool // a 64-bit immediate when the operation size is 64 bits
	WordOrDoubleword bool

	// Register is set for operands that name a general-purpose register
	// directly.
	Register *Register
}

// An operandRule reclassifies operands the generic lookup would get wrong.
type operandRule struct {
	Name     string
	Matches  func(raw *RawOperand) bool
	Classify func(raw *RawOperand) (Operand, error)
}

// operandRules are tried in order and the first match wins. Operands that
// match none go through classifyGeneric.
var operandRules = []operandRule{
	{
		// The x87 top of stack is written as a plain operand in the schema.
		// It isn't really an addressing mode, but treating it as one lets
		// the encoder match ST against it directly.
		Name: "fpu-stack",
		Matches: func(raw *RawOperand) bool {
			return strings.TrimSpace(raw.Text) == "ST"
		},
		Classify: func(raw *RawOperand) (Operand, error) {
			return Operand{Mode: ModeST, Sizes: NewSizes(SizeST)}, nil
		},
	},
	{
		Name: "literal-one",
		Matches: func(raw *RawOperand) bool {
			return strings.TrimSpace(raw.Mode) == "" && strings.TrimSpace(raw.Text) == "1"
		},
		Classify: func(raw *RawOperand) (Operand, error) {
			return newOperand(ModeI, TypeOne), nil
		},
	},
}

// ClassifyOperand turns a schema operand into an Operand.
func ClassifyOperand(raw *RawOperand) (Operand, error) {
	for _, rule := range operandRules {
		if rule.Matches(raw) {
			return rule.Classify(raw)
		}
	}
	return classifyGeneric(raw)
}

func classifyGeneric(raw *RawOperand) (Operand, error) {
	mode, ok := ParseAddressingMode(strings.TrimSpace(raw.Mode))
	if !ok {
		return Operand{}, unsupportedOperandf("addressing mode %q", raw.Mode)
	}
	typ, ok := ParseOperandType(strings.TrimSpace(raw.Type))
	if !ok {
		return Operand{}, unsupportedOperandf("operand type %q", raw.Type)
	}

	op := newOperand(mode, typ)

	if raw.Group == "gen" && raw.Number != "" {
		num, err := strconv.ParseUint(strings.TrimSpace(raw.Number), 10, 8)
		if err != nil {
			return Operand{}, unsupportedOperandf("register number %q", raw.Number)
		}
		reg, err := resolveRegister(uint8(num), typ)
		if err != nil {
			return Operand{}, err
		}
		op.Register = &reg
	}

	return op, nil
}

func newOperand(mode AddressingMode, typ OperandType) Operand {
	return Operand{
		Mode:             mode,
		Type:             typ,
		Sizes:            typ.Sizes(),
		UsesOperandSize:  operandSizeTypes[typ],
		SignExtended:     signExtendedTypes[typ],
		Imm64:            mode == ModeI && imm64Types[typ],
		WordOrDoubleword: wordOrDoublewordTypes[typ],
	}
}

// String returns the schema notation for the operand, such as Evqp.
func (op Operand) String() string {
	if op.Register != nil {
		return op.Register.String()
	}
	return string(op.Mode) + string(op.Type)
}
