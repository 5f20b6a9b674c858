package opcodes

import "fmt"

// Register is a general-purpose register named directly by the schema,
// such as the accumulator of ADD AL, Ib.
type Register struct {
	Num  uint8
	Size Size
}

// registerSizes maps a width suffix to the register size it selects. v and
// vqp have no single width; the assembler treats them as EAX-style and
// RAX-style registers respectively.
var registerSizes = map[OperandType]Size{
	TypeB:   Size8,
	TypeW:   Size16,
	TypeD:   Size32,
	TypeV:   Size32,
	TypeQ:   Size64,
	TypeVQ:  Size64,
	TypeVQP: Size64,
}

var registerNames = map[Size][16]string{
	Size8: {
		"al", "cl", "dl", "bl", "ah", "ch", "dh", "bh",
		"r8b", "r9b", "r10b", "r11b", "r12b", "r13b", "r14b", "r15b",
	},
	Size16: {
		"ax", "cx", "dx", "bx", "sp", "bp", "si", "di",
		"r8w", "r9w", "r10w", "r11w", "r12w", "r13w", "r14w", "r15w",
	},
	Size32: {
		"eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi",
		"r8d", "r9d", "r10d", "r11d", "r12d", "r13d", "r14d", "r15d",
	},
	Size64: {
		"rax", "rcx", "rdx", "rbx", "rsp", "rbp", "rsi", "rdi",
		"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
	},
}

func resolveRegister(num uint8, width OperandType) (Register, error) {
	size, ok := registerSizes[width]
	if !ok {
		return Register{}, unsupportedOperandf("no register width for type %q", width)
	}
	if num > 15 {
		return Register{}, unsupportedOperandf("register number %d out of range", num)
	}
	return Register{Num: num, Size: size}, nil
}

func (r Register) String() string {
	names, ok := registerNames[r.Size]
	if !ok || r.Num > 15 {
		return fmt.Sprintf("reg%d/%s", r.Num, r.Size)
	}
	return names[r.Num]
}
