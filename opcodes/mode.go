package opcodes

// AddressingMode is the schema's addressing method letter for an operand.
type AddressingMode string

const (
	ModeNone AddressingMode = ""    // implicit operand
	ModeC    AddressingMode = "C"   // reg field of ModR/M selects a control register
	ModeD    AddressingMode = "D"   // reg field of ModR/M selects a debug register
	ModeE    AddressingMode = "E"   // general-purpose register or memory, via ModR/M
	ModeEST  AddressingMode = "EST" // ModR/M selects an x87 stack register
	ModeG    AddressingMode = "G"   // reg field of ModR/M selects a general register
	ModeH    AddressingMode = "H"   // r/m field selects a general register regardless of mod
	ModeI    AddressingMode = "I"   // immediate
	ModeJ    AddressingMode = "J"   // RIP relative
	ModeM    AddressingMode = "M"   // ModR/M may only refer to memory
	ModeO    AddressingMode = "O"   // offset
	ModeR    AddressingMode = "R"
	ModeS    AddressingMode = "S" // reg field of ModR/M selects a segment register
	ModeST   AddressingMode = "ST"
	ModeT    AddressingMode = "T" // reg field of ModR/M selects a test register
	ModeV    AddressingMode = "V" // reg field of ModR/M selects an XMM register
	ModeW    AddressingMode = "W" // XMM register or memory
	ModeZ    AddressingMode = "Z" // low three bits of the opcode select a general register
)

// AddressingModes lists every mode other than ModeNone. Generated tables
// number the modes from 1 in this order, so new modes go at the end.
var AddressingModes = []AddressingMode{
	ModeC, ModeD, ModeE, ModeEST, ModeG, ModeI, ModeJ, ModeH, ModeM,
	ModeO, ModeR, ModeS, ModeST, ModeT, ModeV, ModeW, ModeZ,
}

var addressingModes = func() map[AddressingMode]int {
	ret := make(map[AddressingMode]int, len(AddressingModes))
	for i, m := range AddressingModes {
		ret[m] = i + 1
	}
	return ret
}()

// ParseAddressingMode returns the addressing mode named by s. The empty
// string is ModeNone.
func ParseAddressingMode(s string) (AddressingMode, bool) {
	if s == "" {
		return ModeNone, true
	}
	m := AddressingMode(s)
	_, ok := addressingModes[m]
	return m, ok
}

// Index returns the mode's position in AddressingModes counting from 1, or
// 0 for ModeNone.
func (m AddressingMode) Index() int {
	return addressingModes[m]
}
