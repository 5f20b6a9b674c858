package opcodes

// The types below are the attributed tree of the reference document, as
// produced by a document reader. Text fields hold the document's text
// unmodified apart from surrounding whitespace; all interpretation happens
// in this package.

// Reference is the root of the document.
type Reference struct {
	Maps []*OpcodeMap
}

// OpcodeMap is one instruction map (<one-byte> or <two-byte>).
type OpcodeMap struct {
	Map    Map
	Groups []*Group
}

// Group is the set of entries sharing a primary opcode value (<pri_opcd>).
type Group struct {
	Value   string
	Entries []*Entry
}

// Entry is a single <entry>.
type Entry struct {
	Attr        string // attr attribute, "acc" for accumulator forms
	OperandSize string // op_size attribute
	Direction   string // direction attribute
	ModRM       string // r attribute
	Prefix      string // <pref>
	Extension   string // <opcd_ext>
	Secondary   string // <sec_opcd>
	Groups      []string
	Note        string // <note><brief>
	Syntaxes    []*Syntax
}

// Syntax is one <syntax> of an entry.
type Syntax struct {
	Mnemonic     string
	Sources      []*RawOperand
	Destinations []*RawOperand
}

// RawOperand is a <src> or <dst> tag. Mode and Type come from the <a> and
// <t> children, or the address and type attributes.
type RawOperand struct {
	Mode   string
	Type   string
	Text   string
	Hidden bool   // displayed="no"
	Group  string // group attribute, "gen" for general registers
	Number string // nr attribute
}

// visible returns the operands that are displayed in assembly syntax.
func visible(ops []*RawOperand) []*RawOperand {
	var ret []*RawOperand
	for _, op := range ops {
		if op.Hidden {
			continue
		}
		ret = append(ret, op)
	}
	return ret
}
