package opcodes

import (
	"strconv"
	"strings"
)

// DefaultInvalidNote is the note text that marks an entry as invalid in
// 64-bit mode.
const DefaultInvalidNote = "Invalid Instruction in 64-Bit Mode"

// EntryInfo holds the attributes of an entry shared by all its syntaxes.
type EntryInfo struct {
	Prefix      Prefix
	Accumulator bool
	OperandSize Bit
	Direction   Bit
	Extension   OptionalByte
	Secondary   OptionalByte
	ModRM       bool

	Branch     bool
	Conversion bool
	X87        bool

	Note string

	// Invalid64 is set when the entry's note says it is invalid in 64-bit
	// mode. The whole group it belongs to is left out of the table.
	Invalid64 bool
}

// NormalizeEntry extracts the attributes of entry. invalidNote is the note
// text marking 64-bit invalid entries; DefaultInvalidNote is used if it is
// empty.
func NormalizeEntry(entry *Entry, invalidNote string) (EntryInfo, error) {
	if invalidNote == "" {
		invalidNote = DefaultInvalidNote
	}

	info := EntryInfo{
		Accumulator: entry.Attr == "acc",
		ModRM:       entry.ModRM == "yes",
		Note:        strings.TrimSpace(entry.Note),
	}
	info.Invalid64 = strings.Contains(info.Note, invalidNote)

	if entry.Prefix != "" {
		pref, err := parseHexByte(entry.Prefix)
		if err != nil {
			return EntryInfo{}, malformedf("prefix: %v", err)
		}
		info.Prefix = Prefix(pref)
	}

	var err error
	info.OperandSize, err = parseBit(entry.OperandSize)
	if err != nil {
		return EntryInfo{}, malformedf("op_size: %v", err)
	}
	info.Direction, err = parseBit(entry.Direction)
	if err != nil {
		return EntryInfo{}, malformedf("direction: %v", err)
	}

	// A secondary opcode byte fully determines the ModR/M byte, so any
	// extension alongside it is redundant.
	switch {
	case strings.TrimSpace(entry.Secondary) != "":
		sec, err := parseHexByte(entry.Secondary)
		if err != nil {
			return EntryInfo{}, malformedf("sec_opcd: %v", err)
		}
		info.Secondary = Byte(sec)
	case strings.TrimSpace(entry.Extension) != "":
		ext, err := strconv.ParseUint(strings.TrimSpace(entry.Extension), 10, 8)
		if err != nil || ext > 7 {
			return EntryInfo{}, malformedf("opcd_ext: invalid extension %q", entry.Extension)
		}
		info.Extension = Byte(uint8(ext))
	}

	for _, grp := range entry.Groups {
		switch strings.TrimSpace(grp) {
		case "branch":
			info.Branch = true
		case "conver":
			info.Conversion = true
		case "x87fpu":
			info.X87 = true
		}
	}

	return info, nil
}
