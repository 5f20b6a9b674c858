package opcodes

import (
	"errors"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// OpcodeVariant is one way of encoding a mnemonic.
type OpcodeVariant struct {
	Mnemonic  string
	Prefix    Prefix
	Map       Map
	Opcode    uint8
	Secondary OptionalByte
	Extension OptionalByte
	ModRM     bool

	OperandSize Bit
	Direction   Bit

	Accumulator bool
	Branch      bool
	Conversion  bool
	X87         bool

	Operands []Operand
	Note     string
}

// Table is the assembled opcode table.
type Table struct {
	Variants []*OpcodeVariant

	// Aliases is sorted by spelling.
	Aliases []MnemonicAlias

	// Skipped collects the syntaxes left out because their operands could
	// not be classified. It is nil if there were none.
	Skipped error

	bySpelling map[string]string
	byMnemonic map[string][]*OpcodeVariant
}

// Lookup returns the variants a mnemonic spelling can encode to, in table
// order.
func (t *Table) Lookup(spelling string) []*OpcodeVariant {
	if mnem, ok := t.bySpelling[spelling]; ok {
		return t.byMnemonic[mnem]
	}
	return t.byMnemonic[spelling]
}

// DefaultSkipModes are the addressing modes the encoder has no support for
// in long mode.
var DefaultSkipModes = []AddressingMode{ModeC, ModeD, ModeS}

// An Assembler builds the opcode table from a reference document.
type Assembler struct {
	// Aliases receives every mnemonic spelling seen in the document. If
	// nil, a new table is used.
	Aliases *AliasTable

	// SkipModes lists addressing modes whose syntaxes are left out.
	SkipModes []AddressingMode

	// InvalidNote marks entries invalid in 64-bit mode. If empty,
	// DefaultInvalidNote is used.
	InvalidNote string

	Log logrus.FieldLogger
}

// NewAssembler returns an Assembler with the built-in aliases and the
// default skip modes.
func NewAssembler() *Assembler {
	return &Assembler{
		Aliases:   NewAliasTable(),
		SkipModes: DefaultSkipModes,
	}
}

// Assemble builds the table for ref. The maps and groups are processed in
// document order and the variants keep that order.
func (a *Assembler) Assemble(ref *Reference) (*Table, error) {
	if ref == nil || len(ref.Maps) == 0 {
		return nil, malformedf("no opcode maps")
	}
	if a.Aliases == nil {
		a.Aliases = NewAliasTable()
	}
	log := a.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	// Every spelling is registered before anything is classified, so the
	// alias table doesn't depend on how far the scan has got.
	err := a.registerMnemonics(ref)
	if err != nil {
		return nil, err
	}

	var skipped *multierror.Error
	table := &Table{
		bySpelling: make(map[string]string),
		byMnemonic: make(map[string][]*OpcodeVariant),
	}
	for _, m := range ref.Maps {
		if m.Map != MapOneByte && m.Map != MapTwoByte {
			return nil, malformedf("unknown opcode map %s", m.Map)
		}
		for _, group := range m.Groups {
			value, err := parseOpcodeValue(m.Map, group.Value)
			if err != nil {
				return nil, malformedf("pri_opcd in map %s: %v", m.Map, err)
			}

			variants, skips, invalid, err := a.assembleGroup(log, m.Map, value, group)
			if err != nil {
				return nil, err
			}
			if invalid {
				log.WithFields(logrus.Fields{
					"map":   m.Map.String(),
					"group": group.Value,
				}).Debug("Dropping group invalid in 64-bit mode")
				continue
			}

			table.Variants = append(table.Variants, variants...)
			skipped = multierror.Append(skipped, skips...)
		}
	}

	for _, v := range table.Variants {
		table.byMnemonic[v.Mnemonic] = append(table.byMnemonic[v.Mnemonic], v)
	}
	table.Aliases = a.Aliases.Aliases()
	for _, alias := range table.Aliases {
		table.bySpelling[alias.Spelling] = alias.Mnemonic
	}
	table.Skipped = skipped.ErrorOrNil()

	return table, nil
}

func (a *Assembler) registerMnemonics(ref *Reference) error {
	for _, m := range ref.Maps {
		for _, group := range m.Groups {
			for _, entry := range group.Entries {
				info, err := NormalizeEntry(entry, a.InvalidNote)
				if err != nil {
					return err
				}
				if info.Invalid64 {
					continue
				}
				for _, syntax := range entry.Syntaxes {
					mnem := normalizeMnemonic(syntax.Mnemonic)
					if mnem == "" {
						continue
					}
					a.Aliases.Register(mnem)
				}
			}
		}
	}
	return nil
}

// assembleGroup returns the variants of one primary opcode group. If any
// entry is invalid in 64-bit mode, the whole group is reported invalid, as
// the opcode is reused for something else in long mode.
func (a *Assembler) assembleGroup(log logrus.FieldLogger, m Map, value uint8, group *Group) (variants []*OpcodeVariant, skips []error, invalid bool, err error) {
	for _, entry := range group.Entries {
		info, err := NormalizeEntry(entry, a.InvalidNote)
		if err != nil {
			return nil, nil, false, err
		}
		if info.Invalid64 {
			invalid = true
			continue
		}

		for _, syntax := range entry.Syntaxes {
			mnem := normalizeMnemonic(syntax.Mnemonic)
			if mnem == "" {
				continue
			}

			fields := logrus.Fields{
				"map":      m.String(),
				"group":    group.Value,
				"mnemonic": mnem,
			}

			operands, err := classifySyntax(syntax)
			if err != nil {
				if !errors.Is(err, ErrUnsupportedOperand) && !errors.Is(err, ErrUnsupportedShape) {
					return nil, nil, false, err
				}
				log.WithFields(fields).WithError(err).Debug("Skipping syntax")
				skips = append(skips, &SyntaxError{Map: m, Group: value, Mnemonic: mnem, Err: err})
				continue
			}

			if mode, ok := a.skippedMode(operands); ok {
				log.WithFields(fields).WithField("mode", string(mode)).Debug("Skipping syntax with unsupported addressing mode")
				continue
			}

			variants = append(variants, &OpcodeVariant{
				Mnemonic:    mnem,
				Prefix:      info.Prefix,
				Map:         m,
				Opcode:      value,
				Secondary:   info.Secondary,
				Extension:   CompensateExtension(value, info.Extension),
				ModRM:       info.ModRM,
				OperandSize: info.OperandSize,
				Direction:   info.Direction,
				Accumulator: info.Accumulator,
				Branch:      info.Branch,
				Conversion:  info.Conversion,
				X87:         info.X87,
				Operands:    operands,
				Note:        info.Note,
			})
		}
	}

	return variants, skips, invalid, nil
}

func (a *Assembler) skippedMode(operands []Operand) (AddressingMode, bool) {
	for _, op := range operands {
		for _, mode := range a.SkipModes {
			if op.Mode == mode {
				return mode, true
			}
		}
	}
	return ModeNone, false
}

func normalizeMnemonic(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
