package main

import (
	"embed"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/apparentlymart/x86-meta/opcodes"
)

// A renderer writes table to w. source names the document the table was
// built from.
type renderer func(w io.Writer, source string, table *opcodes.Table) error

var renderers = map[string]renderer{
	"c":    renderC,
	"text": renderText,
	"yaml": renderYAML,
}

// The templates used to render the table as C.
//
//go:embed templates/*_c.txt
var cTemplatesFS embed.FS

var cTemplates = template.Must(template.New("").ParseFS(cTemplatesFS, "templates/*_c.txt"))

const cOpcodesTemplate = "opcodes_c.txt"

type cData struct {
	Source  string
	Modes   []cMode
	Opcodes []cOpcode
	Aliases []cAlias
}

type cMode struct {
	Ident string
	Index int
}

type cOpcode struct {
	Mnem       string
	Prefix     string
	Map        string
	Value      string
	Secondary  int
	Ext        int
	NeedsModRM int
	OpSize     int
	Direction  int
	Acc        int
	Branch     int
	Conver     int
	X87        int
	Operands   []cOperand
	Note       string
}

type cOperand struct {
	AM               string
	Sizes            string
	UsesOpSize       int
	CanBeImm64       int
	SignExtended     int
	WordOrDoubleWord int
	Type             string
	Reg              int
}

type cAlias struct {
	Alias string
	Mnem  string
	Sizes string
}

func renderC(w io.Writer, source string, table *opcodes.Table) error {
	data := cData{Source: source}
	for _, m := range opcodes.AddressingModes {
		data.Modes = append(data.Modes, cMode{Ident: cModeIdent(m), Index: m.Index()})
	}

	for _, v := range table.Variants {
		op := cOpcode{
			Mnem:       makeCString(v.Mnemonic),
			Prefix:     cHex(uint8(v.Prefix)),
			Map:        cHex(uint8(v.Map)),
			Value:      cHex(v.Opcode),
			Secondary:  cOptionalByte(v.Secondary),
			Ext:        cOptionalByte(v.Extension),
			NeedsModRM: cBool(v.ModRM),
			OpSize:     int(v.OperandSize),
			Direction:  int(v.Direction),
			Acc:        cBool(v.Accumulator),
			Branch:     cBool(v.Branch),
			Conver:     cBool(v.Conversion),
			X87:        cBool(v.X87),
			Note:       makeCString(v.Note),
		}
		for _, o := range v.Operands {
			reg := -1
			if o.Register != nil {
				reg = int(o.Register.Num)
			}
			op.Operands = append(op.Operands, cOperand{
				AM:               cModeIdent(o.Mode),
				Sizes:            o.Sizes.String(),
				UsesOpSize:       cBool(o.UsesOperandSize),
				CanBeImm64:       cBool(o.Imm64),
				SignExtended:     cBool(o.SignExtended),
				WordOrDoubleWord: cBool(o.WordOrDoubleword),
				Type:             makeCString(string(o.Type)),
				Reg:              reg,
			})
		}
		data.Opcodes = append(data.Opcodes, op)
	}

	for _, a := range table.Aliases {
		data.Aliases = append(data.Aliases, cAlias{
			Alias: makeCString(a.Spelling),
			Mnem:  makeCString(a.Mnemonic),
			Sizes: opcodes.NewSizes(a.Sizes...).String(),
		})
	}

	err := cTemplates.ExecuteTemplate(w, cOpcodesTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render C tables: %w", err)
	}
	return nil
}

func cModeIdent(m opcodes.AddressingMode) string {
	if m == opcodes.ModeNone {
		return makeIdentMacro("AM", "none")
	}
	return makeIdentMacro("AM", string(m))
}

func cHex(v uint8) string {
	return fmt.Sprintf("0x%02x", v)
}

func cOptionalByte(b opcodes.OptionalByte) int {
	if !b.Valid {
		return -1
	}
	return int(b.Value)
}

func cBool(b bool) int {
	if b {
		return 1
	}
	return 0
}

func renderText(w io.Writer, source string, table *opcodes.Table) error {
	fmt.Fprintf(w, "Opcodes from %s\n\n", source)

	variants := tablewriter.NewWriter(w)
	variants.SetHeader([]string{"Map", "Prefix", "Opcode", "Flags", "Mnemonic", "Operands", "Note"})
	variants.SetAlignment(tablewriter.ALIGN_CENTER)
	variants.SetAutoFormatHeaders(false)
	variants.SetAutoWrapText(false)
	variants.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})
	for _, v := range table.Variants {
		prefix := ""
		if v.Prefix != opcodes.NoPrefix {
			prefix = v.Prefix.String()
		}
		opcode := fmt.Sprintf("%02x", v.Opcode)
		if v.Secondary.Valid {
			opcode += " " + fmt.Sprintf("%02x", v.Secondary.Value)
		}
		operands := make([]string, len(v.Operands))
		for i, o := range v.Operands {
			operands[i] = o.String()
		}
		variants.Append([]string{
			v.Map.String(),
			prefix,
			opcode,
			variantFlags(v),
			v.Mnemonic,
			strings.Join(operands, ", "),
			v.Note,
		})
	}
	variants.Render()

	fmt.Fprintf(w, "\nAliases\n\n")

	aliases := tablewriter.NewWriter(w)
	aliases.SetHeader([]string{"Alias", "Mnemonic", "Sizes"})
	aliases.SetAlignment(tablewriter.ALIGN_CENTER)
	aliases.SetAutoFormatHeaders(false)
	aliases.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})
	for _, a := range table.Aliases {
		sizes := ""
		if len(a.Sizes) > 0 {
			sizes = sizeNames(a.Sizes)
		}
		aliases.Append([]string{a.Spelling, a.Mnemonic, sizes})
	}
	aliases.Render()

	return nil
}

// variantFlags packs the encoding attributes of v into a fixed-width
// column, one character each. Unset attributes are spaces.
func variantFlags(v *opcodes.OpcodeVariant) string {
	var b strings.Builder
	b.WriteByte(bitFlag(v.Direction, 'd', 'D'))
	b.WriteByte(bitFlag(v.OperandSize, 'w', 'W'))
	b.WriteByte(boolFlag(v.Branch, 'b'))
	b.WriteByte(boolFlag(v.Conversion, 'c'))
	switch {
	case v.Extension.Valid:
		b.WriteByte('0' + v.Extension.Value)
	case v.ModRM:
		b.WriteByte('r')
	default:
		b.WriteByte(' ')
	}
	b.WriteByte(boolFlag(v.Accumulator, 'a'))
	return b.String()
}

func bitFlag(b opcodes.Bit, unset, set byte) byte {
	switch b {
	case 0:
		return unset
	case 1:
		return set
	default:
		return ' '
	}
}

func boolFlag(b bool, set byte) byte {
	if b {
		return set
	}
	return ' '
}

func sizeNames(sizes []opcodes.Size) string {
	names := make([]string, len(sizes))
	for i, s := range sizes {
		names[i] = strconv.Itoa(s.Bits())
	}
	return strings.Join(names, ",")
}

type yamlTable struct {
	Source   string        `yaml:"source"`
	Variants []yamlVariant `yaml:"variants"`
	Aliases  []yamlAlias   `yaml:"aliases"`
}

type yamlVariant struct {
	Mnemonic    string        `yaml:"mnemonic"`
	Map         string        `yaml:"map"`
	Opcode      string        `yaml:"opcode"`
	Prefix      string        `yaml:"prefix,omitempty"`
	Secondary   string        `yaml:"secondary,omitempty"`
	Extension   string        `yaml:"extension,omitempty"`
	OperandSize string        `yaml:"op_size,omitempty"`
	Direction   string        `yaml:"direction,omitempty"`
	Flags       []string      `yaml:"flags,flow,omitempty"`
	Operands    []yamlOperand `yaml:"operands,omitempty"`
	Note        string        `yaml:"note,omitempty"`
}

type yamlOperand struct {
	Mode     string   `yaml:"mode,omitempty"`
	Type     string   `yaml:"type,omitempty"`
	Sizes    []string `yaml:"sizes,flow,omitempty"`
	Register string   `yaml:"register,omitempty"`
	Flags    []string `yaml:"flags,flow,omitempty"`
}

type yamlAlias struct {
	Spelling string   `yaml:"spelling"`
	Mnemonic string   `yaml:"mnemonic"`
	Sizes    []string `yaml:"sizes,flow,omitempty"`
}

func renderYAML(w io.Writer, source string, table *opcodes.Table) error {
	doc := yamlTable{Source: source}

	for _, v := range table.Variants {
		yv := yamlVariant{
			Mnemonic:    v.Mnemonic,
			Map:         v.Map.String(),
			Opcode:      fmt.Sprintf("%02x", v.Opcode),
			Secondary:   v.Secondary.String(),
			OperandSize: v.OperandSize.String(),
			Direction:   v.Direction.String(),
			Note:        v.Note,
		}
		if v.Prefix != opcodes.NoPrefix {
			yv.Prefix = v.Prefix.String()
		}
		if v.Extension.Valid {
			yv.Extension = strconv.Itoa(int(v.Extension.Value))
		}
		for _, f := range []struct {
			set  bool
			name string
		}{
			{v.ModRM, "modrm"},
			{v.Accumulator, "accumulator"},
			{v.Branch, "branch"},
			{v.Conversion, "conversion"},
			{v.X87, "x87"},
		} {
			if f.set {
				yv.Flags = append(yv.Flags, f.name)
			}
		}
		for _, o := range v.Operands {
			yo := yamlOperand{
				Mode: string(o.Mode),
				Type: string(o.Type),
			}
			for _, s := range o.Sizes.List() {
				yo.Sizes = append(yo.Sizes, s.String())
			}
			if o.Register != nil {
				yo.Register = o.Register.String()
			}
			for _, f := range []struct {
				set  bool
				name string
			}{
				{o.UsesOperandSize, "operand-size"},
				{o.SignExtended, "sign-extended"},
				{o.Imm64, "imm64"},
				{o.WordOrDoubleword, "word-or-doubleword"},
			} {
				if f.set {
					yo.Flags = append(yo.Flags, f.name)
				}
			}
			yv.Operands = append(yv.Operands, yo)
		}
		doc.Variants = append(doc.Variants, yv)
	}

	for _, a := range table.Aliases {
		ya := yamlAlias{Spelling: a.Spelling, Mnemonic: a.Mnemonic}
		for _, s := range a.Sizes {
			ya.Sizes = append(ya.Sizes, s.String())
		}
		doc.Aliases = append(doc.Aliases, ya)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	err := enc.Encode(doc)
	if err != nil {
		return fmt.Errorf("failed to render YAML: %w", err)
	}
	return enc.Close()
}
