package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apparentlymart/x86-meta/opcodes"
)

type xmlReference struct {
	XMLName xml.Name `xml:"x86reference"`
	OneByte []xmlMap `xml:"one-byte"`
	TwoByte []xmlMap `xml:"two-byte"`
}

type xmlMap struct {
	Groups []xmlGroup `xml:"pri_opcd"`
}

type xmlGroup struct {
	Value   string     `xml:"value,attr"`
	Entries []xmlEntry `xml:"entry"`
}

type xmlEntry struct {
	Attr      string `xml:"attr,attr"`
	OpSize    string `xml:"op_size,attr"`
	Direction string `xml:"direction,attr"`
	R         string `xml:"r,attr"`

	Pref    string `xml:"pref"`
	OpcdExt string `xml:"opcd_ext"`
	SecOpcd string `xml:"sec_opcd"`

	Grp1 []string `xml:"grp1"`
	Grp2 []string `xml:"grp2"`
	Grp3 []string `xml:"grp3"`

	Note     xmlNote     `xml:"note"`
	Syntaxes []xmlSyntax `xml:"syntax"`
}

type xmlNote struct {
	Brief string `xml:"brief"`
	Text  string `xml:",chardata"`
}

type xmlSyntax struct {
	Mnem []string     `xml:"mnem"`
	Src  []xmlOperand `xml:"src"`
	Dst  []xmlOperand `xml:"dst"`
}

// The operand's addressing method and type come either as <a> and <t>
// children or as attributes, depending on whether the operand is shown in
// the instruction syntax.
type xmlOperand struct {
	A string `xml:"a"`
	T string `xml:"t"`

	Address   string `xml:"address,attr"`
	Type      string `xml:"type,attr"`
	Displayed string `xml:"displayed,attr"`
	Group     string `xml:"group,attr"`
	Nr        string `xml:"nr,attr"`

	Text string `xml:",chardata"`
}

func loadReferenceFile(filename string) (*opcodes.Reference, error) {
	r, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	ref, err := loadReference(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return ref, nil
}

// loadReference reads an x86reference document. The one-byte maps come
// before the two-byte maps in the result, and everything else keeps its
// document order.
func loadReference(r io.Reader) (*opcodes.Reference, error) {
	var doc xmlReference
	err := xml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", opcodes.ErrMalformedDocument, err)
	}
	if len(doc.OneByte) == 0 && len(doc.TwoByte) == 0 {
		return nil, fmt.Errorf("%w: no one-byte or two-byte opcode maps", opcodes.ErrMalformedDocument)
	}

	ref := &opcodes.Reference{}
	for _, m := range doc.OneByte {
		ref.Maps = append(ref.Maps, m.convert(opcodes.MapOneByte))
	}
	for _, m := range doc.TwoByte {
		ref.Maps = append(ref.Maps, m.convert(opcodes.MapTwoByte))
	}
	return ref, nil
}

func (m *xmlMap) convert(which opcodes.Map) *opcodes.OpcodeMap {
	ret := &opcodes.OpcodeMap{Map: which}
	for _, g := range m.Groups {
		group := &opcodes.Group{Value: strings.TrimSpace(g.Value)}
		for i := range g.Entries {
			group.Entries = append(group.Entries, g.Entries[i].convert())
		}
		ret.Groups = append(ret.Groups, group)
	}
	return ret
}

func (e *xmlEntry) convert() *opcodes.Entry {
	ret := &opcodes.Entry{
		Attr:        strings.TrimSpace(e.Attr),
		OperandSize: strings.TrimSpace(e.OpSize),
		Direction:   strings.TrimSpace(e.Direction),
		ModRM:       strings.TrimSpace(e.R),
		Prefix:      strings.TrimSpace(e.Pref),
		Extension:   strings.TrimSpace(e.OpcdExt),
		Secondary:   strings.TrimSpace(e.SecOpcd),
		Note:        e.Note.text(),
	}

	for _, grps := range [][]string{e.Grp1, e.Grp2, e.Grp3} {
		for _, grp := range grps {
			if grp = strings.TrimSpace(grp); grp != "" {
				ret.Groups = append(ret.Groups, grp)
			}
		}
	}

	for _, s := range e.Syntaxes {
		syntax := &opcodes.Syntax{}
		if len(s.Mnem) > 0 {
			syntax.Mnemonic = strings.TrimSpace(s.Mnem[0])
		}
		for i := range s.Src {
			syntax.Sources = append(syntax.Sources, s.Src[i].convert())
		}
		for i := range s.Dst {
			syntax.Destinations = append(syntax.Destinations, s.Dst[i].convert())
		}
		ret.Syntaxes = append(ret.Syntaxes, syntax)
	}

	return ret
}

func (n *xmlNote) text() string {
	if brief := strings.TrimSpace(n.Brief); brief != "" {
		return brief
	}
	return strings.TrimSpace(n.Text)
}

func (o *xmlOperand) convert() *opcodes.RawOperand {
	ret := &opcodes.RawOperand{
		Mode:   strings.TrimSpace(o.A),
		Type:   strings.TrimSpace(o.T),
		Text:   strings.TrimSpace(o.Text),
		Hidden: strings.TrimSpace(o.Displayed) == "no",
		Group:  strings.TrimSpace(o.Group),
		Number: strings.TrimSpace(o.Nr),
	}
	if ret.Mode == "" {
		ret.Mode = strings.TrimSpace(o.Address)
	}
	if ret.Type == "" {
		ret.Type = strings.TrimSpace(o.Type)
	}
	return ret
}
