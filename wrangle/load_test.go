package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/apparentlymart/x86-meta/opcodes"
)

func TestLoadReferenceFile(t *testing.T) {
	ref, err := loadReferenceFile("testdata/x86reference.xml")
	if err != nil {
		t.Fatalf("loadReferenceFile(): got unexpected error: %v", err)
	}

	if len(ref.Maps) != 2 {
		t.Fatalf("loadReferenceFile(): got %d maps, want 2", len(ref.Maps))
	}
	if ref.Maps[0].Map != opcodes.MapOneByte || ref.Maps[1].Map != opcodes.MapTwoByte {
		t.Fatalf("loadReferenceFile(): maps are %s, %s", ref.Maps[0].Map, ref.Maps[1].Map)
	}

	var values []string
	for _, g := range ref.Maps[1].Groups {
		values = append(values, g.Value)
	}
	wantValues := []string{"0F20", "0FAF", "0F5E", "0FB6"}
	if diff := cmp.Diff(wantValues, values); diff != "" {
		t.Fatalf("two-byte group values: (-want, +got)\n%s", diff)
	}

	tests := []struct {
		Name  string
		Map   int
		Group int
		Want  *opcodes.Entry
	}{
		{
			Name:  "add",
			Map:   0,
			Group: 0,
			Want: &opcodes.Entry{
				OperandSize: "0",
				Direction:   "0",
				ModRM:       "yes",
				Groups:      []string{"gen", "arith", "binary"},
				Note:        "Add",
				Syntaxes: []*opcodes.Syntax{{
					Mnemonic:     "ADD",
					Sources:      []*opcodes.RawOperand{{Mode: "G", Type: "b"}},
					Destinations: []*opcodes.RawOperand{{Mode: "E", Type: "b"}},
				}},
			},
		},
		{
			Name:  "accumulator",
			Map:   0,
			Group: 1,
			Want: &opcodes.Entry{
				Attr:        "acc",
				OperandSize: "0",
				Direction:   "0",
				Groups:      []string{"gen", "arith", "binary"},
				Note:        "Add",
				Syntaxes: []*opcodes.Syntax{{
					Mnemonic:     "ADD",
					Sources:      []*opcodes.RawOperand{{Mode: "I", Type: "b"}},
					Destinations: []*opcodes.RawOperand{{Type: "b", Text: "AL", Group: "gen", Number: "0"}},
				}},
			},
		},
		{
			Name:  "literal one",
			Map:   0,
			Group: 6,
			Want: &opcodes.Entry{
				OperandSize: "0",
				Extension:   "4",
				Groups:      []string{"gen", "shftrot"},
				Note:        "Shift",
				Syntaxes: []*opcodes.Syntax{{
					Mnemonic:     "SHL",
					Sources:      []*opcodes.RawOperand{{Type: "b", Text: "1"}},
					Destinations: []*opcodes.RawOperand{{Mode: "E", Type: "b"}},
				}},
			},
		},
		{
			Name:  "fpu stack",
			Map:   0,
			Group: 8,
			Want: &opcodes.Entry{
				Extension: "5",
				Groups:    []string{"x87fpu", "arith"},
				Note:      "Reverse Subtract and Pop",
				Syntaxes: []*opcodes.Syntax{
					{
						Mnemonic:     "FSUBRP",
						Sources:      []*opcodes.RawOperand{{Text: "ST"}},
						Destinations: []*opcodes.RawOperand{{Mode: "EST", Text: "STi"}},
					},
					{
						Mnemonic:     "FSUBRP",
						Sources:      []*opcodes.RawOperand{{Text: "ST", Hidden: true}},
						Destinations: []*opcodes.RawOperand{{Mode: "EST", Text: "ST1", Hidden: true}},
					},
				},
			},
		},
		{
			Name:  "prefixed",
			Map:   1,
			Group: 2,
			Want: &opcodes.Entry{
				ModRM:  "yes",
				Prefix: "F2",
				Groups: []string{"sse2", "simdfp", "arith"},
				Note:   "Divide Scalar Double-FP Values",
				Syntaxes: []*opcodes.Syntax{{
					Mnemonic:     "DIVSD",
					Sources:      []*opcodes.RawOperand{{Mode: "W", Type: "sd"}},
					Destinations: []*opcodes.RawOperand{{Mode: "V", Type: "sd"}},
				}},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			entries := ref.Maps[test.Map].Groups[test.Group].Entries
			if len(entries) != 1 {
				t.Fatalf("got %d entries, want 1", len(entries))
			}
			if diff := cmp.Diff(test.Want, entries[0], cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("entry: (-want, +got)\n%s", diff)
			}
		})
	}
}

func TestLoadReferenceSecondaryOpcode(t *testing.T) {
	ref, err := loadReference(strings.NewReader(`
<x86reference>
  <one-byte>
    <pri_opcd value="D9">
      <entry>
        <opcd_ext>5</opcd_ext>
        <sec_opcd escape="yes">E8</sec_opcd>
        <syntax><mnem>FLD1</mnem><dst group="x87fpu">ST</dst></syntax>
        <note><brief>Load Constant +1.0</brief></note>
      </entry>
    </pri_opcd>
  </one-byte>
</x86reference>`))
	if err != nil {
		t.Fatalf("loadReference(): got unexpected error: %v", err)
	}

	entry := ref.Maps[0].Groups[0].Entries[0]
	if entry.Secondary != "E8" || entry.Extension != "5" {
		t.Fatalf("entry has sec_opcd %q and opcd_ext %q", entry.Secondary, entry.Extension)
	}
	dst := entry.Syntaxes[0].Destinations[0]
	if dst.Text != "ST" || dst.Group != "x87fpu" {
		t.Fatalf("destination is %+v", dst)
	}
}

func TestLoadReferenceMalformed(t *testing.T) {
	tests := []struct {
		Name string
		Doc  string
	}{
		{"empty", ``},
		{"wrong root", `<reference><one-byte/></reference>`},
		{"no maps", `<x86reference version="1.12"></x86reference>`},
		{"truncated", `<x86reference><one-byte><pri_opcd value="00">`},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			_, err := loadReference(strings.NewReader(test.Doc))
			if !errors.Is(err, opcodes.ErrMalformedDocument) {
				t.Fatalf("loadReference(): got error %v, want %v", err, opcodes.ErrMalformedDocument)
			}
		})
	}
}

func TestLoadReferenceFileMissing(t *testing.T) {
	_, err := loadReferenceFile("testdata/does-not-exist.xml")
	if err == nil {
		t.Fatalf("loadReferenceFile(): got no error for a missing file")
	}
}
