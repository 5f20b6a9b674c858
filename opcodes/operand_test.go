package opcodes

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestClassifyOperand(t *testing.T) {
	tests := []struct {
		Name string
		Raw  RawOperand
		Want Operand
	}{
		{
			Name: "register or memory promoted by REX.W",
			Raw:  RawOperand{Mode: "E", Type: "vqp"},
			Want: Operand{
				Mode:            ModeE,
				Type:            TypeVQP,
				Sizes:           NewSizes(Size16, Size32, Size64),
				UsesOperandSize: true,
			},
		},
		{
			Name: "64-bit immediate",
			Raw:  RawOperand{Mode: "I", Type: "vqp"},
			Want: Operand{
				Mode:            ModeI,
				Type:            TypeVQP,
				Sizes:           NewSizes(Size16, Size32, Size64),
				UsesOperandSize: true,
				Imm64:           true,
			},
		},
		{
			Name: "sign-extended byte immediate",
			Raw:  RawOperand{Mode: "I", Type: "bs"},
			Want: Operand{
				Mode:         ModeI,
				Type:         TypeBS,
				Sizes:        NewSizes(Size8),
				SignExtended: true,
			},
		},
		{
			Name: "push register",
			Raw:  RawOperand{Mode: "Z", Type: "vq"},
			Want: Operand{
				Mode:             ModeZ,
				Type:             TypeVQ,
				Sizes:            NewSizes(Size16, Size64),
				UsesOperandSize:  true,
				WordOrDoubleword: true,
			},
		},
		{
			Name: "flat type attribute spelling",
			Raw:  RawOperand{Mode: " W ", Type: " sd "},
			Want: Operand{
				Mode:  ModeW,
				Type:  TypeSD,
				Sizes: NewSizes(Size32),
			},
		},
		{
			Name: "x87 extended real",
			Raw:  RawOperand{Mode: "M", Type: "er"},
			Want: Operand{
				Mode:  ModeM,
				Type:  TypeER,
				Sizes: NewSizes(SizeST),
			},
		},
		{
			Name: "implicit AL",
			Raw:  RawOperand{Type: "b", Group: "gen", Number: "0", Text: "AL"},
			Want: Operand{
				Type:     TypeB,
				Sizes:    NewSizes(Size8),
				Register: &Register{Num: 0, Size: Size8},
			},
		},
		{
			Name: "implicit eAX",
			Raw:  RawOperand{Type: "v", Group: "gen", Number: "0", Text: "eAX"},
			Want: Operand{
				Type:             TypeV,
				Sizes:            NewSizes(Size16, Size32),
				UsesOperandSize:  true,
				WordOrDoubleword: true,
				Register:         &Register{Num: 0, Size: Size32},
			},
		},
		{
			Name: "implicit rDX",
			Raw:  RawOperand{Type: "vqp", Group: "gen", Number: "2", Text: "rDX"},
			Want: Operand{
				Type:            TypeVQP,
				Sizes:           NewSizes(Size16, Size32, Size64),
				UsesOperandSize: true,
				Register:        &Register{Num: 2, Size: Size64},
			},
		},
		{
			Name: "non-general register number is ignored",
			Raw:  RawOperand{Mode: "S", Type: "w", Group: "seg", Number: "0", Text: "ES"},
			Want: Operand{
				Mode:            ModeS,
				Type:            TypeW,
				Sizes:           NewSizes(Size16),
				UsesOperandSize: true,
			},
		},
		{
			Name: "top of stack overrides declared mode",
			Raw:  RawOperand{Mode: "E", Type: "b", Text: "ST"},
			Want: Operand{
				Mode:  ModeST,
				Sizes: NewSizes(SizeST),
			},
		},
		{
			Name: "top of stack overrides unknown type",
			Raw:  RawOperand{Mode: "Q", Type: "zz", Text: " ST "},
			Want: Operand{
				Mode:  ModeST,
				Sizes: NewSizes(SizeST),
			},
		},
		{
			Name: "literal one",
			Raw:  RawOperand{Type: "b", Text: "1"},
			Want: Operand{
				Mode:  ModeI,
				Type:  TypeOne,
				Sizes: NewSizes(Size8),
			},
		},
		{
			Name: "explicit immediate is not a literal one",
			Raw:  RawOperand{Mode: "I", Type: "b", Text: "1"},
			Want: Operand{
				Mode:  ModeI,
				Type:  TypeB,
				Sizes: NewSizes(Size8),
			},
		},
		{
			Name: "stack register by ModR/M",
			Raw:  RawOperand{Mode: "EST", Text: "STi"},
			Want: Operand{
				Mode:  ModeEST,
				Sizes: NewSizes(),
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			raw := test.Raw
			got, err := ClassifyOperand(&raw)
			if err != nil {
				t.Fatalf("ClassifyOperand(%+v): got unexpected error: %v", test.Raw, err)
			}

			if diff := cmp.Diff(test.Want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("ClassifyOperand(%+v): (-want, +got)\n%s", test.Raw, diff)
			}
		})
	}
}

func TestClassifyOperandErrors(t *testing.T) {
	tests := []struct {
		Name string
		Raw  RawOperand
	}{
		{
			Name: "unknown addressing mode",
			Raw:  RawOperand{Mode: "Q", Type: "q"},
		},
		{
			Name: "unknown operand type",
			Raw:  RawOperand{Mode: "E", Type: "dq"},
		},
		{
			Name: "bad register number",
			Raw:  RawOperand{Type: "b", Group: "gen", Number: "x"},
		},
		{
			Name: "register number out of range",
			Raw:  RawOperand{Type: "b", Group: "gen", Number: "16"},
		},
		{
			Name: "register without a width",
			Raw:  RawOperand{Type: "bs", Group: "gen", Number: "0"},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			raw := test.Raw
			_, err := ClassifyOperand(&raw)
			if !errors.Is(err, ErrUnsupportedOperand) {
				t.Fatalf("ClassifyOperand(%+v): got error %v, want %v", test.Raw, err, ErrUnsupportedOperand)
			}
		})
	}
}

func TestOperandRulePrecedence(t *testing.T) {
	var got []string
	for _, rule := range operandRules {
		got = append(got, rule.Name)
	}

	want := []string{"fpu-stack", "literal-one"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("operand rules: (-want, +got)\n%s", diff)
	}
}

func TestOperandTypeSizes(t *testing.T) {
	// Every known type has at least one size.
	for typ, sizes := range operandTypeSizes {
		if len(sizes) == 0 {
			t.Errorf("operand type %q has no sizes", typ)
		}
		if got := typ.Sizes().String(); got == "0" {
			t.Errorf("%q.Sizes() = %s", typ, got)
		}
	}
}

func TestRegisterString(t *testing.T) {
	tests := []struct {
		Reg  Register
		Want string
	}{
		{Register{Num: 0, Size: Size8}, "al"},
		{Register{Num: 4, Size: Size8}, "ah"},
		{Register{Num: 2, Size: Size16}, "dx"},
		{Register{Num: 0, Size: Size32}, "eax"},
		{Register{Num: 9, Size: Size64}, "r9"},
		{Register{Num: 3, Size: SizeST}, "reg3/SIZEST"},
	}

	for _, test := range tests {
		if got := test.Reg.String(); got != test.Want {
			t.Errorf("%#v.String() = %q, want %q", test.Reg, got, test.Want)
		}
	}
}

func TestSizesString(t *testing.T) {
	tests := []struct {
		Sizes Sizes
		Want  string
	}{
		{NewSizes(), "0"},
		{NewSizes(Size64, Size16, Size32), "SIZE16|SIZE32|SIZE64"},
		{NewSizes(SizeST), "SIZEST"},
	}

	for _, test := range tests {
		if got := test.Sizes.String(); got != test.Want {
			t.Errorf("Sizes.String() = %q, want %q", got, test.Want)
		}
	}
}
