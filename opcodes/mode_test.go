package opcodes

import "testing"

func TestParseAddressingMode(t *testing.T) {
	for i, m := range AddressingModes {
		got, ok := ParseAddressingMode(string(m))
		if !ok || got != m {
			t.Errorf("ParseAddressingMode(%q) = %q, %v", m, got, ok)
		}
		if got := m.Index(); got != i+1 {
			t.Errorf("%q.Index() = %d, want %d", m, got, i+1)
		}
	}

	if got, ok := ParseAddressingMode(""); !ok || got != ModeNone || got.Index() != 0 {
		t.Errorf("ParseAddressingMode(\"\") = %q, %v", got, ok)
	}
	for _, bad := range []string{"Q", "SC", "e", "EST "} {
		if _, ok := ParseAddressingMode(bad); ok {
			t.Errorf("ParseAddressingMode(%q) succeeded", bad)
		}
	}
}
