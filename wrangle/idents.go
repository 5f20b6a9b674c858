package main

import (
	"strings"
	"unicode"
)

// makeIdentMacro joins parts into an upper-case C macro name, such as
// AM_EST. Characters that can't appear in an identifier become underscores.
func makeIdentMacro(parts ...string) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			b.WriteByte('_')
		}
		for j, r := range part {
			switch {
			case unicode.IsDigit(r):
				if i == 0 && j == 0 {
					b.WriteByte('_')
				}
				b.WriteRune(r)
			case unicode.IsLetter(r) && r < unicode.MaxASCII:
				b.WriteString(strings.ToUpper(string(r)))
			default:
				b.WriteByte('_')
			}
		}
	}
	return b.String()
}

// makeCString returns s as a C string literal.
func makeCString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r < ' ' || r >= unicode.MaxASCII:
			// Notes are informational, so non-ASCII is just replaced.
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
