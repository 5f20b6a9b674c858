package opcodes

import (
	"fmt"
	"sort"
	"sync"
)

// MnemonicAlias maps a mnemonic spelling accepted by the assembler to the
// mnemonic used in the opcode table.
type MnemonicAlias struct {
	Spelling string
	Mnemonic string

	// Sizes holds up to three size hints, one per operand position. A
	// single hint on a suffixed integer mnemonic is the operation size.
	Sizes []Size
}

// AliasTable holds the mnemonic aliases. It is safe for one writer and
// many readers.
type AliasTable struct {
	mu      sync.RWMutex
	aliases map[string]MnemonicAlias
}

// NewAliasTable returns a table holding the built-in aliases.
func NewAliasTable() *AliasTable {
	t := &AliasTable{aliases: make(map[string]MnemonicAlias)}
	for _, a := range builtinAliases() {
		if _, ok := t.aliases[a.Spelling]; ok {
			panic(fmt.Sprintf("duplicate mnemonic alias %q", a.Spelling))
		}
		t.aliases[a.Spelling] = a
	}
	return t
}

// Lookup returns the alias for spelling, if there is one.
func (t *AliasTable) Lookup(spelling string) (MnemonicAlias, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	a, ok := t.aliases[spelling]
	return a, ok
}

// Resolve returns the alias for spelling. Spellings without an alias
// resolve to themselves.
func (t *AliasTable) Resolve(spelling string) MnemonicAlias {
	if a, ok := t.Lookup(spelling); ok {
		return a
	}
	return MnemonicAlias{Spelling: spelling, Mnemonic: spelling}
}

// Register adds spelling as an alias of itself, unless it already has an
// alias. It reports whether the table changed.
func (t *AliasTable) Register(spelling string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.aliases[spelling]; ok {
		return false
	}
	t.aliases[spelling] = MnemonicAlias{Spelling: spelling, Mnemonic: spelling}
	return true
}

func (t *AliasTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.aliases)
}

// Aliases returns every alias, sorted by spelling.
func (t *AliasTable) Aliases() []MnemonicAlias {
	t.mu.RLock()
	ret := make([]MnemonicAlias, 0, len(t.aliases))
	for _, a := range t.aliases {
		ret = append(ret, a)
	}
	t.mu.RUnlock()

	sort.Slice(ret, func(i, j int) bool {
		return ret[i].Spelling < ret[j].Spelling
	})
	return ret
}

// Mnemonics returns the distinct canonical mnemonics, sorted.
func (t *AliasTable) Mnemonics() []string {
	t.mu.RLock()
	seen := make(map[string]struct{})
	for _, a := range t.aliases {
		seen[a.Mnemonic] = struct{}{}
	}
	t.mu.RUnlock()

	ret := make([]string, 0, len(seen))
	for m := range seen {
		ret = append(ret, m)
	}
	sort.Strings(ret)
	return ret
}

var integerSuffixes = []struct {
	Suffix string
	Size   Size
}{
	{"b", Size8},
	{"w", Size16},
	{"l", Size32},
	{"q", Size64},
}

// sizedAliases returns the size-less alias of mnem and one suffixed alias
// per size, all mapping to canonical. With no sizes, all four integer sizes
// are used.
func sizedAliases(mnem, canonical string, sizes ...Size) []MnemonicAlias {
	want := NewSizes(sizes...)
	if len(sizes) == 0 {
		want = NewSizes(Size8, Size16, Size32, Size64)
	}

	ret := []MnemonicAlias{{Spelling: mnem, Mnemonic: canonical}}
	for _, s := range integerSuffixes {
		if !want.Has(s.Size) {
			continue
		}
		ret = append(ret, MnemonicAlias{
			Spelling: mnem + s.Suffix,
			Mnemonic: canonical,
			Sizes:    []Size{s.Size},
		})
	}
	return ret
}

// scalarAliases returns the single and double precision forms of an SSE
// scalar mnemonic. There is no size-less form: movs alone is a string
// instruction.
func scalarAliases(mnem string) []MnemonicAlias {
	return []MnemonicAlias{
		{Spelling: mnem + "s", Mnemonic: mnem + "s", Sizes: []Size{Size16}},
		{Spelling: mnem + "d", Mnemonic: mnem + "d", Sizes: []Size{Size32}},
	}
}

func alias(spelling, mnem string, sizes ...Size) MnemonicAlias {
	return MnemonicAlias{Spelling: spelling, Mnemonic: mnem, Sizes: sizes}
}

var allSizeMnemonics = []string{
	"adc", "add", "and", "cmp", "dec", "imul", "inc", "mov", "mul", "neg",
	"not", "or", "sar", "sbb", "shl", "shr", "sub", "test", "xor",
}

var cmovMnemonics = []string{
	"cmovo", "cmovno", "cmovb", "cmovnae", "cmovc", "cmovnb", "cmovae",
	"cmovnc", "cmovz", "cmove", "cmovnz", "cmovne", "cmovbe", "cmovna",
	"cmovnbe", "cmova", "cmovs", "cmovns", "cmovp", "cmovpe", "cmovnp",
	"cmovpo", "cmovl", "cmovnge", "cmovnl", "cmovge", "cmovle", "cmovng",
	"cmovnle", "cmovg",
}

// Scalar SSE mnemonics whose operation size can only be told from the
// suffix, as in movss (%rax), %xmm14.
var scalarMnemonics = []string{"movs", "adds", "subs", "muls", "divs", "comis", "ucomis"}

func builtinAliases() []MnemonicAlias {
	var ret []MnemonicAlias

	ret = append(ret, sizedAliases("div", "div", Size32, Size64)...)
	ret = append(ret, sizedAliases("idiv", "idiv", Size32, Size64)...)
	ret = append(ret, sizedAliases("lea", "lea", Size64)...)
	ret = append(ret, sizedAliases("pop", "pop", Size64)...)
	ret = append(ret, sizedAliases("push", "push", Size64)...)
	ret = append(ret, sizedAliases("ret", "retn", Size64)...)
	ret = append(ret, sizedAliases("cvttss2si", "cvttss2si", Size32, Size64)...)
	ret = append(ret, sizedAliases("cvttsd2si", "cvttsd2si", Size32, Size64)...)

	for _, mnem := range allSizeMnemonics {
		ret = append(ret, sizedAliases(mnem, mnem)...)
	}
	for _, mnem := range cmovMnemonics {
		ret = append(ret, sizedAliases(mnem, mnem, Size16, Size32, Size64)...)
	}
	for _, mnem := range scalarMnemonics {
		ret = append(ret, scalarAliases(mnem)...)
	}

	ret = append(ret,
		// Stack-relative forms.
		alias("callq", "call"),
		alias("leaveq", "leave"),

		alias("movabsq", "mov", Size64),
		alias("cvtsd2ss", "cvtsd2ss", Size32),

		// Widening moves, source size then destination size.
		alias("movsbw", "movsx", Size8, Size16),
		alias("movsbl", "movsx", Size8, Size32),
		alias("movsbq", "movsx", Size8, Size64),
		alias("movswl", "movsx", Size16, Size32),
		alias("movswq", "movsx", Size16, Size64),
		alias("movslq", "movsxd", Size32, Size64),
		alias("movzbw", "movzx", Size8, Size16),
		alias("movzbl", "movzx", Size8, Size32),
		alias("movzbq", "movzx", Size8, Size64),
		alias("movzwl", "movzx", Size16, Size32),
		alias("movzwq", "movzx", Size16, Size64),

		// Accumulator sign extensions.
		alias("cbtw", "cbw", Size8, Size16),
		alias("cwtl", "cwde", Size16, Size32),
		alias("cltq", "cdqe", Size32, Size64),
		alias("cwtd", "cwd", Size16),
		alias("cltd", "cdq", Size32),
		alias("cqto", "cqo", Size64),

		// x87 memory forms. Real operands use s, l and t for 32, 64 and
		// 80 bits; integer operands use s, l and ll (or q) for 16, 32 and
		// 64 bits.
		alias("flds", "fld", Size32),
		alias("fldl", "fld", Size64),
		alias("fldt", "fld", SizeST),
		alias("fsts", "fst", Size32),
		alias("fstl", "fst", Size64),
		alias("fstps", "fstp", Size32),
		alias("fstpl", "fstp", Size64),
		alias("fstpt", "fstp", SizeST),
		alias("fadds", "fadd", Size32),
		alias("faddl", "fadd", Size64),
		alias("fsubs", "fsub", Size32),
		alias("fsubl", "fsub", Size64),
		alias("fsubrs", "fsubr", Size32),
		alias("fsubrl", "fsubr", Size64),
		alias("fmuls", "fmul", Size32),
		alias("fmull", "fmul", Size64),
		alias("fdivs", "fdiv", Size32),
		alias("fdivl", "fdiv", Size64),
		alias("fdivrs", "fdivr", Size32),
		alias("fdivrl", "fdivr", Size64),
		alias("fcoms", "fcom", Size32),
		alias("fcoml", "fcom", Size64),
		alias("fcomps", "fcomp", Size32),
		alias("fcompl", "fcomp", Size64),
		alias("filds", "fild", Size16),
		alias("fildl", "fild", Size32),
		alias("fildll", "fild", Size64),
		alias("fildq", "fild", Size64),
		alias("fists", "fist", Size16),
		alias("fistl", "fist", Size32),
		alias("fistps", "fistp", Size16),
		alias("fistpl", "fistp", Size32),
		alias("fistpll", "fistp", Size64),
		alias("fistpq", "fistp", Size64),
		alias("fisttps", "fisttp", Size16),
		alias("fisttpl", "fisttp", Size32),
		alias("fisttpll", "fisttp", Size64),
	)

	return ret
}
