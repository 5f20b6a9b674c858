// Package opcodes turns the x86reference schema into the opcode table used
// by the assembler's instruction encoder.
//
// The schema describes each primary opcode byte as a group of entries, and
// each entry as one or more syntaxes with source and destination operands.
// The Assembler walks that tree in document order and produces one
// OpcodeVariant per usable syntax, with operands classified into sizes and
// encoding flags and reordered into AT&T operand order. Alongside the
// variants it maintains an AliasTable mapping the mnemonic spellings the
// assembler accepts (addq, movzbl, fldt, ...) onto the canonical mnemonics
// used by the variants.
//
// The table mirrors GNU as rather than the Intel manual where the two
// disagree; see CompensateExtension.
package opcodes
