package opcodes

// gnuAsFPUGroup is the primary opcode of FSUBP, FSUBRP, FDIVP and FDIVRP.
const gnuAsFPUGroup = 0xde

// GNU as swaps the reversed and non-reversed mnemonics of the
// non-commutative x87 operations with register operands, so fsubp assembles
// to what the manual calls FSUBRP and so on. See
// https://sourceware.org/binutils/docs/as/i386_002dBugs.html.
var gnuAsExtensionSwaps = map[uint8]uint8{
	4: 5,
	5: 4,
	6: 7,
	7: 6,
}

// CompensateExtension returns the opcode extension to store for a variant
// in the primary opcode group, matching GNU as rather than the manual.
func CompensateExtension(group uint8, ext OptionalByte) OptionalByte {
	if group != gnuAsFPUGroup || !ext.Valid {
		return ext
	}
	if swapped, ok := gnuAsExtensionSwaps[ext.Value]; ok {
		return Byte(swapped)
	}
	return ext
}
