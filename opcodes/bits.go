package opcodes

import (
	"fmt"
	"strconv"
	"strings"
)

// Map selects the instruction map an opcode belongs to.
type Map uint8

const (
	MapOneByte Map = 0x00
	MapTwoByte Map = 0x0f
)

func (m Map) String() string {
	return fmt.Sprintf("%02x", uint8(m))
}

// Prefix is a mandatory prefix byte. Zero means no prefix, as 00 is never a
// prefix.
type Prefix uint8

const NoPrefix Prefix = 0

func (p Prefix) String() string {
	if p == NoPrefix {
		return "none"
	}
	return fmt.Sprintf("%02x", uint8(p))
}

// OptionalByte is a byte-sized field that may be absent.
type OptionalByte struct {
	Value uint8
	Valid bool
}

func Byte(v uint8) OptionalByte {
	return OptionalByte{Value: v, Valid: true}
}

func (b OptionalByte) String() string {
	if !b.Valid {
		return ""
	}
	return fmt.Sprintf("%02x", b.Value)
}

// Bit is a single encoding attribute bit, such as the direction bit.
type Bit int8

const BitUnset Bit = -1

func (b Bit) String() string {
	if b == BitUnset {
		return ""
	}
	return strconv.Itoa(int(b))
}

func parseBit(s string) (Bit, error) {
	switch strings.TrimSpace(s) {
	case "":
		return BitUnset, nil
	case "0":
		return 0, nil
	case "1":
		return 1, nil
	default:
		return BitUnset, fmt.Errorf("invalid bit %q", s)
	}
}

func parseHexByte(s string) (uint8, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 16, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid hex byte %q", s)
	}
	return uint8(v), nil
}

// parseOpcodeValue parses a primary opcode value. Two-byte map values may
// carry the 0F escape byte in front.
func parseOpcodeValue(m Map, s string) (uint8, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if m == MapTwoByte && len(s) == 4 && strings.HasPrefix(s, "0f") {
		s = s[2:]
	}
	return parseHexByte(s)
}
