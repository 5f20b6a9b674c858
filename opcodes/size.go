package opcodes

import (
	"fmt"
	"sort"
	"strings"
)

type Size uint8
type Sizes map[Size]struct{}

const (
	SizeAuto Size = iota
	Size8
	Size16
	Size32
	Size64
	SizeST // x87 80-bit extended precision
)

func (s Size) String() string {
	switch s {
	case SizeAuto:
		return "0"
	case Size8:
		return "SIZE08"
	case Size16:
		return "SIZE16"
	case Size32:
		return "SIZE32"
	case Size64:
		return "SIZE64"
	case SizeST:
		return "SIZEST"
	default:
		return fmt.Sprintf("Size(%d)", uint8(s))
	}
}

// Bits returns the width of the size in bits, or zero for SizeAuto.
func (s Size) Bits() int {
	switch s {
	case Size8:
		return 8
	case Size16:
		return 16
	case Size32:
		return 32
	case Size64:
		return 64
	case SizeST:
		return 80
	default:
		return 0
	}
}

func NewSizes(sizes ...Size) Sizes {
	ss := make(Sizes, len(sizes))
	for _, s := range sizes {
		ss.Add(s)
	}
	return ss
}

func (ss Sizes) Has(s Size) bool {
	_, ok := ss[s]
	return ok
}

func (ss Sizes) Add(s Size) {
	ss[s] = struct{}{}
}

// List returns the sizes in ascending order.
func (ss Sizes) List() []Size {
	ssList := make([]Size, 0, len(ss))
	for s := range ss {
		ssList = append(ssList, s)
	}
	sort.Slice(ssList, func(i, j int) bool {
		return ssList[i] < ssList[j]
	})
	return ssList
}

func (ss Sizes) String() string {
	if len(ss) == 0 {
		return "0"
	}
	var buf strings.Builder
	for i, s := range ss.List() {
		if i > 0 {
			buf.WriteString("|")
		}
		buf.WriteString(s.String())
	}
	return buf.String()
}
