package opcodes

import "fmt"

// OrderOperands arranges a syntax's source and destination operands into
// the positional order the encoder uses.
//
// A second source is placed before the first, so forms like TEST take their
// operands in the same order as GNU as.
func OrderOperands(srcs, dsts []*RawOperand) ([]*RawOperand, error) {
	switch {
	case len(srcs) == 0 && len(dsts) == 0:
		return nil, nil
	case len(srcs) == 1 && len(dsts) == 0:
		return []*RawOperand{srcs[0]}, nil
	case len(srcs) == 0 && len(dsts) == 1:
		return []*RawOperand{dsts[0]}, nil
	case len(srcs) == 1 && len(dsts) == 1:
		return []*RawOperand{srcs[0], dsts[0]}, nil
	case len(srcs) == 2 && len(dsts) == 0:
		return []*RawOperand{srcs[1], srcs[0]}, nil
	case len(srcs) == 2 && len(dsts) == 1:
		return []*RawOperand{srcs[1], srcs[0], dsts[0]}, nil
	default:
		return nil, fmt.Errorf("%w: srcs=%d dsts=%d", ErrUnsupportedShape, len(srcs), len(dsts))
	}
}

// classifySyntax orders and classifies the visible operands of a syntax.
func classifySyntax(syntax *Syntax) ([]Operand, error) {
	raw, err := OrderOperands(visible(syntax.Sources), visible(syntax.Destinations))
	if err != nil {
		return nil, err
	}

	ops := make([]Operand, 0, len(raw))
	for _, r := range raw {
		op, err := ClassifyOperand(r)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	return ops, nil
}
