package opcodes

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedOperand is returned for an operand whose addressing
	// mode, type or register number isn't one the table can describe.
	// It only affects the syntax that contains the operand.
	ErrUnsupportedOperand = errors.New("unsupported operand")

	// ErrUnsupportedShape is returned when a syntax has a combination of
	// source and destination operands with no defined operand order.
	ErrUnsupportedShape = errors.New("unsupported operand shape")

	// ErrMalformedDocument is returned when the reference document lacks
	// structure the table depends on. It aborts the whole run.
	ErrMalformedDocument = errors.New("malformed reference document")
)

// SyntaxError describes a single syntax that was left out of the table.
type SyntaxError struct {
	Map      Map
	Group    uint8
	Mnemonic string
	Err      error
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("%s %02x %s: %v", err.Map, err.Group, err.Mnemonic, err.Err)
}

func (err *SyntaxError) Unwrap() error {
	return err.Err
}

func malformedf(format string, v ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedDocument, fmt.Sprintf(format, v...))
}

func unsupportedOperandf(format string, v ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedOperand, fmt.Sprintf(format, v...))
}
