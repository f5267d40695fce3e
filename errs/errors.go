// Package errs defines the sentinel errors and structured error types shared
// across the lineproto packages.
//
// Sentinel errors are wrapped at their use sites with fmt.Errorf("%w: ...")
// so callers can test for them with errors.Is while still receiving context
// about the failing record.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput indicates the input contained no records at all.
	ErrEmptyInput = errors.New("empty input")

	// ErrEmptyMeasurement indicates a point with an empty measurement name.
	ErrEmptyMeasurement = errors.New("empty measurement")

	// ErrMissingField indicates a point with no non-absent field entries.
	ErrMissingField = errors.New("missing field")

	// ErrDuplicateKey indicates a tag or field key appeared twice in one record.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNonFiniteFloat indicates an attempt to format NaN or an infinity.
	ErrNonFiniteFloat = errors.New("non-finite float")

	// ErrUnterminatedString indicates a quoted field value with no closing quote.
	ErrUnterminatedString = errors.New("unterminated string")
)

// SyntaxError reports malformed line protocol text. Offset is the absolute
// byte offset from the start of the input; Line and Column are 1-based and
// identical for the slice and streaming reader implementations.
type SyntaxError struct {
	Offset int
	Line   int
	Column int
	Msg    string

	// Err carries a sentinel error when one applies, e.g. ErrDuplicateKey.
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d (line %d, column %d): %s",
		e.Offset, e.Line, e.Column, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// CoercionError reports a Value that cannot be converted to the statically
// required target type.
type CoercionError struct {
	From string
	To   string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot coerce %s value to %s", e.From, e.To)
}

// IOError wraps a failure from the underlying byte source or sink with the
// absolute offset at which it occurred.
type IOError struct {
	Offset int
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error at offset %d: %v", e.Offset, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
