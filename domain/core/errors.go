package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Structural table errors, raised only at the loading boundary
	ErrInvalidTable     = errors.New("invalid table")
	ErrRowArity         = fmt.Errorf("%w: row arity does not match header count", ErrInvalidTable)
	ErrDuplicateHeader  = fmt.Errorf("%w: duplicate header", ErrInvalidTable)
	ErrEmptyHeader      = fmt.Errorf("%w: empty header", ErrInvalidTable)
	ErrUnsupportedInput = errors.New("unsupported input")

	// Analysis errors
	ErrInsufficientData       = errors.New("insufficient data for analysis")
	ErrInvalidColumnSelection = errors.New("invalid column selection")
	ErrEmptyTable             = errors.New("table has no rows")
)

// NewArityError reports a row whose width differs from the header row.
func NewArityError(row, got, want int) error {
	return fmt.Errorf("%w: row %d has %d cells, want %d", ErrRowArity, row, got, want)
}

// NewDuplicateHeaderError reports a header name that occurs more than once.
func NewDuplicateHeaderError(name string) error {
	return fmt.Errorf("%w: %q", ErrDuplicateHeader, name)
}

// IsInvalidTable reports whether err is a structural table error.
func IsInvalidTable(err error) bool {
	return errors.Is(err, ErrInvalidTable)
}
