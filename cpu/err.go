package cpu

import (
	"errors"

	"github.com/ezrec/ubf/translate"
)

var f = translate.From

var (
	// Compile errors
	ErrUnmatchedBracket = errors.New(f("unmatched bracket"))
	ErrProgramTooLarge  = errors.New(f("program too large"))
)

// ErrSyntax locates a compile error in the source text.
type ErrSyntax struct {
	Offset int
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("offset %d %v", err.Offset, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
