package cart

import (
	"errors"

	"github.com/ezrec/asmjr/translate"
)

var f = translate.From

var (
	// Container errors
	ErrMagic      = errors.New(f("not an ECJR cartridge"))
	ErrTruncated  = errors.New(f("cartridge truncated"))
	ErrBodyLength = errors.New(f("cartridge body length mismatch"))
	ErrBodyType   = errors.New(f("wrong wire type"))
	ErrTooLarge   = errors.New(f("cartridge body too large"))
)

// ErrBodyField is a malformed field of the encoded body.
type ErrBodyField struct {
	Field int
	Err   error
}

func (err *ErrBodyField) Error() string {
	return f("body field %d: %v", err.Field, err.Err)
}

func (err *ErrBodyField) Unwrap() error {
	return err.Err
}
