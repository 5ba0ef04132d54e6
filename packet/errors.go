package packet

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xpgp/material"
	"github.com/effective-security/xpgp/mpi"
)

var (
	// ErrMalformedLength is returned when the declared length of a packet
	// does not match the octets consumed by its body
	ErrMalformedLength = errors.New("malformed packet length")
	// ErrTruncated is returned when the input ends before the declared length
	ErrTruncated = errors.Wrap(ErrMalformedLength, "truncated packet")
	// ErrUnsupported is returned for framing or fields this codec does not model
	ErrUnsupported = errors.New("unsupported packet")
	// ErrCorruptPacket is returned when a packet body cannot be decoded
	ErrCorruptPacket = errors.New("corrupt packet")
	// ErrNestingTooDeep is returned when compressed packets nest beyond the limit
	ErrNestingTooDeep = errors.New("packet nesting too deep")
)

// DecodeError is returned by Parse when the header was read but the body
// could not be decoded. Header.Length tells how far to skip.
type DecodeError struct {
	Header Header
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s packet of %d octets: %s", e.Header.Tag, e.Header.Length, e.Err.Error())
}

// Unwrap returns the underlying error
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// fieldError reports a body field that failed to decode;
// it matches both the error kind and the cause
type fieldError struct {
	field string
	kind  error
	cause error
}

func (e *fieldError) Error() string {
	return e.field + ": " + e.cause.Error()
}

func (e *fieldError) Unwrap() []error {
	return []error{e.kind, e.cause}
}

func newFieldError(field string, cause error) error {
	kind := ErrCorruptPacket
	switch {
	case errors.Is(cause, mpi.ErrTruncated):
		kind = ErrTruncated
	case errors.Is(cause, material.ErrUnsupportedS2K):
		kind = ErrUnsupported
	}
	return &fieldError{field: field, kind: kind, cause: cause}
}
