package domain

import (
	"errors"
	"fmt"
)

// Error carries a user-facing message, the low-level cause and a sentinel
// code that callers match with errors.Is.
type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

// Is makes errors.Is(err, ErrX) match on the code as well as on the cause chain.
func (e *Error) Is(target error) bool {
	return e.code != nil && e.code == target
}

func (e *Error) Code() error {
	return e.code
}

// Message is the message without the wrapped cause.
func (e *Error) Message() string {
	return e.msg
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func NewErrorf(code error, format string, a ...interface{}) error {
	return WrapErrorf(nil, code, format, a...)
}

var (
	// ErrDeliveryNotPossible is returned when the venue cannot deliver to the
	// customer: the distance reaches the last range or the schedule has no
	// usable range.
	ErrDeliveryNotPossible = errors.New("delivery not possible")
	// ErrInvalidInput is returned for out-of-domain numeric input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMalformedVenueData is returned when a venue document does not match its schema.
	ErrMalformedVenueData = errors.New("malformed venue data")
	ErrVenueNotFound      = errors.New("venue not found")
	// ErrUpstream is returned when the venue API cannot be reached or answers with an error.
	ErrUpstream = errors.New("venue api error")
)
