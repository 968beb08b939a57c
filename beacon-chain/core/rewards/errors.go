package rewards

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds of a reward computation. Every error returned by this package matches exactly one
// of them under errors.Is.
var (
	// ErrNotFound means the state, block or state root the computation needs is absent.
	ErrNotFound = errors.New("not found")
	// ErrInvalid means the request or the data it resolved to is structurally unusable.
	ErrInvalid = errors.New("invalid request")
	// ErrArithmetic means an overflow or a division by zero occurred in reward math.
	ErrArithmetic = errors.New("arithmetic failure")
)

// Error is a reward computation failure tagged with its kind.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the kind of the error.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// NotFoundError builds an ErrNotFound error.
func NotFoundError(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...), Err: err}
}

// InvalidError builds an ErrInvalid error.
func InvalidError(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: ErrInvalid, Message: fmt.Sprintf(format, args...), Err: err}
}

// ArithmeticError builds an ErrArithmetic error.
func ArithmeticError(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: ErrArithmetic, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or nil when err carries none.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}
