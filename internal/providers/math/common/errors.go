package common

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/mathd/internal/shared/types"
)

// Error is a failure raised by coercion, validation or computation
type Error struct {
	Kind    types.ErrorKind
	Message string
	Input   interface{}
}

// NewError creates an Error citing the raw input
func NewError(kind types.ErrorKind, input interface{}, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Input:   input,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// KindOf returns the kind of err, or InternalComputationError if err did
// not come from this package
func KindOf(err error) types.ErrorKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return types.ErrInternalComputationError
}

// asError converts any error into an *Error
func asError(err error) *Error {
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	return NewError(types.ErrInternalComputationError, nil, "computation failed: %v", err)
}
