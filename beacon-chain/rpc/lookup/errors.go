package lookup

import (
	"fmt"

	"github.com/pkg/errors"
)

// IdParseError represents an error scenario where a block or state ID could not be parsed.
type IdParseError struct {
	message string
}

// NewIdParseError creates a new error instance.
func NewIdParseError(kind string, reason error) IdParseError {
	return IdParseError{
		message: errors.Wrapf(reason, "could not parse %s ID", kind).Error(),
	}
}

// Error returns the underlying error message.
func (e *IdParseError) Error() string {
	return e.message
}

// StateNotFoundError represents an error scenario where a state could not be found.
type StateNotFoundError struct {
	message string
}

// NewStateNotFoundError creates a new error instance.
func NewStateNotFoundError(format string, args ...interface{}) StateNotFoundError {
	return StateNotFoundError{
		message: "state not found: " + fmt.Sprintf(format, args...),
	}
}

// Error returns the underlying error message.
func (e *StateNotFoundError) Error() string {
	return e.message
}

// BlockNotFoundError represents an error when a block cannot be found.
type BlockNotFoundError struct {
	message string
}

// NewBlockNotFoundError creates a new error instance.
func NewBlockNotFoundError(msg string) BlockNotFoundError {
	return BlockNotFoundError{
		message: msg,
	}
}

// Error returns the underlying error message.
func (e BlockNotFoundError) Error() string {
	return e.message
}
