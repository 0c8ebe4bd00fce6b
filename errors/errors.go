package errors

import (
	"errors"
	"fmt"
)

// Error codes surfaced by the provisioning API.
const (
	CodeInvalidRequest = "invalid_request"
	CodeConflict       = "conflict"
	CodeNotFound       = "not_found"
	CodeServerError    = "server_error"
)

// Error is a provisioning error with a stable machine-readable code and a
// human-readable description. The HTTP layer maps codes to status codes.
type Error struct {
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// NewInvalidRequest creates an error for malformed or out-of-vocabulary input.
func NewInvalidRequest(description string) *Error {
	return &Error{
		Code:        CodeInvalidRequest,
		Description: description,
	}
}

// NewConflict creates an error for an identity that already exists.
func NewConflict(description string) *Error {
	return &Error{
		Code:        CodeConflict,
		Description: description,
	}
}

// NewNotFound creates an error for a missing record.
func NewNotFound(description string) *Error {
	return &Error{
		Code:        CodeNotFound,
		Description: description,
	}
}

// NewServerError creates an error for uncategorized failures.
func NewServerError(description string) *Error {
	return &Error{
		Code:        CodeServerError,
		Description: description,
	}
}

// CodeOf returns the provisioning error code carried by err, or
// CodeServerError when err is not a provisioning error.
func CodeOf(err error) string {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Code
	}
	return CodeServerError
}

// IsInvalidRequest reports whether err carries the invalid_request code.
func IsInvalidRequest(err error) bool { return CodeOf(err) == CodeInvalidRequest }

// IsConflict reports whether err carries the conflict code.
func IsConflict(err error) bool { return CodeOf(err) == CodeConflict }

// IsNotFound reports whether err carries the not_found code.
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }
