// Package httperr defines the two failure kinds the admission pipeline may
// signal: AuthorizationError (identity missing or insufficient) and
// ValidationError (request input rejected by a schema). Every other error is
// a programming fault and propagates untouched.
package httperr

import "errors"

// Issue is one structured, field-scoped validation failure.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Issue codes produced by the schema engine.
const (
	CodeRequired         = "required"
	CodeInvalidType      = "invalid_type"
	CodeTooSmall         = "too_small"
	CodeTooBig           = "too_big"
	CodeInvalidEnumValue = "invalid_enum_value"
	CodeCustom           = "custom"
)

// AuthorizationError means identity could not be established, or the
// established identity lacks permission.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// Authorization returns a new AuthorizationError with the given message.
func Authorization(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}

// ValidationError means one or more request segments failed schema
// validation. Issues preserve the order the schema engine produced them.
type ValidationError struct {
	Message string
	Issues  []Issue
}

func (e *ValidationError) Error() string { return e.Message }

// Validation returns a new ValidationError carrying the given issues.
func Validation(message string, issues []Issue) *ValidationError {
	return &ValidationError{Message: message, Issues: issues}
}

// AsAuthorization reports whether err is (or wraps) an AuthorizationError.
func AsAuthorization(err error) (*AuthorizationError, bool) {
	var ae *AuthorizationError
	ok := errors.As(err, &ae)
	return ae, ok
}

// AsValidation reports whether err is (or wraps) a ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
