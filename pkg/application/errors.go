package application

import "fmt"

// Well-known boundary error codes.
const (
	CodeInternalError   = "INTERNAL_ERROR"
	CodeValidationError = "VALIDATION_ERROR"
)

// Error is the sole failure shape surfaced across the dispatch boundary for
// expected failures. Status is an HTTP-class classification; the transport
// layer maps it onto the wire.
type Error struct {
	Code    string
	Message string
	Status  int
	Details map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError builds a boundary error.
func NewError(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

// WithDetails attaches structured details and returns the same error.
func (e *Error) WithDetails(details map[string]string) *Error {
	e.Details = details
	return e
}

// FieldError describes one failed constraint on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Rule    string `json:"rule"`
}

// ValidationFailure rejects a request before any business logic runs. It is
// never auto-retried.
type ValidationFailure struct {
	Request string
	Fields  []FieldError
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("validation failed for %s: %d error(s)", e.Request, len(e.Fields))
}

// NewValidationFailure builds a validation failure for a request.
func NewValidationFailure(request string, fields []FieldError) *ValidationFailure {
	return &ValidationFailure{Request: request, Fields: fields}
}

// ConfigurationError reports broken wiring: an unregistered request type, a
// duplicate binding, a missing handler factory. It is distinct from Error by
// type so it can never be mistaken for a business failure.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// NewConfigurationError builds a configuration error.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}
