package errs

import "strings"

// FieldError is a single field-level validation failure.
//
//	{ "field": "experiment_id", "error": "is required" }
type FieldError struct {
	// Field is the parameter name the error relates to.
	Field string `json:"field"`

	// Error is the human-readable message.
	Error string `json:"error"`
}

// HTTPError is the error shape serialized to tool callers.
//
// It satisfies the error interface so handlers and services can return it
// directly and let the global error handler write the response.
//
//   - Code: machine-friendly code (e.g. "BAD_REQUEST", "BAD_GATEWAY")
//   - Message: human-friendly diagnostic
//   - Status: HTTP status code
//   - Override: lets middleware decide whether to replace the message
//   - Errors: per-field validation errors, when applicable
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. It matches on type
// only, not on Code/Status, which is what the global error handler needs.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of the error with only Message replaced.
// Useful for base error templates that get customized per call site.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// MakeUpperCaseWithUnderscores turns an HTTP status text into a stable
// error code: "Bad Request" -> "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
