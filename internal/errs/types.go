package errs

import (
	"fmt"
	"net/http"
)

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
//
// Used when no access token is resolvable from the Opal auth envelope.
// The override flag lets middleware replace the message in production.
func NewUnauthorizedError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnauthorized)),
		Message:  message,
		Status:   http.StatusUnauthorized,
		Override: override,
	}
}

// NewForbiddenError creates a 403 Forbidden HTTPError.
func NewForbiddenError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusForbidden)),
		Message:  message,
		Status:   http.StatusForbidden,
		Override: override,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// Optional extras:
//   - code: custom code string (defaults to "BAD_REQUEST")
//   - errors: field-level validation errors
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewInternalServerError creates a generic 500 HTTPError.
//
// The message is the bare status text. Internal details go to logs, not
// to clients.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// NewUpstreamError creates a 502 Bad Gateway HTTPError for a non-2xx
// reply from a remote API.
//
// The message embeds everything needed to diagnose without retrying:
// which upstream, the status code, the status text, and the raw body.
func NewUpstreamError(upstream string, status int, body string) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadGateway)),
		Message:  fmt.Sprintf("%s API error (%d %s): %s", upstream, status, http.StatusText(status), body),
		Status:   http.StatusBadGateway,
		Override: false,
	}
}

// NewTransportError creates a 502 HTTPError for an outbound call that
// never produced a response (DNS, TLS, connection reset).
func NewTransportError(upstream string, err error) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadGateway)),
		Message:  fmt.Sprintf("%s request failed: %s", upstream, err.Error()),
		Status:   http.StatusBadGateway,
		Override: false,
	}
}

// MissingFieldError creates a 400 HTTPError naming the absent required
// parameter.
func MissingFieldError(field string) *HTTPError {
	return NewBadRequestError(
		fmt.Sprintf("%s is required", field),
		false,
		nil,
		[]FieldError{{Field: field, Error: "is required"}},
	)
}

// ValidationError converts a generic validation error into a 400.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil)
}
