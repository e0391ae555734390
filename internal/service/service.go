// Package service contains the tool business logic.
//
// It sits between the handler and client layers. Each tool follows the
// same four-stage contract: validate required parameters, normalize
// optional structured parameters supplied as serialized strings,
// authenticate from the Opal envelope where required, then dispatch
// exactly one outbound call and shape the response.
package service

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/errs"
)

// validate is the shared validator instance backing request Validate
// methods.
var validate = validator.New()

// wrapTool prefixes an error with the tool name so a failure surfaced
// to Opal says which capability raised it. Typed HTTP errors keep their
// status and field errors; anything else becomes a generic 500.
func wrapTool(tool string, err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.WithMessage(tool + ": " + httpErr.Message)
	}
	return errs.NewInternalServerError()
}
