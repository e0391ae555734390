// Package validation contains the logic for validating tool request
// data.
//
// It uses the validator library to enforce rules defined in struct tags
// (required fields, email formats, numeric bounds) and extracts
// validation failures into field-level errors the caller can act on.
package validation
