// Package handler is the HTTP entry point after the router.
//
// It binds and validates tool invocations with the validation package,
// calls the matching service method, and writes the JSON response. No
// business logic lives here.
package handler
