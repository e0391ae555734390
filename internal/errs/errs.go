// Package errs defines the custom error types returned to tool callers.
//
// Every failure in the service, from a missing parameter to an upstream
// Optimizely 4xx, is eventually expressed as an HTTPError so Opal
// receives a consistent, diagnosable JSON error shape.
package errs
