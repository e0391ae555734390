// Package lib collects modules that do not fit strictly into the other
// layers: shared upstream-response handling, background job processing
// (Redis/Asynq), and the Resend email integration.
package lib
