// Package report turns an Optimizely Stats API results payload into the
// normalized Experiment Report Payload and submits it to the hosted
// report-generation function.
//
// The transformation is deterministic pure-function work: date math,
// percentage scaling, and a max-reduction over variation lifts. Required
// input fields are validated up front so a malformed payload fails with
// an error naming the missing field instead of a generic decode error.
package report
