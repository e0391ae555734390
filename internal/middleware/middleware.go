// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns: the
// bearer-token gate on the tool surface, request logging, CORS, request
// ids, trace enrichment, and panic recovery.
package middleware
