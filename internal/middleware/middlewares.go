package middleware

import (
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server,
// wired once from the app container and reused during router setup.
type Middlewares struct {
	// Global holds middleware used across the whole API: CORS, request
	// logging, recovery, secure headers, and the global error handler.
	Global *GlobalMiddlewares

	// Auth gates the tool surface with the configured bearer token.
	Auth *AuthMiddleware

	// ContextEnhancer enriches each request with a request-scoped
	// logger (request_id, method, path, ip, trace metadata).
	ContextEnhancer *ContextEnhancer

	// Tracing provides the New Relic middleware and attribute helpers.
	Tracing *TracingMiddleware
}

// NewMiddlewares constructs all middleware components. The New Relic
// application instance is extracted from the server's LoggerService; it
// is nil when the agent is disabled and tracing degrades to no-ops.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
	}
}
