package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/logger"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/server"
)

const (
	// LoggerKey stores the request-scoped logger in echo context and in
	// the Go request context.
	LoggerKey = "logger"
)

// ContextEnhancer builds a request-scoped logger carrying correlation
// fields (request_id, method, path, ip, and trace ids when a New Relic
// transaction exists) and stores it in both the echo context and the Go
// request context, so outbound clients that only see context.Context can
// still log with correlation.
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer creates a ContextEnhancer.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns the echo middleware.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := GetRequestID(c)

			contextLogger := ce.server.Logger.With().
				Str("request_id", requestID).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			c.Set(LoggerKey, &contextLogger)

			ctx := context.WithValue(c.Request().Context(), LoggerKey, &contextLogger)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetLogger retrieves the request-scoped logger from echo context,
// falling back to a no-op logger when the enhancer did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if requestLogger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return requestLogger
	}

	nop := zerolog.Nop()
	return &nop
}
