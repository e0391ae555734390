package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/errs"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/server"
)

// AuthMiddleware gates the tool surface with the bearer token Opal is
// configured to present. This protects the endpoints themselves; the
// per-provider access token Opal forwards for Optimizely travels inside
// the invocation body and is handled by the service layer.
type AuthMiddleware struct {
	server *server.Server
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireServiceAuth enforces the configured bearer token.
//
// When no token is configured the middleware is a pass-through, which
// keeps local development friction-free. Comparison is constant-time.
func (auth *AuthMiddleware) RequireServiceAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		expected := auth.server.Config.Auth.BearerToken
		if expected == "" {
			return next(c)
		}

		header := c.Request().Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			auth.server.Logger.Warn().
				Str("request_id", GetRequestID(c)).
				Str("path", c.Path()).
				Msg("rejected request with missing or invalid service token")

			return errs.NewUnauthorizedError("Unauthorized", false)
		}

		return next(c)
	}
}
