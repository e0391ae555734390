package router

import (
	"github.com/labstack/echo/v4"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/handler"
)

// registerSystemRoutes registers the endpoints that are not tools:
// health for monitors and discovery for the Opal platform. Both stay
// outside the service-auth gate so Opal can read the manifest before it
// has been configured with a token.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/discovery", h.Discovery.Discovery)
}
