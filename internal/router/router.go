// Package router initializes the HTTP router (using echo).
//
// It registers the middleware stack and maps the tool and system routes
// to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/handler"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/middleware"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/server"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/service"
)

// New builds the configured echo instance: middleware first, then
// routes. The returned echo satisfies http.Handler and plugs straight
// into server.SetupHTTPServer.
func New(s *server.Server) (*echo.Echo, error) {
	services, err := service.NewServices(s)
	if err != nil {
		return nil, err
	}

	handlers := handler.NewHandlers(s, services)
	middlewares := middleware.NewMiddlewares(s)

	r := echo.New()
	r.HideBanner = true
	r.HidePort = true

	registerMiddlewares(r, middlewares)
	registerSystemRoutes(r, handlers)
	registerToolRoutes(r, handlers, middlewares)

	return r, nil
}

// registerMiddlewares installs the global middleware chain. Order
// matters: the request id must exist before the logger snapshots it, the
// New Relic transaction must exist before the context enhancer reads
// trace metadata.
func registerMiddlewares(r *echo.Echo, m *middleware.Middlewares) {
	r.Use(middleware.RequestID())
	r.Use(m.Tracing.NewRelicMiddleware())
	r.Use(m.ContextEnhancer.EnhanceContext())
	r.Use(m.Global.CORS())
	r.Use(m.Global.RequestLogger())
	r.Use(m.Global.Recover())
	r.Use(m.Global.Secure())
	r.Use(m.Tracing.EnhanceTracing())

	r.HTTPErrorHandler = m.Global.GlobalErrorHandler
}
