package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/handler"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/middleware"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/service"
)

// registerToolRoutes maps the tool invocation endpoints. Opal POSTs a
// JSON body to each; the paths must match the endpoints declared in the
// discovery manifest.
func registerToolRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	tools := r.Group("/tools", m.Auth.RequireServiceAuth)

	tools.POST("/create_experiment", handler.Handle(
		h.Experiment.Handler,
		h.Experiment.CreateExperiment,
		http.StatusOK,
		handler.Request[service.CreateExperimentRequest],
	))

	tools.POST("/create_ab_test", handler.Handle(
		h.Experiment.Handler,
		h.Experiment.CreateABTest,
		http.StatusOK,
		handler.Request[service.CreateABTestRequest],
	))

	tools.POST("/update_experiment", handler.Handle(
		h.Experiment.Handler,
		h.Experiment.UpdateExperiment,
		http.StatusOK,
		handler.Request[service.UpdateExperimentRequest],
	))

	tools.POST("/list_events", handler.Handle(
		h.Events.Handler,
		h.Events.ListEvents,
		http.StatusOK,
		handler.Request[service.ListEventsRequest],
	))

	tools.POST("/generate_experiment_report", handler.Handle(
		h.Report.Handler,
		h.Report.GenerateReport,
		http.StatusOK,
		handler.Request[service.GenerateReportRequest],
	))
}
