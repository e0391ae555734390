package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/server"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/service"
)

// ReportHandler exposes the generate_experiment_report tool.
type ReportHandler struct {
	Handler
	service *service.ReportService
}

func NewReportHandler(s *server.Server, svc *service.ReportService) *ReportHandler {
	return &ReportHandler{
		Handler: NewHandler(s),
		service: svc,
	}
}

// GenerateReport handles POST /tools/generate_experiment_report.
func (h *ReportHandler) GenerateReport(c echo.Context, req *service.GenerateReportRequest) (*service.GenerateReportResponse, error) {
	return h.service.GenerateReport(c.Request().Context(), req)
}
