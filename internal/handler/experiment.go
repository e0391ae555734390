package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/server"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/service"
)

// ExperimentHandler exposes the experiment tools.
type ExperimentHandler struct {
	Handler
	service *service.ExperimentService
}

func NewExperimentHandler(s *server.Server, svc *service.ExperimentService) *ExperimentHandler {
	return &ExperimentHandler{
		Handler: NewHandler(s),
		service: svc,
	}
}

// CreateExperiment handles POST /tools/create_experiment.
func (h *ExperimentHandler) CreateExperiment(c echo.Context, req *service.CreateExperimentRequest) (*service.ExperimentResponse, error) {
	return h.service.CreateExperiment(c.Request().Context(), req)
}

// CreateABTest handles POST /tools/create_ab_test.
func (h *ExperimentHandler) CreateABTest(c echo.Context, req *service.CreateABTestRequest) (*service.ExperimentResponse, error) {
	return h.service.CreateABTest(c.Request().Context(), req)
}

// UpdateExperiment handles POST /tools/update_experiment.
func (h *ExperimentHandler) UpdateExperiment(c echo.Context, req *service.UpdateExperimentRequest) (*service.ExperimentResponse, error) {
	return h.service.UpdateExperiment(c.Request().Context(), req)
}
