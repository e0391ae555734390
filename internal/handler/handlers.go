package handler

import (
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/server"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/service"
)

// Handlers groups all HTTP handlers so router setup passes one object
// around instead of many.
type Handlers struct {
	Health     *HealthHandler
	Discovery  *DiscoveryHandler
	Experiment *ExperimentHandler
	Events     *EventsHandler
	Report     *ReportHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		Discovery:  NewDiscoveryHandler(s),
		Experiment: NewExperimentHandler(s, services.Experiment),
		Events:     NewEventsHandler(s, services.Events),
		Report:     NewReportHandler(s, services.Report),
	}
}
