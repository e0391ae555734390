package service

import (
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/lib/job"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/optimizely"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/report"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/server"
)

// Services groups the tool services so the router wiring passes one
// object around instead of many.
type Services struct {
	Experiment *ExperimentService
	Events     *EventsService
	Report     *ReportService
	Job        *job.JobService
}

// NewServices constructs the service container with its upstream
// clients. Both clients share the application logger.
func NewServices(s *server.Server) (*Services, error) {
	optimizelyClient := optimizely.NewClient(s.Config, s.Logger)
	reportClient := report.NewClient(s.Config, s.Logger)

	return &Services{
		Experiment: NewExperimentService(s, optimizelyClient),
		Events:     NewEventsService(s, optimizelyClient),
		Report:     NewReportService(s, reportClient),
		Job:        s.Job,
	}, nil
}
