package service

import (
	"context"
	"strings"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/lib/job"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/opal"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/report"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/server"
)

// ReportService implements the generate_experiment_report tool.
type ReportService struct {
	server *server.Server
	client *report.Client
}

func NewReportService(s *server.Server, client *report.Client) *ReportService {
	return &ReportService{
		server: s,
		client: client,
	}
}

// GenerateReportRequest is the generate_experiment_report tool input.
//
// Results is the raw Stats API payload as a serialized JSON string. The
// recommendation fields and actions are optional presentation inputs
// layered onto the transformed payload; each defaults independently.
type GenerateReportRequest struct {
	RecipientEmail            string `json:"recipient_email" validate:"required,email"`
	Results                   string `json:"results" validate:"required"`
	RecommendationStatus      string `json:"recommendation_status"`
	RecommendationTitle       string `json:"recommendation_title"`
	RecommendationDescription string `json:"recommendation_description"`
	Actions                   string `json:"actions"`
}

func (r *GenerateReportRequest) Validate() error {
	return validate.Struct(r)
}

// GenerateReportResponse is the tool's success envelope. EmailQueued
// reports whether the notification task was enqueued; a false value with
// a populated ReportID means the report exists but no email will follow.
type GenerateReportResponse struct {
	Success       bool   `json:"success"`
	ReportID      string `json:"reportId"`
	PDFURL        string `json:"pdfUrl"`
	ReportPageURL string `json:"reportPageUrl"`
	Message       string `json:"message,omitempty"`
	EmailQueued   bool   `json:"emailQueued"`
}

// GenerateReport transforms the raw results into the report payload,
// submits it to the hosted function, and queues the report-ready email.
//
// The enqueue step is best effort: a Redis outage degrades the email
// notification but never fails a report that was already generated.
func (s *ReportService) GenerateReport(ctx context.Context, req *GenerateReportRequest) (*GenerateReportResponse, error) {
	const tool = "generate_experiment_report"

	payload, err := report.Transform([]byte(req.Results))
	if err != nil {
		return nil, err
	}

	payload.Recommendation = report.BuildRecommendation(
		req.RecommendationStatus,
		req.RecommendationTitle,
		req.RecommendationDescription,
	)

	actions, err := opal.ParseStringList("actions", req.Actions)
	if err != nil {
		return nil, err
	}
	if len(actions) == 0 {
		actions = report.DefaultActions()
	}
	payload.Actions = actions

	result, err := s.client.Generate(ctx, req.RecipientEmail, payload)
	if err != nil {
		return nil, wrapTool(tool, err)
	}

	reportPageURL := strings.TrimRight(s.server.Config.Report.ReportPageBaseURL, "/") + "/" + result.ReportID

	emailQueued := s.queueReportReadyEmail(req.RecipientEmail, payload.ExperimentID, result, reportPageURL)

	return &GenerateReportResponse{
		Success:       true,
		ReportID:      result.ReportID,
		PDFURL:        result.PDFURL,
		ReportPageURL: reportPageURL,
		Message:       result.Message,
		EmailQueued:   emailQueued,
	}, nil
}

func (s *ReportService) queueReportReadyEmail(to, experimentID string, result *report.GenerateResult, reportPageURL string) bool {
	if !s.server.Config.Email.Enabled || s.server.Job == nil {
		return false
	}

	task, err := job.NewReportReadyTask(job.ReportReadyPayload{
		To:            to,
		ExperimentID:  experimentID,
		ReportID:      result.ReportID,
		PDFURL:        result.PDFURL,
		ReportPageURL: reportPageURL,
	})
	if err != nil {
		s.server.Logger.Error().Err(err).Msg("Failed to build report-ready task")
		return false
	}

	if _, err := s.server.Job.Client.Enqueue(task); err != nil {
		s.server.Logger.Error().Err(err).
			Str("report_id", result.ReportID).
			Msg("Failed to enqueue report-ready email")
		return false
	}

	return true
}
