package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/config"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/lib/email"
)

// emailClient is initialized by InitHandlers before the worker starts.
var emailClient *email.Client

// emailEnabled gates sending; when email is disabled in config the
// handler acknowledges tasks without contacting the provider.
var emailEnabled bool

// InitHandlers initializes the dependencies job handlers need. Must be
// called before Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	emailClient = email.NewClient(cfg, logger)
	emailEnabled = cfg.Email.Enabled && cfg.Email.ResendAPIKey != ""
}

// handleReportReadyTask processes one report-ready notification:
// decode the payload, send the email, and let Asynq retry on failure.
func (j *JobService) handleReportReadyTask(ctx context.Context, t *asynq.Task) error {
	var p ReportReadyPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal report-ready payload: %w", err)
	}

	logger := j.logger.With().
		Str("type", "report_ready").
		Str("to", p.To).
		Str("report_id", p.ReportID).
		Logger()

	if !emailEnabled {
		logger.Info().Msg("Email disabled, skipping report-ready notification")
		return nil
	}

	logger.Info().Msg("Processing report-ready email task")

	if err := emailClient.SendReportReadyEmail(p.To, p.ExperimentID, p.ReportID, p.PDFURL, p.ReportPageURL); err != nil {
		logger.Error().Err(err).Msg("Failed to send report-ready email")
		// Returning the error makes Asynq schedule a retry.
		return err
	}

	logger.Info().Msg("Successfully sent report-ready email")
	return nil
}
