package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskReportReady is the task type for report-ready notifications.
	TaskReportReady = "report:ready-email"
)

// ReportReadyPayload is the JSON payload of a report-ready task.
type ReportReadyPayload struct {
	To            string `json:"to"`
	ExperimentID  string `json:"experiment_id"`
	ReportID      string `json:"report_id"`
	PDFURL        string `json:"pdf_url"`
	ReportPageURL string `json:"report_page_url"`
}

// NewReportReadyTask builds the Asynq task for one notification.
// Up to 3 retries, default queue, 30 second handler timeout.
func NewReportReadyTask(p ReportReadyPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskReportReady,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
