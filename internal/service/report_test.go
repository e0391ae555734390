package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/errs"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/report"
)

// statsResults is a valid Stats API payload covering every required
// field.
const statsResults = `{
	"start_time": "2025-03-01T00:00:00Z",
	"end_time": "2025-03-15T00:00:00Z",
	"experiment_id": 5001234,
	"stats_config": {"confidence_level": 0.9},
	"reach": {
		"total_count": 12000,
		"variations": {
			"101": {"name": "Control", "count": 6000, "is_baseline": true},
			"102": {"name": "Variation #1", "count": 6000, "is_baseline": false}
		}
	},
	"metrics": [
		{
			"name": "Checkout conversions",
			"results": {
				"101": {"name": "Control", "rate": 0.104},
				"102": {"name": "Variation #1", "rate": 0.12, "lift": {"value": 0.153, "significance": 0.97}}
			}
		}
	]
}`

func newReportService(t *testing.T, function *httptest.Server) *ReportService {
	t.Helper()

	srv := testAppServer("http://unused.invalid", function.URL)
	return NewReportService(srv, report.NewClient(srv.Config, srv.Logger))
}

func TestGenerateReport(t *testing.T) {
	var captured []byte

	function := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"reportId": "rep-42", "pdfUrl": "https://cdn.example.com/rep-42.pdf", "message": "Report generated"}`))
	}))
	defer function.Close()

	svc := newReportService(t, function)

	res, err := svc.GenerateReport(context.Background(), &GenerateReportRequest{
		RecipientEmail: "pm@example.com",
		Results:        statsResults,
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "rep-42", res.ReportID)
	assert.Equal(t, "https://cdn.example.com/rep-42.pdf", res.PDFURL)
	assert.Equal(t, "https://reports.example.com/view/rep-42", res.ReportPageURL)
	assert.Equal(t, "Report generated", res.Message)
	assert.False(t, res.EmailQueued)

	var sent report.GenerateRequest
	require.NoError(t, json.Unmarshal(captured, &sent))

	assert.Equal(t, "pm@example.com", sent.RecipientEmail)
	require.NotNil(t, sent.Report)
	assert.Equal(t, "5001234", sent.Report.ExperimentID)
	assert.Equal(t, "14 days", sent.Report.Duration)

	// Absent recommendation fields and actions take their defaults.
	assert.Equal(t, report.DefaultRecommendationStatus, sent.Report.Recommendation.Status)
	assert.Equal(t, report.DefaultRecommendationTitle, sent.Report.Recommendation.Title)
	assert.Equal(t, report.DefaultRecommendationDescription, sent.Report.Recommendation.Description)
	assert.Equal(t, report.DefaultActions(), sent.Report.Actions)
}

func TestGenerateReportCallerOverrides(t *testing.T) {
	var captured []byte

	function := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"reportId": "rep-43", "pdfUrl": "https://cdn.example.com/rep-43.pdf"}`))
	}))
	defer function.Close()

	svc := newReportService(t, function)

	_, err := svc.GenerateReport(context.Background(), &GenerateReportRequest{
		RecipientEmail:       "pm@example.com",
		Results:              statsResults,
		RecommendationStatus: "Ship it",
		Actions:              `["Roll out to 100%", "Close the ticket"]`,
	})
	require.NoError(t, err)

	var sent report.GenerateRequest
	require.NoError(t, json.Unmarshal(captured, &sent))

	// A supplied status does not suppress the default title.
	assert.Equal(t, "Ship it", sent.Report.Recommendation.Status)
	assert.Equal(t, report.DefaultRecommendationTitle, sent.Report.Recommendation.Title)
	assert.Equal(t, []string{"Roll out to 100%", "Close the ticket"}, sent.Report.Actions)
}

func TestGenerateReportMissingResultField(t *testing.T) {
	function := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("function must not be called for invalid results")
	}))
	defer function.Close()

	svc := newReportService(t, function)

	_, err := svc.GenerateReport(context.Background(), &GenerateReportRequest{
		RecipientEmail: "pm@example.com",
		Results:        `{"end_time": "2025-03-15T00:00:00Z"}`,
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Contains(t, httpErr.Message, "results.start_time")
}

func TestGenerateReportFunctionFailure(t *testing.T) {
	function := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("renderer exploded"))
	}))
	defer function.Close()

	svc := newReportService(t, function)

	_, err := svc.GenerateReport(context.Background(), &GenerateReportRequest{
		RecipientEmail: "pm@example.com",
		Results:        statsResults,
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.Status)
	assert.Contains(t, httpErr.Message, "generate_experiment_report")
	assert.Contains(t, httpErr.Message, "renderer exploded")
}
