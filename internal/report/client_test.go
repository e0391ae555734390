package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/config"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/errs"
)

func newTestReportClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := zerolog.Nop()
	cfg := &config.Config{
		Report: config.ReportConfig{
			FunctionURL:       server.URL,
			ReportPageBaseURL: "https://reports.example.com",
		},
	}
	return NewClient(cfg, &logger)
}

func TestGenerateSendsRecipientAndPayload(t *testing.T) {
	var gotBody GenerateRequest

	client := newTestReportClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reportId": "rep-1", "pdfUrl": "https://cdn.example.com/rep-1.pdf", "message": "ok"}`))
	})

	payload := &Payload{ExperimentID: "5001234", Duration: "14 days"}
	result, err := client.Generate(context.Background(), "analyst@example.com", payload)
	require.NoError(t, err)

	assert.Equal(t, "analyst@example.com", gotBody.RecipientEmail)
	assert.Equal(t, "5001234", gotBody.Report.ExperimentID)

	assert.Equal(t, "rep-1", result.ReportID)
	assert.Equal(t, "https://cdn.example.com/rep-1.pdf", result.PDFURL)
	assert.Equal(t, "ok", result.Message)
}

func TestGenerateUpstreamFailure(t *testing.T) {
	client := newTestReportClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("renderer exploded"))
	})

	_, err := client.Generate(context.Background(), "a@b.com", &Payload{})
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Contains(t, httpErr.Message, "500")
	assert.Contains(t, httpErr.Message, "renderer exploded")
}

func TestGenerateRejectsNonJSONSuccess(t *testing.T) {
	client := newTestReportClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>ok</html>"))
	})

	_, err := client.Generate(context.Background(), "a@b.com", &Payload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected JSON reply")
}
