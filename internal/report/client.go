package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/config"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/errs"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/lib/upstream"
)

const upstreamName = "Report function"

// GenerateRequest is the body POSTed to the hosted report function.
type GenerateRequest struct {
	RecipientEmail string   `json:"recipientEmail"`
	Report         *Payload `json:"report"`
}

// GenerateResult is the function's reply.
type GenerateResult struct {
	ReportID string `json:"reportId"`
	PDFURL   string `json:"pdfUrl"`
	Message  string `json:"message"`
}

// Client submits report payloads to the hosted report-generation
// function.
type Client struct {
	functionURL string
	httpClient  *http.Client
	logger      *zerolog.Logger
}

// NewClient builds a Client pointed at the configured function URL.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		functionURL: cfg.Report.FunctionURL,
		httpClient: &http.Client{
			// Report rendering is slower than a plain API call.
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// Generate POSTs the recipient and payload to the function and returns
// its {reportId, pdfUrl, message} reply.
func (c *Client) Generate(ctx context.Context, recipientEmail string, payload *Payload) (*GenerateResult, error) {
	encoded, err := json.Marshal(GenerateRequest{
		RecipientEmail: recipientEmail,
		Report:         payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.functionURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to build report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewTransportError(upstreamName, err)
	}
	defer resp.Body.Close()

	body, err := upstream.Check(upstreamName, resp)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("report function call completed")

	if body.Kind != upstream.KindJSON {
		return nil, errs.NewUpstreamError(upstreamName, resp.StatusCode,
			fmt.Sprintf("expected JSON reply, got: %s", body.Text))
	}

	// Round-trip through JSON to map the loose body onto the typed
	// result. Unknown fields are dropped, absent fields stay zero.
	reencoded, err := json.Marshal(body.JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode report reply: %w", err)
	}

	var result GenerateResult
	if err := json.Unmarshal(reencoded, &result); err != nil {
		return nil, fmt.Errorf("failed to decode report reply: %w", err)
	}

	return &result, nil
}
