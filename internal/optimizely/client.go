package optimizely

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/config"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/errs"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/lib/upstream"
)

const upstreamName = "Optimizely"

// Client issues calls against the Optimizely v2 REST API.
//
// It is safe for concurrent use; every invocation is one independent
// request-response cycle with the bearer token supplied per call (the
// token belongs to the Opal user, not to this service).
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zerolog.Logger
}

// NewClient builds a Client from config. The base URL is fixed at
// construction; per-request state is limited to token and payload.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.Optimizely.BaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// CreateExperiment POSTs a new experiment.
func (c *Client) CreateExperiment(ctx context.Context, token string, body ExperimentCreate) (*upstream.Body, error) {
	return c.do(ctx, http.MethodPost, "/v2/experiments", token, nil, body)
}

// UpdateExperiment PATCHes an existing experiment by id.
func (c *Client) UpdateExperiment(ctx context.Context, token string, experimentID int64, body ExperimentUpdate) (*upstream.Body, error) {
	path := fmt.Sprintf("/v2/experiments/%d", experimentID)
	return c.do(ctx, http.MethodPatch, path, token, nil, body)
}

// ListEvents GETs the events of a project.
func (c *Client) ListEvents(ctx context.Context, token, projectID string, perPage int) (*upstream.Body, error) {
	query := url.Values{}
	query.Set("project_id", projectID)
	query.Set("per_page", strconv.Itoa(perPage))

	return c.do(ctx, http.MethodGet, "/v2/events", token, query, nil)
}

// do performs the single outbound call every tool dispatch boils down
// to: marshal the body, attach the bearer token, run the request, and
// interpret the reply. Non-2xx statuses become upstream errors carrying
// status, status text, and the stringified body; failures before a
// response exists become transport errors.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body any) (*upstream.Body, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s request body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", path, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewTransportError(upstreamName, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("optimizely call completed")

	return upstream.Check(upstreamName, resp)
}
