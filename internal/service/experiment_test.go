package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/config"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/errs"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/opal"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/optimizely"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/server"
)

const testAccountID = int64(21468570738)

func testAppServer(optimizelyURL, reportURL string) *server.Server {
	logger := zerolog.Nop()

	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Optimizely: config.OptimizelyConfig{
				BaseURL:   optimizelyURL,
				AccountID: testAccountID,
			},
			Report: config.ReportConfig{
				FunctionURL:       reportURL,
				ReportPageBaseURL: "https://reports.example.com/view",
			},
		},
		Logger: &logger,
	}
}

func authWith(token, projectID string) *opal.AuthContext {
	auth := &opal.AuthContext{
		Credentials: opal.Credentials{AccessToken: token},
	}
	if projectID != "" {
		auth.Context = map[string]any{"project_id": projectID}
	}
	return auth
}

func newExperimentService(t *testing.T, upstream *httptest.Server) *ExperimentService {
	t.Helper()

	srv := testAppServer(upstream.URL, "http://unused.invalid")
	return NewExperimentService(srv, optimizely.NewClient(srv.Config, srv.Logger))
}

func TestUpdateExperimentInjectsMetricDefaults(t *testing.T) {
	var captured []byte
	var capturedMethod, capturedPath string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedMethod = r.Method
		capturedPath = r.URL.Path
		captured, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 12345, "status": "running"}`))
	}))
	defer upstream.Close()

	svc := newExperimentService(t, upstream)

	res, err := svc.UpdateExperiment(context.Background(), &UpdateExperimentRequest{
		Auth:         authWith("tok-123", ""),
		ExperimentID: "12345",
		Metrics:      `[{"event_id": 1}]`,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)

	assert.Equal(t, http.MethodPatch, capturedMethod)
	assert.Equal(t, "/v2/experiments/12345", capturedPath)

	var body map[string]any
	require.NoError(t, json.Unmarshal(captured, &body))

	assert.Equal(t, float64(testAccountID), body["account_id"])

	metrics, ok := body["metrics"].([]any)
	require.True(t, ok)
	require.Len(t, metrics, 1)

	metric := metrics[0].(map[string]any)
	assert.Equal(t, float64(1), metric["event_id"])
	assert.Equal(t, "unique", metric["aggregator"])
	assert.Equal(t, "visitor", metric["scope"])
	assert.Equal(t, "custom", metric["event_type"])
	assert.Equal(t, "increasing", metric["winning_direction"])
	assert.Equal(t, float64(testAccountID), metric["account_id"])
}

func TestUpdateExperimentOmitsAbsentFields(t *testing.T) {
	var captured []byte

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 99}`))
	}))
	defer upstream.Close()

	svc := newExperimentService(t, upstream)

	_, err := svc.UpdateExperiment(context.Background(), &UpdateExperimentRequest{
		Auth:         authWith("tok-123", ""),
		ExperimentID: "99",
		Status:       "paused",
	})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(captured, &body))

	assert.Equal(t, "paused", body["status"])
	assert.NotContains(t, body, "name")
	assert.NotContains(t, body, "description")
	assert.NotContains(t, body, "metrics")
}

func TestCreateExperimentDefaults(t *testing.T) {
	var captured []byte
	var capturedAuth string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedAuth = r.Header.Get("Authorization")
		captured, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 777, "name": "Checkout test"}`))
	}))
	defer upstream.Close()

	svc := newExperimentService(t, upstream)

	res, err := svc.CreateExperiment(context.Background(), &CreateExperimentRequest{
		Auth: authWith("tok-123", "4678210903568384"),
		Name: "Checkout test",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Bearer tok-123", capturedAuth)

	var body optimizely.ExperimentCreate
	require.NoError(t, json.Unmarshal(captured, &body))

	assert.Equal(t, int64(4678210903568384), body.ProjectID)
	assert.Equal(t, "not_started", body.Status)
	assert.Equal(t, "a/b", body.Type)

	require.Len(t, body.Variations, 2)
	assert.Equal(t, "Control", body.Variations[0].Name)
	assert.Equal(t, 5000, body.Variations[0].Weight)
	assert.Equal(t, 5000, body.Variations[1].Weight)
}

func TestCreateABTestPercentWeightsAndAudiences(t *testing.T) {
	var captured []byte

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 778}`))
	}))
	defer upstream.Close()

	svc := newExperimentService(t, upstream)

	_, err := svc.CreateABTest(context.Background(), &CreateABTestRequest{
		Auth:      authWith("tok-123", "111"),
		Name:      "Banner test",
		Audiences: "123, 456",
	})
	require.NoError(t, err)

	var body optimizely.ExperimentCreate
	require.NoError(t, json.Unmarshal(captured, &body))

	require.Len(t, body.Variations, 2)
	assert.Equal(t, 50, body.Variations[0].Weight)
	assert.Equal(t, 50, body.Variations[1].Weight)

	assert.JSONEq(t, `["and", {"audience_id": 123}, {"audience_id": 456}]`, body.AudienceConditions)
}

func TestMissingTokenRejectedBeforeDispatch(t *testing.T) {
	var calls int

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	svc := newExperimentService(t, upstream)
	events := NewEventsService(svc.server, svc.client)

	assertUnauthorized := func(t *testing.T, err error) {
		t.Helper()
		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
		assert.Contains(t, httpErr.Message, "access token")
	}

	_, err := svc.CreateExperiment(context.Background(), &CreateExperimentRequest{
		Auth: authWith("", "111"),
		Name: "No token",
	})
	assertUnauthorized(t, err)

	_, err = svc.CreateABTest(context.Background(), &CreateABTestRequest{
		Auth: authWith("", "111"),
		Name: "No token",
	})
	assertUnauthorized(t, err)

	_, err = svc.UpdateExperiment(context.Background(), &UpdateExperimentRequest{
		Auth:         nil,
		ExperimentID: "12345",
	})
	assertUnauthorized(t, err)

	_, err = events.ListEvents(context.Background(), &ListEventsRequest{
		Auth: authWith("", "111"),
	})
	assertUnauthorized(t, err)

	assert.Equal(t, 0, calls)
}

func TestCreateExperimentMalformedVariations(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upstream must not be called for malformed input")
	}))
	defer upstream.Close()

	svc := newExperimentService(t, upstream)

	_, err := svc.CreateExperiment(context.Background(), &CreateExperimentRequest{
		Auth:       authWith("tok-123", "111"),
		Name:       "Broken",
		Variations: `[{"name": "A"`,
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Contains(t, httpErr.Message, "variations")
	assert.Contains(t, httpErr.Message, `[{"name": "A"`)
}

func TestCreateExperimentMissingProjectID(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upstream must not be called without a project id")
	}))
	defer upstream.Close()

	svc := newExperimentService(t, upstream)

	_, err := svc.CreateExperiment(context.Background(), &CreateExperimentRequest{
		Auth: authWith("tok-123", ""),
		Name: "No project",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Contains(t, httpErr.Message, "project_id")
}

func TestCreateExperimentUsesConfiguredDefaultProject(t *testing.T) {
	var captured []byte

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 1}`))
	}))
	defer upstream.Close()

	srv := testAppServer(upstream.URL, "http://unused.invalid")
	srv.Config.Optimizely.DefaultProjectID = "314159"
	svc := NewExperimentService(srv, optimizely.NewClient(srv.Config, srv.Logger))

	_, err := svc.CreateExperiment(context.Background(), &CreateExperimentRequest{
		Auth: authWith("tok-123", ""),
		Name: "Fallback project",
	})
	require.NoError(t, err)

	var body optimizely.ExperimentCreate
	require.NoError(t, json.Unmarshal(captured, &body))
	assert.Equal(t, int64(314159), body.ProjectID)
}

func TestUpdateExperimentUpstreamErrorSurfacesDetail(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "insufficient scope"}`))
	}))
	defer upstream.Close()

	svc := newExperimentService(t, upstream)

	_, err := svc.UpdateExperiment(context.Background(), &UpdateExperimentRequest{
		Auth:         authWith("tok-123", ""),
		ExperimentID: "12345",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.Status)
	assert.Contains(t, httpErr.Message, "update_experiment")
	assert.Contains(t, httpErr.Message, "403")
	assert.Contains(t, httpErr.Message, "insufficient scope")
}
