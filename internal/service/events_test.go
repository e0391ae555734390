package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/optimizely"
)

func newEventsService(t *testing.T, upstream *httptest.Server) *EventsService {
	t.Helper()

	srv := testAppServer(upstream.URL, "http://unused.invalid")
	return NewEventsService(srv, optimizely.NewClient(srv.Config, srv.Logger))
}

func TestListEvents(t *testing.T) {
	var capturedQuery url.Values
	var capturedPath string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedQuery = r.URL.Query()

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 1, "name": "purchase"}, {"id": 2, "name": "signup"}]`))
	}))
	defer upstream.Close()

	svc := newEventsService(t, upstream)

	res, err := svc.ListEvents(context.Background(), &ListEventsRequest{
		Auth: authWith("tok-123", "4678210903568384"),
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Count)

	events, ok := res.Events.([]any)
	require.True(t, ok)
	require.Len(t, events, 2)
	assert.Equal(t, "purchase", events[0].(map[string]any)["name"])

	assert.Equal(t, "/v2/events", capturedPath)
	assert.Equal(t, "4678210903568384", capturedQuery.Get("project_id"))
	assert.Equal(t, "25", capturedQuery.Get("per_page"))
}

func TestListEventsExplicitPageSize(t *testing.T) {
	var capturedQuery url.Values

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	svc := newEventsService(t, upstream)

	res, err := svc.ListEvents(context.Background(), &ListEventsRequest{
		Auth:      authWith("tok-123", ""),
		ProjectID: "111",
		PerPage:   100,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, res.Count)
	assert.Equal(t, "111", capturedQuery.Get("project_id"))
	assert.Equal(t, "100", capturedQuery.Get("per_page"))
}

func TestListEventsParamOverridesAuthContext(t *testing.T) {
	var capturedQuery url.Values

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	svc := newEventsService(t, upstream)

	_, err := svc.ListEvents(context.Background(), &ListEventsRequest{
		Auth:      authWith("tok-123", "999"),
		ProjectID: "111",
	})
	require.NoError(t, err)

	assert.Equal(t, "111", capturedQuery.Get("project_id"))
}
