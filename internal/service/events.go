package service

import (
	"context"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/opal"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/optimizely"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/server"
)

// defaultPerPage caps event listings when the caller does not size the
// page.
const defaultPerPage = 25

// EventsService implements the list_events tool.
type EventsService struct {
	server *server.Server
	client *optimizely.Client
}

func NewEventsService(s *server.Server, client *optimizely.Client) *EventsService {
	return &EventsService{
		server: s,
		client: client,
	}
}

// ListEventsRequest is the list_events tool input. The project id is
// optional and falls back through the auth context to the configured
// default.
type ListEventsRequest struct {
	Auth      *opal.AuthContext `json:"auth"`
	ProjectID string            `json:"project_id"`
	PerPage   int               `json:"per_page"`
}

func (r *ListEventsRequest) Validate() error {
	return validate.Struct(r)
}

// ListEventsResponse carries the Optimizely events list verbatim plus a
// count so the model does not have to measure the array itself.
type ListEventsResponse struct {
	Success bool `json:"success"`
	Events  any  `json:"events"`
	Count   int  `json:"count"`
}

// ListEvents fetches the events of a project.
func (s *EventsService) ListEvents(ctx context.Context, req *ListEventsRequest) (*ListEventsResponse, error) {
	const tool = "list_events"

	projectID, err := opal.ResolveProjectID(req.ProjectID, req.Auth)
	if err != nil {
		fallback := s.server.Config.Optimizely.DefaultProjectID
		if fallback == "" {
			return nil, err
		}
		projectID = fallback
	}

	perPage := req.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	token, err := resolveToken(req.Auth)
	if err != nil {
		return nil, err
	}

	result, err := s.client.ListEvents(ctx, token, projectID, perPage)
	if err != nil {
		return nil, wrapTool(tool, err)
	}

	events := result.Value()
	count := 0
	if list, ok := events.([]any); ok {
		count = len(list)
	}

	return &ListEventsResponse{Success: true, Events: events, Count: count}, nil
}
