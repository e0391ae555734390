package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/server"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/service"
)

// EventsHandler exposes the list_events tool.
type EventsHandler struct {
	Handler
	service *service.EventsService
}

func NewEventsHandler(s *server.Server, svc *service.EventsService) *EventsHandler {
	return &EventsHandler{
		Handler: NewHandler(s),
		service: svc,
	}
}

// ListEvents handles POST /tools/list_events.
func (h *EventsHandler) ListEvents(c echo.Context, req *service.ListEventsRequest) (*service.ListEventsResponse, error) {
	return h.service.ListEvents(c.Request().Context(), req)
}
