package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/opal"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/server"
)

// DiscoveryHandler serves the tool manifest Opal fetches to learn which
// capabilities this service exposes and how to invoke them.
type DiscoveryHandler struct {
	Handler
	registry *opal.Registry
}

func NewDiscoveryHandler(s *server.Server) *DiscoveryHandler {
	return &DiscoveryHandler{
		Handler:  NewHandler(s),
		registry: buildRegistry(),
	}
}

// Discovery handles GET /discovery.
func (h *DiscoveryHandler) Discovery(c echo.Context) error {
	return c.JSON(http.StatusOK, h.registry.Manifest())
}

// optimizelyAuth is the auth requirement shared by every tool that
// calls the Optimizely API on the user's behalf.
func optimizelyAuth() []opal.AuthRequirement {
	return []opal.AuthRequirement{
		{Provider: "optimizely", Required: true},
	}
}

// buildRegistry declares the manifest entries for every tool endpoint.
// Registration order is manifest order.
func buildRegistry() *opal.Registry {
	registry := opal.NewRegistry()

	projectID := opal.Parameter{
		Name:        "project_id",
		Type:        "string",
		Description: "Optimizely project id. Falls back to the connected account's project when omitted.",
	}

	registry.Register(opal.Tool{
		Name:        "create_experiment",
		Description: "Create an Optimizely experiment. Defaults to a 50/50 Control vs Variation #1 split when no variations are given.",
		Endpoint:    "/tools/create_experiment",
		HTTPMethod:  http.MethodPost,
		Parameters: []opal.Parameter{
			projectID,
			{Name: "name", Type: "string", Description: "Experiment name.", Required: true},
			{Name: "description", Type: "string", Description: "Experiment description."},
			{Name: "status", Type: "string", Description: "Initial status, defaults to not_started."},
			{Name: "type", Type: "string", Description: "Experiment type, defaults to a/b."},
			{Name: "variations", Type: "string", Description: "JSON array of {name, weight} objects; weights are basis points summing to 10000."},
			{Name: "metrics", Type: "string", Description: "JSON array of metric objects; missing metric fields get sensible defaults."},
			{Name: "audience_conditions", Type: "string", Description: "Optimizely audience conditions expression."},
		},
		AuthRequired: optimizelyAuth(),
	})

	registry.Register(opal.Tool{
		Name:        "create_ab_test",
		Description: "Create a simple A/B test. Variation weights are whole percents summing to 100; audiences are targeted by id.",
		Endpoint:    "/tools/create_ab_test",
		HTTPMethod:  http.MethodPost,
		Parameters: []opal.Parameter{
			projectID,
			{Name: "name", Type: "string", Description: "Test name.", Required: true},
			{Name: "description", Type: "string", Description: "Test description."},
			{Name: "variations", Type: "string", Description: "JSON array of {name, weight} objects; weights are percents summing to 100."},
			{Name: "metrics", Type: "string", Description: "JSON array of metric objects."},
			{Name: "audiences", Type: "string", Description: "Audience ids as a JSON array or comma-separated string."},
		},
		AuthRequired: optimizelyAuth(),
	})

	registry.Register(opal.Tool{
		Name:        "update_experiment",
		Description: "Update an existing experiment. Only supplied fields are changed.",
		Endpoint:    "/tools/update_experiment",
		HTTPMethod:  http.MethodPost,
		Parameters: []opal.Parameter{
			{Name: "experiment_id", Type: "string", Description: "Numeric experiment id.", Required: true},
			{Name: "name", Type: "string", Description: "New experiment name."},
			{Name: "description", Type: "string", Description: "New description."},
			{Name: "status", Type: "string", Description: "New status."},
			{Name: "metrics", Type: "string", Description: "JSON array of metric objects replacing the experiment's metrics."},
			{Name: "audience_conditions", Type: "string", Description: "New audience conditions expression."},
		},
		AuthRequired: optimizelyAuth(),
	})

	registry.Register(opal.Tool{
		Name:        "list_events",
		Description: "List the events of an Optimizely project, for picking metric event ids.",
		Endpoint:    "/tools/list_events",
		HTTPMethod:  http.MethodPost,
		Parameters: []opal.Parameter{
			projectID,
			{Name: "per_page", Type: "integer", Description: "Page size, defaults to 25."},
		},
		AuthRequired: optimizelyAuth(),
	})

	registry.Register(opal.Tool{
		Name:        "generate_experiment_report",
		Description: "Generate a PDF results report from raw experiment results and email a link to the recipient.",
		Endpoint:    "/tools/generate_experiment_report",
		HTTPMethod:  http.MethodPost,
		Parameters: []opal.Parameter{
			{Name: "recipient_email", Type: "string", Description: "Email address that receives the report link.", Required: true},
			{Name: "results", Type: "string", Description: "Raw Stats API results payload as a JSON string.", Required: true},
			{Name: "recommendation_status", Type: "string", Description: "Recommendation status shown on the report."},
			{Name: "recommendation_title", Type: "string", Description: "Recommendation title shown on the report."},
			{Name: "recommendation_description", Type: "string", Description: "Recommendation body shown on the report."},
			{Name: "actions", Type: "string", Description: "Follow-up actions as a JSON array or comma-separated string."},
		},
	})

	return registry
}
