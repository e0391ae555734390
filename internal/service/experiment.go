package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/errs"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/opal"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/optimizely"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/server"
)

// ExperimentService implements the experiment tools: the two creation
// variants and the partial update.
type ExperimentService struct {
	server *server.Server
	client *optimizely.Client
}

func NewExperimentService(s *server.Server, client *optimizely.Client) *ExperimentService {
	return &ExperimentService{
		server: s,
		client: client,
	}
}

// CreateExperimentRequest is the create_experiment tool input.
//
// Variations and Metrics arrive as serialized JSON strings because Opal
// tool parameters are flat scalars; they are normalized here before
// dispatch.
type CreateExperimentRequest struct {
	Auth               *opal.AuthContext `json:"auth"`
	ProjectID          string            `json:"project_id"`
	Name               string            `json:"name" validate:"required"`
	Description        string            `json:"description"`
	Status             string            `json:"status"`
	Type               string            `json:"type"`
	Variations         string            `json:"variations"`
	Metrics            string            `json:"metrics"`
	AudienceConditions string            `json:"audience_conditions"`
}

func (r *CreateExperimentRequest) Validate() error {
	return validate.Struct(r)
}

// CreateABTestRequest is the create_ab_test tool input. Unlike
// create_experiment it takes audience ids (JSON array or CSV) and builds
// the audience_conditions expression itself, and its variation weights
// are whole percents.
type CreateABTestRequest struct {
	Auth        *opal.AuthContext `json:"auth"`
	ProjectID   string            `json:"project_id"`
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description"`
	Variations  string            `json:"variations"`
	Metrics     string            `json:"metrics"`
	Audiences   string            `json:"audiences"`
}

func (r *CreateABTestRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateExperimentRequest is the update_experiment tool input. Only
// supplied fields end up in the PATCH body.
type UpdateExperimentRequest struct {
	Auth               *opal.AuthContext `json:"auth"`
	ExperimentID       string            `json:"experiment_id" validate:"required"`
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	Status             string            `json:"status"`
	Metrics            string            `json:"metrics"`
	AudienceConditions string            `json:"audience_conditions"`
}

func (r *UpdateExperimentRequest) Validate() error {
	return validate.Struct(r)
}

// ExperimentResponse is the success envelope for the experiment tools,
// carrying the Optimizely reply verbatim.
type ExperimentResponse struct {
	Success    bool `json:"success"`
	Experiment any  `json:"experiment"`
}

// CreateExperiment normalizes the input, resolves project and token, and
// POSTs the experiment. Absent variations default to a 50/50
// control/treatment split in basis points.
func (s *ExperimentService) CreateExperiment(ctx context.Context, req *CreateExperimentRequest) (*ExperimentResponse, error) {
	const tool = "create_experiment"

	projectID, err := s.projectID(req.ProjectID, req.Auth)
	if err != nil {
		return nil, err
	}

	variations, err := parseVariations(req.Variations)
	if err != nil {
		return nil, err
	}
	if len(variations) == 0 {
		variations = optimizely.DefaultVariationsBasisPoints()
	}

	metrics, err := s.parseMetrics(req.Metrics)
	if err != nil {
		return nil, err
	}

	token, err := resolveToken(req.Auth)
	if err != nil {
		return nil, err
	}

	body := optimizely.ExperimentCreate{
		ProjectID:          projectID,
		Name:               req.Name,
		Description:        req.Description,
		Status:             defaultString(req.Status, optimizely.DefaultStatus),
		Type:               defaultString(req.Type, optimizely.DefaultType),
		Variations:         variations,
		Metrics:            metrics,
		AudienceConditions: req.AudienceConditions,
	}

	result, err := s.client.CreateExperiment(ctx, token, body)
	if err != nil {
		return nil, wrapTool(tool, err)
	}

	return &ExperimentResponse{Success: true, Experiment: result.Value()}, nil
}

// CreateABTest is the guided creation variant: percent weights, a fixed
// a/b type, and audience targeting by id list.
func (s *ExperimentService) CreateABTest(ctx context.Context, req *CreateABTestRequest) (*ExperimentResponse, error) {
	const tool = "create_ab_test"

	projectID, err := s.projectID(req.ProjectID, req.Auth)
	if err != nil {
		return nil, err
	}

	variations, err := parseVariations(req.Variations)
	if err != nil {
		return nil, err
	}
	if len(variations) == 0 {
		variations = optimizely.DefaultVariationsPercent()
	}

	metrics, err := s.parseMetrics(req.Metrics)
	if err != nil {
		return nil, err
	}

	audienceConditions, err := buildAudienceConditions(req.Audiences)
	if err != nil {
		return nil, err
	}

	token, err := resolveToken(req.Auth)
	if err != nil {
		return nil, err
	}

	body := optimizely.ExperimentCreate{
		ProjectID:          projectID,
		Name:               req.Name,
		Description:        req.Description,
		Status:             optimizely.DefaultStatus,
		Type:               optimizely.DefaultType,
		Variations:         variations,
		Metrics:            metrics,
		AudienceConditions: audienceConditions,
	}

	result, err := s.client.CreateExperiment(ctx, token, body)
	if err != nil {
		return nil, wrapTool(tool, err)
	}

	return &ExperimentResponse{Success: true, Experiment: result.Value()}, nil
}

// UpdateExperiment PATCHes an experiment with only the supplied fields.
// The fixed account id is injected, and metric entries get their
// defaults, before dispatch.
func (s *ExperimentService) UpdateExperiment(ctx context.Context, req *UpdateExperimentRequest) (*ExperimentResponse, error) {
	const tool = "update_experiment"

	experimentID, err := opal.ParseID("experiment_id", req.ExperimentID)
	if err != nil {
		return nil, err
	}

	update := optimizely.ExperimentUpdate{}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Description != "" {
		update["description"] = req.Description
	}
	if req.Status != "" {
		update["status"] = req.Status
	}
	if req.AudienceConditions != "" {
		update["audience_conditions"] = req.AudienceConditions
	}

	if req.Metrics != "" {
		metrics, err := parseMetricList(req.Metrics)
		if err != nil {
			return nil, err
		}
		update["metrics"] = metrics
	}

	update = optimizely.ApplyUpdateDefaults(update, s.server.Config.Optimizely.AccountID)

	token, err := resolveToken(req.Auth)
	if err != nil {
		return nil, err
	}

	result, err := s.client.UpdateExperiment(ctx, token, experimentID, update)
	if err != nil {
		return nil, wrapTool(tool, err)
	}

	return &ExperimentResponse{Success: true, Experiment: result.Value()}, nil
}

// projectID runs the resolution chain: explicit parameter, auth context
// (under any known key spelling), then the configured default project.
func (s *ExperimentService) projectID(param string, auth *opal.AuthContext) (int64, error) {
	raw, err := opal.ResolveProjectID(param, auth)
	if err != nil {
		fallback := s.server.Config.Optimizely.DefaultProjectID
		if fallback == "" {
			return 0, err
		}
		raw = fallback
	}

	return opal.ParseID("project_id", raw)
}

// parseMetrics normalizes the serialized metrics parameter and fills
// each entry's defaults.
func (s *ExperimentService) parseMetrics(raw string) ([]optimizely.Metric, error) {
	metrics, err := parseMetricList(raw)
	if err != nil {
		return nil, err
	}

	for i, m := range metrics {
		metrics[i] = optimizely.ApplyMetricDefaults(m, s.server.Config.Optimizely.AccountID)
	}

	return metrics, nil
}

// resolveToken extracts the bearer token from the Opal envelope. An
// absent token is a 401 raised before any outbound call is made.
func resolveToken(auth *opal.AuthContext) (string, error) {
	token := auth.AccessToken()
	if token == "" {
		return "", errs.NewUnauthorizedError(
			"No Optimizely access token available. Connect your Optimizely account in Opal and try again.",
			false,
		)
	}
	return token, nil
}

// parseVariations decodes the serialized variations parameter. Malformed
// input is a descriptive 400 carrying the offending value.
func parseVariations(raw string) ([]optimizely.Variation, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	var variations []optimizely.Variation
	if err := json.Unmarshal([]byte(trimmed), &variations); err != nil {
		return nil, errs.NewBadRequestError(
			fmt.Sprintf("variations is not a valid JSON array: %s (value: %s)", err.Error(), raw),
			false,
			nil,
			[]errs.FieldError{{Field: "variations", Error: "must be a JSON array of {name, weight} objects"}},
		)
	}

	return variations, nil
}

// parseMetricList decodes the serialized metrics parameter without
// applying defaults; callers layer those on per tool.
func parseMetricList(raw string) ([]optimizely.Metric, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	var metrics []optimizely.Metric
	if err := json.Unmarshal([]byte(trimmed), &metrics); err != nil {
		return nil, errs.NewBadRequestError(
			fmt.Sprintf("metrics is not a valid JSON array: %s (value: %s)", err.Error(), raw),
			false,
			nil,
			[]errs.FieldError{{Field: "metrics", Error: "must be a JSON array of metric objects"}},
		)
	}

	return metrics, nil
}

// buildAudienceConditions turns an audience id list parameter into the
// Optimizely conditions expression ["and", {"audience_id": N}, ...].
func buildAudienceConditions(raw string) (string, error) {
	items, err := opal.ParseStringList("audiences", raw)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", nil
	}

	conditions := []any{"and"}
	for _, item := range items {
		id, err := opal.ParseID("audiences", item)
		if err != nil {
			return "", err
		}
		conditions = append(conditions, map[string]any{"audience_id": id})
	}

	encoded, err := json.Marshal(conditions)
	if err != nil {
		return "", fmt.Errorf("failed to encode audience conditions: %w", err)
	}

	return string(encoded), nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
