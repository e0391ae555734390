package optimizely

// Variation is one arm of an experiment in a create payload.
//
// Weight units differ between the two creation tools: basis points
// summing to 10000 for create_experiment, percents summing to 100 for
// create_ab_test. The API shape is the same either way.
type Variation struct {
	Name        string `json:"name"`
	Weight      int    `json:"weight"`
	Description string `json:"description,omitempty"`
}

// Metric entries are kept as loose maps rather than structs so caller
// supplied fields pass through untouched; defaults are only injected for
// keys the caller omitted.
type Metric map[string]any

// ExperimentCreate is the request body for POST /v2/experiments.
type ExperimentCreate struct {
	ProjectID          int64       `json:"project_id"`
	Name               string      `json:"name"`
	Description        string      `json:"description,omitempty"`
	Status             string      `json:"status,omitempty"`
	Type               string      `json:"type,omitempty"`
	Variations         []Variation `json:"variations"`
	Metrics            []Metric    `json:"metrics,omitempty"`
	AudienceConditions string      `json:"audience_conditions,omitempty"`
}

// ExperimentUpdate is the request body for PATCH /v2/experiments/{id}.
// It is a loose map for the same passthrough reason as Metric.
type ExperimentUpdate map[string]any
