package opal

// Parameter describes one input of a tool in the discovery manifest.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// AuthRequirement declares which auth provider a tool needs. Opal uses
// this to attach the matching AuthContext to each invocation.
type AuthRequirement struct {
	Provider    string   `json:"provider"`
	ScopeBundle string   `json:"scope_bundle,omitempty"`
	Required    bool     `json:"required"`
	Scopes      []string `json:"scopes,omitempty"`
}

// Tool is one entry in the discovery manifest: metadata only, no runtime
// logic. Endpoint is the path Opal should POST invocations to.
type Tool struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Endpoint     string            `json:"endpoint"`
	Parameters   []Parameter       `json:"parameters"`
	HTTPMethod   string            `json:"http_method"`
	AuthRequired []AuthRequirement `json:"auth_requirements,omitempty"`
}

// Manifest is the payload served at GET /discovery.
type Manifest struct {
	Functions []Tool `json:"functions"`
}

// Registry collects the tools this service exposes, in registration
// order, which is also the order they appear in the manifest.
type Registry struct {
	tools []Tool
}

// NewRegistry returns an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a tool definition to the manifest.
func (r *Registry) Register(t Tool) {
	r.tools = append(r.tools, t)
}

// Manifest materializes the discovery payload.
func (r *Registry) Manifest() Manifest {
	return Manifest{Functions: r.tools}
}
