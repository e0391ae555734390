package opal

import (
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/errs"
)

// Credentials is the credential block inside the Opal auth envelope.
type Credentials struct {
	AccessToken string `json:"access_token"`
}

// AuthContext is the authentication envelope Opal attaches to a tool
// invocation when the tool declares an auth requirement:
//
//	{
//	  "credentials": { "access_token": "..." },
//	  "context": { "project_id": "4678..." }
//	}
//
// Context is kept as a loose map because the platform is not consistent
// about the project id key spelling across providers.
type AuthContext struct {
	Credentials Credentials    `json:"credentials"`
	Context     map[string]any `json:"context"`
}

// AccessToken returns the bearer token from the envelope, or "" when the
// envelope (or the token itself) is absent.
func (a *AuthContext) AccessToken() string {
	if a == nil {
		return ""
	}
	return a.Credentials.AccessToken
}

// projectIDKeys lists the spellings Opal has been observed to use for
// the Optimizely project id, in resolution order.
var projectIDKeys = []string{"project_id", "projectId", "projectID"}

// ResolveProjectID applies the project id fallback chain: the explicit
// tool parameter wins, then the auth context is checked under each known
// key spelling. First non-empty value wins.
//
// Isolating the chain here keeps the "vendor inconsistently names this
// field" concern in one place; callers just get a value or a 400.
func ResolveProjectID(param string, auth *AuthContext) (string, error) {
	if param != "" {
		return param, nil
	}

	if auth != nil {
		for _, key := range projectIDKeys {
			switch v := auth.Context[key].(type) {
			case string:
				if v != "" {
					return v, nil
				}
			case float64:
				// JSON numbers decode as float64. Project ids are
				// integral, so format without a fraction.
				if v != 0 {
					return formatIntegral(v), nil
				}
			}
		}
	}

	return "", errs.MissingFieldError("project_id")
}
