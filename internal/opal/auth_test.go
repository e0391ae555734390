package opal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/errs"
)

func TestAccessToken(t *testing.T) {
	var nilCtx *AuthContext
	assert.Empty(t, nilCtx.AccessToken())

	auth := &AuthContext{Credentials: Credentials{AccessToken: "tok-1"}}
	assert.Equal(t, "tok-1", auth.AccessToken())
}

func TestResolveProjectID(t *testing.T) {
	tests := []struct {
		name  string
		param string
		auth  *AuthContext
		want  string
	}{
		{
			name:  "explicit parameter wins over context",
			param: "111",
			auth:  &AuthContext{Context: map[string]any{"project_id": "222"}},
			want:  "111",
		},
		{
			name: "snake case context key",
			auth: &AuthContext{Context: map[string]any{"project_id": "333"}},
			want: "333",
		},
		{
			name: "camel case context key",
			auth: &AuthContext{Context: map[string]any{"projectId": "444"}},
			want: "444",
		},
		{
			name: "upper id context key",
			auth: &AuthContext{Context: map[string]any{"projectID": "555"}},
			want: "555",
		},
		{
			name: "numeric context value",
			auth: &AuthContext{Context: map[string]any{"project_id": float64(4678210903568384)}},
			want: "4678210903568384",
		},
		{
			name: "empty string skipped in favor of later spelling",
			auth: &AuthContext{Context: map[string]any{"project_id": "", "projectId": "666"}},
			want: "666",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveProjectID(tt.param, tt.auth)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("nothing resolvable", func(t *testing.T) {
		_, err := ResolveProjectID("", &AuthContext{Context: map[string]any{}})
		require.Error(t, err)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 400, httpErr.Status)
		assert.Contains(t, httpErr.Message, "project_id")
	})

	t.Run("nil auth context", func(t *testing.T) {
		_, err := ResolveProjectID("", nil)
		require.Error(t, err)
	})
}
