package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClaims struct{ username string }

func (c *testClaims) GetUsername() string { return c.username }

// testTokenValidator accepts a fixed set of tokens.
type testTokenValidator struct {
	valid map[string]string
}

func (v *testTokenValidator) ValidateToken(token string) (UsernameGetter, error) {
	username, ok := v.valid[token]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return &testClaims{username: username}, nil
}

func protected(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var seen string
	validator := &testTokenValidator{valid: map[string]string{"good-token": "ada"}}
	h := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := GetUsername(r)
		require.NoError(t, err)
		seen = username
		w.WriteHeader(http.StatusNoContent)
	}))
	return h, &seen
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{"valid token", "Bearer good-token", http.StatusNoContent},
		{"lowercase scheme", "bearer good-token", http.StatusNoContent},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized},
		{"no token", "Bearer", http.StatusUnauthorized},
		{"extra parts", "Bearer good-token extra", http.StatusUnauthorized},
		{"unknown token", "Bearer forged", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, seen := protected(t)
			req := httptest.NewRequest(http.MethodPost, "/api/scrape-job", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusUnauthorized {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, "Unauthorized", body["error"])
				assert.Empty(t, *seen)
			} else {
				assert.Equal(t, "ada", *seen)
			}
		})
	}
}

func TestGetUsername_Missing(t *testing.T) {
	_, err := GetUsername(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Error(t, err)
}
