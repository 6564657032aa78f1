package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelgram/pixelgram/internal/auth"
	"github.com/pixelgram/pixelgram/internal/ctxkeys"
	"github.com/pixelgram/pixelgram/internal/token"
)

func newAuthTestServer(t *testing.T) (*token.Service, http.HandlerFunc) {
	t.Helper()

	tokens := token.New("test-secret", time.Hour)
	gate := auth.NewGate(tokens)

	handler := RequireAuth(gate)(func(w http.ResponseWriter, r *http.Request) {
		userID := ctxkeys.UserID(r.Context())
		assert.Equal(t, 42, userID)
		w.WriteHeader(http.StatusOK)
	})

	return tokens, handler
}

func TestRequireAuthAllowsValidBearer(t *testing.T) {
	tokens, handler := newAuthTestServer(t)

	tokenString, err := tokens.Issue(42, "amy@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)

	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthRejectsBadCredentials(t *testing.T) {
	tokens, handler := newAuthTestServer(t)

	expired := token.New("test-secret", -time.Minute)
	expiredToken, err := expired.Issue(42, "amy@example.com")
	require.NoError(t, err)

	validToken, err := tokens.Issue(42, "amy@example.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Token " + validToken},
		{"bare token without scheme", validToken},
		{"garbage token", "Bearer not.a.token"},
		{"expired token", "Bearer " + expiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
		})
	}
}
