package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pixelgram/pixelgram/internal/auth"
	"github.com/pixelgram/pixelgram/internal/ctxkeys"
)

// RequireAuth resolves the Authorization header to a caller identity and
// injects the user id into the request context. Requests without a valid
// bearer credential are rejected with 401 before reaching domain logic.
func RequireAuth(gate *auth.Gate) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			userID, err := gate.CallerID(r.Header.Get("Authorization"))
			if err != nil {
				if errors.Is(err, auth.ErrMissingAuthorization) {
					slog.Debug("request without bearer credential", "path", r.URL.Path)
				} else {
					slog.Warn("invalid bearer credential", "path", r.URL.Path, "error", err)
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}

			next(w, r.WithContext(ctxkeys.WithUserID(r.Context(), userID)))
		}
	}
}
