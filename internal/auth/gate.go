// Package auth bridges the transport-level Authorization header to a
// verified caller identity.
package auth

import (
	"errors"
	"strings"

	"github.com/pixelgram/pixelgram/internal/token"
)

// ErrMissingAuthorization means the header was absent or did not use the
// Bearer scheme. Distinguished from token.ErrInvalidToken for diagnostics
// only; both reject the request.
var ErrMissingAuthorization = errors.New("missing or malformed authorization header")

const bearerPrefix = "Bearer "

// Gate resolves inbound Authorization headers to user ids. It holds no
// state beyond the token service and re-verifies on every call.
type Gate struct {
	tokens *token.Service
}

func NewGate(tokens *token.Service) *Gate {
	return &Gate{tokens: tokens}
}

// CallerID extracts the bearer token from the given Authorization header
// value and returns the user id it asserts. Verification failures from the
// token service propagate unchanged.
func (g *Gate) CallerID(authorizationHeader string) (int, error) {
	if !strings.HasPrefix(authorizationHeader, bearerPrefix) {
		return 0, ErrMissingAuthorization
	}

	return g.tokens.UserID(authorizationHeader[len(bearerPrefix):])
}
