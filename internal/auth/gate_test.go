package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelgram/pixelgram/internal/token"
)

func TestCallerID(t *testing.T) {
	tokens := token.New("test-secret", time.Hour)
	gate := NewGate(tokens)

	valid, err := tokens.Issue(7, "amy@example.com")
	require.NoError(t, err)

	t.Run("valid bearer token", func(t *testing.T) {
		id, err := gate.CallerID("Bearer " + valid)
		require.NoError(t, err)
		assert.Equal(t, 7, id)
	})

	t.Run("rejected headers", func(t *testing.T) {
		tests := []struct {
			name   string
			header string
			want   error
		}{
			{"absent", "", ErrMissingAuthorization},
			{"wrong scheme", "Token abc", ErrMissingAuthorization},
			{"bare scheme", "Bearer", ErrMissingAuthorization},
			{"lowercase scheme", "bearer " + valid, ErrMissingAuthorization},
			{"garbage token", "Bearer not-a-token", token.ErrInvalidToken},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := gate.CallerID(tt.header)
				assert.ErrorIs(t, err, tt.want)
			})
		}
	})

	t.Run("wrong secret propagates token error", func(t *testing.T) {
		other, err := token.New("other-secret", time.Hour).Issue(7, "amy@example.com")
		require.NoError(t, err)

		_, err = gate.CallerID("Bearer " + other)
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})
}
