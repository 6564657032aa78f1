package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := New("test-secret", time.Hour)

	tokenString, err := svc.Issue(42, "amy@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	userID, err := svc.UserID(tokenString)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)

	email, err := svc.Email(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "amy@example.com", email)

	assert.True(t, svc.Valid(tokenString))
}

func TestIssueRejectsNonPositiveUserID(t *testing.T) {
	svc := New("test-secret", time.Hour)

	_, err := svc.Issue(0, "amy@example.com")
	assert.ErrorIs(t, err, ErrInvalidUserID)

	_, err = svc.Issue(-7, "amy@example.com")
	assert.ErrorIs(t, err, ErrInvalidUserID)
}

func TestExpiredTokenRejected(t *testing.T) {
	// Negative TTL produces a token that is already past its expiry.
	svc := New("test-secret", -time.Minute)

	tokenString, err := svc.Issue(1, "amy@example.com")
	require.NoError(t, err)

	_, err = svc.UserID(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.False(t, svc.Valid(tokenString))
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := New("secret-a", time.Hour)
	verifier := New("secret-b", time.Hour)

	tokenString, err := issuer.Issue(1, "amy@example.com")
	require.NoError(t, err)

	_, err = verifier.UserID(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.False(t, verifier.Valid(tokenString))
}

func TestTamperedSignatureRejected(t *testing.T) {
	svc := New("test-secret", time.Hour)

	tokenString, err := svc.Issue(1, "amy@example.com")
	require.NoError(t, err)

	parts := strings.Split(tokenString, ".")
	require.Len(t, parts, 3)

	// Flip one byte of the signature segment.
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	assert.False(t, svc.Valid(tampered))
	_, err = svc.UserID(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMalformedTokensNeverPanic(t *testing.T) {
	svc := New("test-secret", time.Hour)

	for _, tokenString := range []string{
		"",
		"garbage",
		"a.b",
		"a.b.c",
		"eyJhbGciOiJub25lIn0.eyJzdWIiOiIxIn0.",
	} {
		assert.False(t, svc.Valid(tokenString), "token %q", tokenString)

		_, err := svc.UserID(tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tokenString)

		_, err = svc.Email(tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tokenString)
	}
}

func TestExpiryBoundary(t *testing.T) {
	svc := New("test-secret", time.Hour)

	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	tokenString, err := svc.Issue(1, "amy@example.com")
	require.NoError(t, err)

	expiry := issued.Add(time.Hour)

	// Just inside the window.
	svc.now = func() time.Time { return expiry.Add(-time.Millisecond) }
	assert.True(t, svc.Valid(tokenString))
	userID, err := svc.UserID(tokenString)
	require.NoError(t, err)
	assert.Equal(t, 1, userID)

	// Just past it.
	svc.now = func() time.Time { return expiry.Add(time.Millisecond) }
	assert.False(t, svc.Valid(tokenString))
	_, err = svc.UserID(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
