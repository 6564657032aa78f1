// Package token issues and verifies the signed bearer credentials that
// gate every mutating API operation. A credential carries the user id as
// its subject plus an auxiliary email claim, and is valid until the
// configured TTL elapses or the signature stops matching the secret.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrInvalidUserID = errors.New("user id must be positive")
)

// Service is a stateless issuer/verifier. It is a pure function of its
// immutable secret, TTL, and the wall clock, so a single instance is safe
// for arbitrary concurrent use.
type Service struct {
	secret []byte
	ttl    time.Duration

	// now is replaceable in tests to pin the expiry boundary.
	now func() time.Time
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a signed credential for the given user. The subject is the
// string-encoded user id; email rides along as a claim but is never trusted
// for authorization decisions.
func (s *Service) Issue(userID int, email string) (string, error) {
	if userID <= 0 {
		return "", ErrInvalidUserID
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":   strconv.Itoa(userID),
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// UserID verifies the credential and returns the user id it asserts.
// Signature mismatch, malformed payload, and expiry are all terminal and
// indistinguishable to callers beyond ErrInvalidToken.
func (s *Service) UserID(tokenString string) (int, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return 0, err
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	id, err := strconv.Atoi(sub)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: malformed subject", ErrInvalidToken)
	}

	return id, nil
}

// Email verifies the credential and returns its email claim.
func (s *Service) Email(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}

	email, ok := claims["email"].(string)
	if !ok {
		return "", fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}

	return email, nil
}

// Valid reports whether the credential would pass verification. It never
// returns an error; any failure is just false.
func (s *Service) Valid(tokenString string) bool {
	_, err := s.parse(tokenString)
	return err == nil
}

func (s *Service) parse(tokenString string) (jwt.MapClaims, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok || !t.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
