package validation

import (
	"errors"
	"regexp"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._]{3,30}$`)

// ValidateUsername validates a handle: 3-30 characters, letters, digits,
// dots and underscores only.
func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("username is required")
	}

	if !usernamePattern.MatchString(username) {
		return errors.New("username must be 3-30 characters of letters, digits, dots or underscores")
	}

	return nil
}
