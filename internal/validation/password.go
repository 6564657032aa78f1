package validation

import "errors"

// ValidatePassword validates password length bounds.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	// bcrypt silently truncates input longer than 72 bytes
	if len(password) > 72 {
		return errors.New("password must not exceed 72 characters")
	}

	return nil
}
