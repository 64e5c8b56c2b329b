package auth

import "strings"

// Credentials are the transient email/password pair submitted at login.
// They are never persisted.
type Credentials struct {
	Email    string
	Password string
}

// ValidateCredentials rejects a submission with a blank email or password
// before any credential check runs.
func ValidateCredentials(c Credentials) error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return missingCredentials()
	}
	return nil
}
