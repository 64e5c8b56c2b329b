package lab

import (
	"context"
	"time"

	apperrors "github.com/jrsteele09/portfolio-lab/internal/errors"
)

// SecureAPIKey unlocks the API playground's secure endpoint.
const SecureAPIKey = "abc123"

// SlowDelay is how long the API playground's slow endpoint waits.
const SlowDelay = 5 * time.Second

type LabUser struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
	LastLogin string `json:"lastLogin,omitempty"`
}

var labUsers = []LabUser{
	{ID: 1, Name: "John Doe", Email: "john@example.com", Role: "admin", CreatedAt: "2023-01-15T08:30:00Z", LastLogin: "2023-03-20T14:25:30Z"},
	{ID: 2, Name: "Jane Smith", Email: "jane@example.com", Role: "user", CreatedAt: "2023-01-20T10:15:00Z", LastLogin: "2023-03-18T09:45:20Z"},
}

// Users lists the API playground users without their timestamps.
func Users() []LabUser {
	out := make([]LabUser, 0, len(labUsers))
	for _, u := range labUsers {
		out = append(out, LabUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	}
	return out
}

// User returns one API playground user in full.
func User(id int) (LabUser, error) {
	for _, u := range labUsers {
		if u.ID == id {
			return u, nil
		}
	}
	return LabUser{}, apperrors.Wrapf(apperrors.ErrNotFound, "[lab User] user %d", id)
}

// Delay waits d or until ctx is done.
func Delay(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
