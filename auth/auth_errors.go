package auth

import (
	apperrors "github.com/jrsteele09/portfolio-lab/internal/errors"
)

var (
	ErrInvalidCredentials = apperrors.ErrInvalidCredentials
	ErrBackendUnavailable = apperrors.ErrUnavailable
	ErrMissingCredentials = apperrors.ErrMissingCredentials
	ErrRateLimited        = apperrors.ErrRateLimited
)

// Messages shown to the person logging in.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgBackendUnavailable = "Login service is unavailable. Please try again later."
	MsgMissingCredentials = "Please enter both email and password"
	MsgRateLimited        = "Too many login attempts. Please try again later."
)

// Error is the failure returned by Login. Kind is one of the sentinels above
// and Message is safe to display.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidCredentials() *Error {
	return &Error{Kind: ErrInvalidCredentials, Message: MsgInvalidCredentials}
}

func backendUnavailable(err error) *Error {
	return &Error{Kind: ErrBackendUnavailable, Message: MsgBackendUnavailable, Err: err}
}

func rateLimited(err error) *Error {
	return &Error{Kind: ErrRateLimited, Message: MsgRateLimited, Err: err}
}

func missingCredentials() *Error {
	return &Error{Kind: ErrMissingCredentials, Message: MsgMissingCredentials}
}

// Message returns the display message for err, falling back to the
// unavailable message for errors that did not come from this package.
func Message(err error) string {
	var authErr *Error
	if apperrors.As(err, &authErr) {
		return authErr.Message
	}
	return MsgBackendUnavailable
}
