package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jrsteele09/portfolio-lab/sessions"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

var _ Checker = (*RemoteCheck)(nil)

// RemoteCheck verifies credentials with an OAuth2 password grant against a
// credential-check endpoint that answers {access_token, token_type, role}.
// Identical checks already in flight share one round trip.
type RemoteCheck struct {
	config  oauth2.Config
	client  *http.Client
	timeout time.Duration
	group   singleflight.Group
}

type RemoteCheckOption func(*RemoteCheck)

// WithHTTPClient replaces the client used to reach the endpoint.
func WithHTTPClient(c *http.Client) RemoteCheckOption {
	return func(rc *RemoteCheck) {
		rc.client = c
	}
}

func NewRemoteCheck(tokenURL, clientID string, timeout time.Duration, opts ...RemoteCheckOption) (*RemoteCheck, error) {
	if tokenURL == "" {
		return nil, errors.New("[Auth NewRemoteCheck] token URL is required")
	}
	if timeout <= 0 {
		return nil, errors.New("[Auth NewRemoteCheck] timeout must be positive")
	}
	rc := &RemoteCheck{
		config: oauth2.Config{
			ClientID: clientID,
			Endpoint: oauth2.Endpoint{
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		client:  http.DefaultClient,
		timeout: timeout,
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc, nil
}

// Check waits for the shared exchange or for ctx, whichever ends first. The
// exchange itself only stops at the check timeout, so one caller going away
// does not fail the others.
func (rc *RemoteCheck) Check(ctx context.Context, c Credentials) (sessions.Session, error) {
	ch := rc.group.DoChan(c.Email+"\x00"+c.Password, func() (any, error) {
		return rc.exchange(context.WithoutCancel(ctx), c)
	})
	select {
	case <-ctx.Done():
		return sessions.Session{}, backendUnavailable(fmt.Errorf("[Auth RemoteCheck] waiting for token response: %w", ctx.Err()))
	case res := <-ch:
		if res.Err != nil {
			return sessions.Session{}, res.Err
		}
		return res.Val.(sessions.Session), nil
	}
}

func (rc *RemoteCheck) exchange(ctx context.Context, c Credentials) (sessions.Session, error) {
	ctx, cancel := context.WithTimeout(context.WithValue(ctx, oauth2.HTTPClient, rc.client), rc.timeout)
	defer cancel()

	tok, err := rc.config.PasswordCredentialsToken(ctx, c.Email, c.Password)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			switch re.Response.StatusCode {
			case http.StatusBadRequest, http.StatusUnauthorized:
				return sessions.Session{}, invalidCredentials()
			case http.StatusTooManyRequests:
				return sessions.Session{}, rateLimited(fmt.Errorf("[Auth RemoteCheck] token request: %w", err))
			}
		}
		return sessions.Session{}, backendUnavailable(fmt.Errorf("[Auth RemoteCheck] token request: %w", err))
	}

	raw, _ := tok.Extra("role").(string)
	role, ok := sessions.ParseRole(raw)
	if !ok {
		return sessions.Session{}, backendUnavailable(fmt.Errorf("[Auth RemoteCheck] response carries unknown role %q", raw))
	}
	return sessions.Session{Token: tok.AccessToken, Role: role}, nil
}
