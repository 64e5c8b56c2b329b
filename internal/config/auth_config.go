package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	AuthStrategyLocal  = "local"
	AuthStrategyRemote = "remote"
)

type AuthConfig interface {
	GetAuthStrategy() string
	GetRemoteTokenURL() string
	GetRemoteClientID() string
	GetRemoteTimeout() time.Duration
	GetTokenSecret() string
	GetTokenExpiry() time.Duration
	GetTokenIssuer() string
}

type AuthSettings struct {
	// Strategy picks the credential check: the built-in table or the
	// /token credential-check endpoint.
	Strategy       string        `koanf:"strategy" yaml:"strategy"`
	RemoteTokenURL string        `koanf:"remote_token_url" yaml:"remote_token_url"`
	RemoteClientID string        `koanf:"remote_client_id" yaml:"remote_client_id"`
	RemoteTimeout  time.Duration `koanf:"remote_timeout" yaml:"remote_timeout"`
	TokenSecret    string        `koanf:"token_secret" yaml:"token_secret"`
	TokenExpiry    time.Duration `koanf:"token_expiry" yaml:"token_expiry"`
	TokenIssuer    string        `koanf:"token_issuer" yaml:"token_issuer"`
}

func (a AuthSettings) validate(production bool) error {
	var errs []error
	switch a.Strategy {
	case AuthStrategyLocal:
	case AuthStrategyRemote:
		if a.RemoteTokenURL != "" {
			if u, err := url.Parse(a.RemoteTokenURL); err != nil || u.Scheme == "" || u.Host == "" {
				errs = append(errs, fmt.Errorf("auth.remote_token_url %q is not an absolute URL", a.RemoteTokenURL))
			}
		}
		if a.RemoteTimeout <= 0 {
			errs = append(errs, errors.New("auth.remote_timeout must be positive"))
		}
	default:
		errs = append(errs, fmt.Errorf("auth.strategy %q must be one of local, remote", a.Strategy))
	}
	if a.TokenExpiry <= 0 {
		errs = append(errs, errors.New("auth.token_expiry must be positive"))
	}
	if a.TokenSecret == "" || (production && a.TokenSecret == devSecret) {
		errs = append(errs, errors.New("auth.token_secret must be set"))
	}
	return errors.Join(errs...)
}

func (s *Settings) GetAuthStrategy() string {
	return s.Auth.Strategy
}

// GetRemoteTokenURL defaults to this site's own /token endpoint.
func (s *Settings) GetRemoteTokenURL() string {
	if s.Auth.RemoteTokenURL != "" {
		return s.Auth.RemoteTokenURL
	}
	return s.GetBaseURL() + "/token"
}

func (s *Settings) GetRemoteClientID() string {
	return s.Auth.RemoteClientID
}

func (s *Settings) GetRemoteTimeout() time.Duration {
	return s.Auth.RemoteTimeout
}

func (s *Settings) GetTokenSecret() string {
	return s.Auth.TokenSecret
}

func (s *Settings) GetTokenExpiry() time.Duration {
	return s.Auth.TokenExpiry
}

func (s *Settings) GetTokenIssuer() string {
	if s.Auth.TokenIssuer != "" {
		return s.Auth.TokenIssuer
	}
	return s.GetBaseURL()
}
