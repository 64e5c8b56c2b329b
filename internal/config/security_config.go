package config

import (
	"errors"
	"time"
)

type SecurityConfig interface {
	GetLoginRateLimit() (attempts int, window time.Duration)
	GetCookieMaxAge() time.Duration
	GetSecureCookies() bool
}

type SecuritySettings struct {
	LoginAttempts int           `koanf:"login_attempts" yaml:"login_attempts"`
	LoginWindow   time.Duration `koanf:"login_window" yaml:"login_window"`
	CookieMaxAge  time.Duration `koanf:"cookie_max_age" yaml:"cookie_max_age"`
	SecureCookies bool          `koanf:"secure_cookies" yaml:"secure_cookies"`
}

func (s SecuritySettings) validate() error {
	var errs []error
	if s.LoginAttempts < 0 {
		errs = append(errs, errors.New("security.login_attempts must be non-negative"))
	}
	if s.LoginAttempts > 0 && s.LoginWindow <= 0 {
		errs = append(errs, errors.New("security.login_window must be positive"))
	}
	if s.CookieMaxAge < time.Second {
		errs = append(errs, errors.New("security.cookie_max_age must be at least 1s"))
	}
	return errors.Join(errs...)
}

// GetLoginRateLimit returns the allowed login attempts per email in each
// window. Zero attempts disables limiting.
func (s *Settings) GetLoginRateLimit() (int, time.Duration) {
	return s.Security.LoginAttempts, s.Security.LoginWindow
}

func (s *Settings) GetCookieMaxAge() time.Duration {
	return s.Security.CookieMaxAge
}

func (s *Settings) GetSecureCookies() bool {
	return s.Security.SecureCookies
}
