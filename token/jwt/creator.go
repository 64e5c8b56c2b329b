package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/portfolio-lab/sessions"
	"github.com/jrsteele09/portfolio-lab/token"
)

// AccessToken is a signed token and the facts needed to revoke it later.
type AccessToken struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
}

// Creator issues the access tokens handed out by the credential-check endpoint
type Creator struct {
	signer  token.Signer
	issuer  string
	expiry  time.Duration
	nowTime func() time.Time
}

type Option func(*Creator)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(c *Creator) {
		c.nowTime = nowFunc
	}
}

// NewCreator creates a new JWT creator
func NewCreator(signer token.Signer, issuer string, expiry time.Duration, opts ...Option) (*Creator, error) {
	if signer == nil {
		return nil, errors.New("[NewCreator] signer is required")
	}
	if issuer == "" {
		return nil, errors.New("[NewCreator] issuer is required")
	}
	if expiry <= 0 {
		return nil, errors.New("[NewCreator] expiry must be positive")
	}
	c := &Creator{signer: signer, issuer: issuer, expiry: expiry, nowTime: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CreateAccessToken signs a token naming the subject and their role
func (c *Creator) CreateAccessToken(subject string, role sessions.Role) (*AccessToken, error) {
	if subject == "" {
		return nil, errors.New("[CreateAccessToken] subject is required")
	}
	if !role.Valid() {
		return nil, fmt.Errorf("[CreateAccessToken] unknown role %q", role)
	}

	now := c.nowTime()
	expiresAt := now.Add(c.expiry)
	jti := uuid.New().String()
	claims := jwtlib.MapClaims{
		"iss":  c.issuer,                // The issuer of the token
		"sub":  subject,                 // The account email
		"role": role.String(),           // admin or practice
		"iat":  now.Unix(),              // Issued At
		"exp":  expiresAt.Unix(),        // Expiry
		"jti":  jti,                     // Unique token ID for revocation
	}

	signed, err := c.signer.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("[CreateAccessToken] %w", err)
	}
	return &AccessToken{Token: signed, JTI: jti, ExpiresAt: expiresAt.Truncate(time.Second)}, nil
}

// Expiry is the lifetime of issued tokens
func (c *Creator) Expiry() time.Duration {
	return c.expiry
}
