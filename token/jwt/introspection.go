package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/portfolio-lab/internal/errors"
	"github.com/jrsteele09/portfolio-lab/internal/utils"
	"github.com/jrsteele09/portfolio-lab/token"
)

// TokenIntrospection represents the metadata of an issued access token.
// When Active is false the other fields may not be populated.
type TokenIntrospection struct {
	Active bool    `json:"active"`         // Is the token valid
	Sub    *string `json:"sub,omitempty"`  // Account email
	Role   string  `json:"role,omitempty"` // admin or practice
	Iss    *string `json:"iss,omitempty"`  // Issuer of the token
	Iat    *int64  `json:"iat,omitempty"`  // Issued at time
	Exp    *int64  `json:"exp,omitempty"`  // Expiration
	Jti    string  `json:"jti,omitempty"`  // Token ID
}

// RevokedChecker is an interface for checking if a token has been revoked
type RevokedChecker interface {
	IsRevoked(jti string) bool
}

// Inspector handles JWT token introspection and validation
type Inspector struct {
	signer         token.Signer
	issuer         string
	revokedChecker RevokedChecker
	nowTime        func() time.Time
}

// NewInspector creates a new JWT inspector. revokedChecker may be nil.
func NewInspector(signer token.Signer, issuer string, revokedChecker RevokedChecker, nowTime func() time.Time) *Inspector {
	if nowTime == nil {
		nowTime = time.Now
	}
	return &Inspector{
		signer:         signer,
		issuer:         issuer,
		revokedChecker: revokedChecker,
		nowTime:        nowTime,
	}
}

// Introspect validates and extracts information from a JWT token
func (i *Inspector) Introspect(rawToken string) (*TokenIntrospection, error) {
	if strings.TrimSpace(rawToken) == "" {
		return &TokenIntrospection{Active: false}, apperrors.ErrInvalidToken
	}

	parsed, err := jwtlib.Parse(rawToken, i.signer.GetVerificationKey,
		jwtlib.WithValidMethods([]string{i.signer.GetSigningMethod().Alg()}),
		jwtlib.WithIssuer(i.issuer),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(i.nowTime),
	)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return &TokenIntrospection{Active: false}, apperrors.Wrapf(apperrors.ErrTokenExpired, "[Introspect] %v", err)
		}
		return &TokenIntrospection{Active: false}, apperrors.Wrapf(apperrors.ErrInvalidToken, "[Introspect] %v", err)
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return &TokenIntrospection{Active: false}, apperrors.Wrapf(apperrors.ErrInvalidToken, "[Introspect] error extracting claims")
	}

	iss, _ := claims["iss"].(string)
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	jti, _ := claims["jti"].(string)
	iat, _ := claims["iat"].(float64)
	exp, _ := claims["exp"].(float64)

	active := true
	if jti != "" && i.revokedChecker != nil && i.revokedChecker.IsRevoked(jti) {
		active = false
	}

	return &TokenIntrospection{
		Active: active,
		Sub:    utils.Ptr(sub),
		Role:   role,
		Iss:    utils.Ptr(iss),
		Iat:    utils.Ptr(int64(iat)),
		Exp:    utils.Ptr(int64(exp)),
		Jti:    jti,
	}, nil
}
