package jwt_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/portfolio-lab/internal/errors"
	"github.com/jrsteele09/portfolio-lab/sessions"
	"github.com/jrsteele09/portfolio-lab/token"
	"github.com/jrsteele09/portfolio-lab/token/jwt"
	"github.com/stretchr/testify/require"
)

const (
	secretStr = "1234"
	issuer    = "portfolio-lab-test"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func setup(t *testing.T) (*jwt.Creator, *jwt.Inspector, *token.InMemoryRevokedTokenCache, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	signer, err := token.NewHMACSigner(secretStr)
	require.NoError(t, err)
	creator, err := jwt.NewCreator(signer, issuer, 30*time.Minute, jwt.WithNowTime(c.Now))
	require.NoError(t, err)
	revoked := token.NewInMemoryRevokedTokenCache(c.Now)
	return creator, jwt.NewInspector(signer, issuer, revoked, c.Now), revoked, c
}

func TestCreateAndIntrospect(t *testing.T) {
	creator, inspector, _, c := setup(t)

	at, err := creator.CreateAccessToken("admin@example.com", sessions.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, at.JTI)
	require.True(t, c.now.Add(30*time.Minute).Equal(at.ExpiresAt))

	info, err := inspector.Introspect(at.Token)
	require.NoError(t, err)
	require.True(t, info.Active)
	require.Equal(t, "admin@example.com", *info.Sub)
	require.Equal(t, "admin", info.Role)
	require.Equal(t, issuer, *info.Iss)
	require.Equal(t, c.now.Unix(), *info.Iat)
	require.Equal(t, at.JTI, info.Jti)
}

func TestIntrospectRejects(t *testing.T) {
	creator, inspector, _, c := setup(t)
	at, err := creator.CreateAccessToken("practice@example.com", sessions.RolePractice)
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		info, err := inspector.Introspect("  ")
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
		require.False(t, info.Active)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := token.NewHMACSigner("other")
		require.NoError(t, err)
		info, err := jwt.NewInspector(other, issuer, nil, c.Now).Introspect(at.Token)
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
		require.False(t, info.Active)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		signer, err := token.NewHMACSigner(secretStr)
		require.NoError(t, err)
		_, err = jwt.NewInspector(signer, "someone-else", nil, c.Now).Introspect(at.Token)
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, jwtlib.MapClaims{
			"iss": issuer, "sub": "x", "role": "admin", "exp": c.now.Add(time.Hour).Unix(),
		}).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = inspector.Introspect(raw)
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		c.now = c.now.Add(31 * time.Minute)
		info, err := inspector.Introspect(at.Token)
		require.ErrorIs(t, err, apperrors.ErrTokenExpired)
		require.False(t, info.Active)
	})
}

func TestRevokedTokenIsInactive(t *testing.T) {
	creator, inspector, revoked, c := setup(t)
	at, err := creator.CreateAccessToken("practice@example.com", sessions.RolePractice)
	require.NoError(t, err)

	revoked.Add(at.JTI, at.ExpiresAt)
	info, err := inspector.Introspect(at.Token)
	require.NoError(t, err)
	require.False(t, info.Active)

	revoked.Cleanup()
	require.Equal(t, 1, revoked.Len())
	c.now = at.ExpiresAt.Add(time.Second)
	revoked.Cleanup()
	require.Equal(t, 0, revoked.Len())
}

func TestCreatorValidation(t *testing.T) {
	signer, err := token.NewHMACSigner(secretStr)
	require.NoError(t, err)

	_, err = jwt.NewCreator(nil, issuer, time.Minute)
	require.Error(t, err)
	_, err = jwt.NewCreator(signer, "", time.Minute)
	require.Error(t, err)
	_, err = jwt.NewCreator(signer, issuer, 0)
	require.Error(t, err)

	creator, err := jwt.NewCreator(signer, issuer, time.Minute)
	require.NoError(t, err)
	_, err = creator.CreateAccessToken("", sessions.RoleAdmin)
	require.Error(t, err)
	_, err = creator.CreateAccessToken("x", "root")
	require.Error(t, err)

	_, err = token.NewHMACSigner("")
	require.Error(t, err)
}
