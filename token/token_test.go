package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/portfolio-lab/token"
	"github.com/stretchr/testify/require"
)

func TestHMACSignerDerivesKey(t *testing.T) {
	_, err := token.NewHMACSigner("")
	require.Error(t, err)

	signer, err := token.NewHMACSigner("secret")
	require.NoError(t, err)
	raw, err := signer.Sign(jwt.MapClaims{"sub": "admin@example.com"})
	require.NoError(t, err)

	_, err = jwt.Parse(raw, signer.GetVerificationKey)
	require.NoError(t, err)

	_, err = jwt.Parse(raw, func(*jwt.Token) (any, error) { return []byte("secret"), nil })
	require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid, "the raw secret is not the signing key")
}

func TestRevocationList(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := token.NewInMemoryRevokedTokenCache(clock, token.WithCapacity(2))

	c.Add("expired", now.Add(-time.Second))
	c.Add("", now.Add(time.Hour))
	require.Equal(t, 0, c.Len())

	c.Add("a", now.Add(time.Minute))
	c.Add("b", now.Add(time.Hour))
	c.Add("c", now.Add(2*time.Hour))
	require.Equal(t, 2, c.Len())
	require.False(t, c.IsRevoked("a"), "soonest expiry is evicted when full")
	require.True(t, c.IsRevoked("b"))
	require.True(t, c.IsRevoked("c"))

	now = now.Add(90 * time.Minute)
	require.False(t, c.IsRevoked("b"))
	c.Cleanup()
	require.Equal(t, 1, c.Len())
}
