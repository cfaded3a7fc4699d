package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmart/storefront/pkg/config"
)

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer(config.JWTConfig{Secret: "secret", Issuer: "campusmart"}, time.Hour)
	require.NoError(t, err)

	token, cartID, err := issuer.Mint(time.Now())
	require.NoError(t, err)

	got, ok := issuer.CartID(token)
	require.True(t, ok)
	assert.Equal(t, cartID, got)
}

func TestTokenIssuerRejectsForeignTokens(t *testing.T) {
	issuer, err := NewTokenIssuer(config.JWTConfig{Secret: "secret", Issuer: "campusmart"}, time.Hour)
	require.NoError(t, err)
	other, err := NewTokenIssuer(config.JWTConfig{Secret: "other", Issuer: "campusmart"}, time.Hour)
	require.NoError(t, err)

	token, _, err := other.Mint(time.Now())
	require.NoError(t, err)
	_, ok := issuer.CartID(token)
	assert.False(t, ok)

	expired, _, err := issuer.Mint(time.Now().Add(-2 * time.Hour))
	require.NoError(t, err)
	_, ok = issuer.CartID(expired)
	assert.False(t, ok)

	_, ok = issuer.CartID("")
	assert.False(t, ok)
	_, ok = issuer.CartID("not-a-jwt")
	assert.False(t, ok)
}

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer(config.JWTConfig{Issuer: "x"}, time.Hour)
	assert.Error(t, err)
}

func TestTokenIssuerRenewKeepsCartReachable(t *testing.T) {
	ttl := 30 * 24 * time.Hour
	issuer, err := NewTokenIssuer(config.JWTConfig{Secret: "secret", Issuer: "campusmart"}, ttl)
	require.NoError(t, err)
	now := time.Now().UTC()

	fresh, freshID, err := issuer.Mint(now)
	require.NoError(t, err)
	same, id, ok := issuer.Renew(fresh, now.Add(time.Hour))
	require.True(t, ok)
	assert.Equal(t, fresh, same)
	assert.Equal(t, freshID, id)

	old, cartID, err := issuer.Mint(now.Add(-20 * 24 * time.Hour))
	require.NoError(t, err)
	renewed, id, ok := issuer.Renew(old, now)
	require.True(t, ok)
	assert.Equal(t, cartID, id)
	assert.NotEqual(t, old, renewed)

	// The original would have expired ten days from now; the renewed token
	// still resolves to the same cart after that.
	later := now.Add(25 * 24 * time.Hour)
	_, _, ok = issuer.Renew(old, later)
	assert.False(t, ok)
	_, id, ok = issuer.Renew(renewed, later)
	require.True(t, ok)
	assert.Equal(t, cartID, id)

	_, _, ok = issuer.Renew("forged", now)
	assert.False(t, ok)
}
