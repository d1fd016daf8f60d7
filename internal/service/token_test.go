package service_test

import (
	"testing"
	"time"

	"order-system-api/internal/config"
	"order-system-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService(secret string) service.TokenService {
	return service.NewTokenService(&config.Auth{
		SecretKey:          secret,
		AccessTokenMinutes: 120,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	ts := newTokenService("test-secret")

	token, err := ts.Issue(42, 30*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestTokenExpired(t *testing.T) {
	ts := newTokenService("test-secret")

	token, err := ts.Issue(7, -time.Minute)
	require.NoError(t, err)

	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := newTokenService("secret-a")
	verifier := newTokenService("secret-b")

	token, err := issuer.Issue(1, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestTokenMalformed(t *testing.T) {
	ts := newTokenService("test-secret")

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := ts.Verify(token)
		assert.ErrorIs(t, err, service.ErrTokenInvalid)
	}
}

func TestAccessTokenTTLFromConfig(t *testing.T) {
	ts := service.NewTokenService(&config.Auth{
		SecretKey:          "test-secret",
		AccessTokenMinutes: 15,
	})

	assert.Equal(t, 15*time.Minute, ts.AccessTokenTTL())
}
