package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTer(ttl time.Duration) *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "estate-api", TTL: ttl}
}

func TestIssueParseRoundTrip(t *testing.T) {
	j := newTestJWTer(time.Hour)

	tok, err := j.Issue("u-123", "user")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-123", claims.UID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "estate-api", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	j := newTestJWTer(time.Hour)
	tok, err := j.Issue("u-123", "user")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("another-secret"), Issuer: "estate-api", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err)
	assert.False(t, IsExpired(err))
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	j := newTestJWTer(time.Hour)
	tok, err := j.Issue("u-123", "user")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("test-secret"), Issuer: "someone-else", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParseExpiredToken(t *testing.T) {
	// 超过 60s leeway 才算过期
	j := newTestJWTer(-2 * time.Minute)
	tok, err := j.Issue("u-123", "user")
	require.NoError(t, err)

	_, err = j.Parse(tok)
	require.Error(t, err)
	assert.True(t, IsExpired(err))
}
