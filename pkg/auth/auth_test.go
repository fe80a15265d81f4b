package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTValidator_RoundTrip(t *testing.T) {
	v, err := NewJWTValidator(JWTConfig{SecretKey: "secret", Issuer: "archibridge", Audience: []string{"archibridge-api"}})
	require.NoError(t, err)

	token, err := v.IssueToken("alice", []string{"modeller"}, time.Minute)
	require.NoError(t, err)

	claims, err := v.ValidateToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.UserID)
	assert.Equal(t, []string{"modeller"}, claims.Roles)
}

func TestJWTValidator_Rejects(t *testing.T) {
	v, err := NewJWTValidator(JWTConfig{SecretKey: "secret", Issuer: "archibridge"})
	require.NoError(t, err)
	other, err := NewJWTValidator(JWTConfig{SecretKey: "other", Issuer: "archibridge"})
	require.NoError(t, err)
	foreign, err := NewJWTValidator(JWTConfig{SecretKey: "secret", Issuer: "someone-else"})
	require.NoError(t, err)

	expired, err := v.IssueToken("alice", nil, -time.Minute)
	require.NoError(t, err)
	forged, err := other.IssueToken("alice", nil, time.Minute)
	require.NoError(t, err)
	wrongIssuer, err := foreign.IssueToken("alice", nil, time.Minute)
	require.NoError(t, err)
	anonymous, err := v.IssueToken("", nil, time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", ErrMissingToken},
		{"garbage", "not-a-token", ErrInvalidToken},
		{"expired", expired, ErrExpiredToken},
		{"wrong secret", forged, ErrInvalidSignature},
		{"wrong issuer", wrongIssuer, ErrInvalidClaims},
		{"no subject", anonymous, ErrInvalidClaims},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewJWTValidator_RequiresSecret(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{})
	assert.Error(t, err)
}

func TestSlidingWindowLimiter(t *testing.T) {
	l := NewSlidingWindowLimiter(2, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "k")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "other")
	assert.True(t, ok)

	now = now.Add(61 * time.Second)
	ok, _ = l.Allow(ctx, "k")
	assert.True(t, ok)

	require.NoError(t, l.Reset(ctx, "k"))
	ok, _ = l.Allow(ctx, "k")
	assert.True(t, ok)
}
