package tokens

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret")

func TestSignAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(15 * time.Minute).UTC()
	token, err := SignAccessToken("admin", RoleAdmin, exp, testSecret)
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestAccessClaimsFromToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := SignAccessToken("admin", RoleAdmin, time.Now().Add(-time.Minute), testSecret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, testSecret)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAccessClaimsFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := SignAccessToken("admin", RoleAdmin, time.Now().Add(time.Minute), testSecret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("other"))
	require.Error(t, err)
}

func TestLocalVerifier_Verify(t *testing.T) {
	t.Parallel()

	v := NewLocalVerifier(testSecret)

	token, err := SignAccessToken("curator", "user", time.Now().Add(time.Minute), testSecret)
	require.NoError(t, err)

	sub, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "curator", sub.ID)
	assert.False(t, sub.IsAdmin())

	_, err = v.Verify(context.Background(), "garbage")
	require.Error(t, err)
}

func TestLocalVerifier_RejectsEmptySubject(t *testing.T) {
	t.Parallel()

	token, err := SignAccessToken("", RoleAdmin, time.Now().Add(time.Minute), testSecret)
	require.NoError(t, err)

	_, err = NewLocalVerifier(testSecret).Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
