package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/art_gallery/internal/hash"
	"github.com/Skotchmaster/art_gallery/pkg/tokens"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	h, err := hash.HashPassword("s3cret")
	require.NoError(t, err)
	return &AuthService{Username: "admin", PasswordHash: h, Secret: []byte("test-secret"), TTL: time.Hour}
}

func TestLogin_Success(t *testing.T) {
	svc := newAuthService(t)

	res, err := svc.Login(context.Background(), "admin", "s3cret")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.AccessExp, time.Minute)

	sub, err := tokens.NewLocalVerifier(svc.Secret).Verify(context.Background(), res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub.ID)
	assert.True(t, sub.IsAdmin())
}

func TestLogin_Failures(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(context.Background(), "root", "s3cret")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrValidation)

	disabled := &AuthService{Username: "admin", Secret: []byte("x")}
	_, err = disabled.Login(context.Background(), "admin", "s3cret")
	assert.ErrorIs(t, err, ErrUnavailable)
}
