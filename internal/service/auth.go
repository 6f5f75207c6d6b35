package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/Skotchmaster/art_gallery/internal/hash"
	"github.com/Skotchmaster/art_gallery/pkg/logging"
	"github.com/Skotchmaster/art_gallery/pkg/tokens"
)

const DefaultAccessTTL = 12 * time.Hour

// AuthService issues admin bearer tokens when the gallery verifies tokens itself.
type AuthService struct {
	Username     string
	PasswordHash string
	Secret       []byte
	TTL          time.Duration
}

type LoginResult struct {
	AccessToken string
	AccessExp   time.Time
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if s.PasswordHash == "" || len(s.Secret) == 0 {
		return nil, fmt.Errorf("%w: login is disabled", ErrUnavailable)
	}
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.Username)) == 1
	passOK := hash.CheckPassword(s.PasswordHash, password)
	if !userOK || !passOK {
		l.Warn("login_failed", "status", 401, "reason", "invalid username or password")
		return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	exp := time.Now().Add(ttl)

	token, err := tokens.SignAccessToken(username, tokens.RoleAdmin, exp, s.Secret)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("sign token: %w", err)
	}

	l.Info("login_success")
	return &LoginResult{AccessToken: token, AccessExp: exp}, nil
}
