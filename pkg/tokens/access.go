package tokens

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

var ErrInvalidToken = errors.New("invalid token")

type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Subject is the verified identity behind a bearer token.
type Subject struct {
	ID   string `json:"subject"`
	Role string `json:"role"`
}

func (s Subject) IsAdmin() bool { return s.Role == RoleAdmin }

func AccessClaimsFromToken(TokenStr string, AccessSecret []byte) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(TokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return AccessSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

func SignAccessToken(subject, role string, exp time.Time, secret []byte) (string, error) {
	claims := AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// LocalVerifier checks HS256 access tokens signed with a shared secret.
type LocalVerifier struct {
	Secret []byte
}

func NewLocalVerifier(secret []byte) *LocalVerifier {
	return &LocalVerifier{Secret: secret}
}

func (v *LocalVerifier) Verify(_ context.Context, token string) (Subject, error) {
	claims, err := AccessClaimsFromToken(token, v.Secret)
	if err != nil {
		return Subject{}, err
	}
	if claims.Subject == "" {
		return Subject{}, ErrInvalidToken
	}
	return Subject{ID: claims.Subject, Role: claims.Role}, nil
}
