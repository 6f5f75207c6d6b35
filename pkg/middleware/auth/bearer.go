package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/art_gallery/pkg/logging"
	"github.com/Skotchmaster/art_gallery/pkg/tokens"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Verifier turns a bearer token into a verified subject.
type Verifier interface {
	Verify(ctx context.Context, token string) (tokens.Subject, error)
}

type BearerMiddleware struct {
	Verifier Verifier
}

func NewBearerMiddleware(v Verifier) *BearerMiddleware {
	return &BearerMiddleware{Verifier: v}
}

type ValidatorFunc func(sub tokens.Subject) error

func (m *BearerMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *BearerMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(sub tokens.Subject) error {
		if !sub.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *BearerMiddleware) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "auth.bearer")

		token, ok := BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
		}

		sub, err := m.Verifier.Verify(ctx, token)
		if err != nil {
			l.Warn("verify_token_failed", "status", 401, "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}

		if validator != nil {
			if validationErr := validator(sub); validationErr != nil {
				l.Warn("verify_token_failed", "status", 403, "subject", sub.ID, "role", sub.Role)
				return validationErr
			}
		}

		setUserContext(c, sub)
		return next(c)
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func setUserContext(c echo.Context, sub tokens.Subject) {
	c.Set(CtxUserID, sub.ID)
	c.Set(CtxRole, sub.Role)
}
