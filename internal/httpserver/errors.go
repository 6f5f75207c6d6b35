package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/art_gallery/internal/service"
	"github.com/Skotchmaster/art_gallery/internal/transport"
	"github.com/Skotchmaster/art_gallery/pkg/logging"
)

const internalErrorMessage = "Internal server error"

var sentinels = []struct {
	err  error
	code int
}{
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrUnauthorized, http.StatusUnauthorized},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrConflict, http.StatusConflict},
	{service.ErrInventory, http.StatusInternalServerError},
	{service.ErrUnavailable, http.StatusServiceUnavailable},
}

// ErrorHandler renders every error as {"error": "..."}. Anything that is not
// an *echo.HTTPError becomes a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := internalErrorMessage

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
	} else {
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "status", code, "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, transport.ErrorResponse{Error: msg})
	}
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("write_error_response", "error", err)
	}
}

// fail maps a service error onto an HTTP error and logs it under event.
// Unknown errors are storage failures and answer with fallback.
func fail(l *slog.Logger, event string, err error, fallback string) error {
	for _, s := range sentinels {
		if !errors.Is(err, s.err) {
			continue
		}
		if s.code >= http.StatusInternalServerError {
			l.Error(event, "status", s.code, "reason", fallback, "error", err)
			if s.code == http.StatusInternalServerError {
				return echo.NewHTTPError(s.code, fallback)
			}
		} else {
			l.Warn(event, "status", s.code, "reason", reason(err, s.err), "error", err)
		}
		return echo.NewHTTPError(s.code, reason(err, s.err))
	}

	l.Error(event, "status", http.StatusInternalServerError, "reason", fallback, "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, fallback)
}

// reason strips the sentinel prefix so clients see only the detail.
func reason(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()+": "); i >= 0 {
		return msg[i+len(sentinel.Error())+2:]
	}
	return msg
}
