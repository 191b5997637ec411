package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sabaihub/booking-web/internal/core/domain"
	"github.com/sabaihub/booking-web/internal/infrastructure/backend"
)

// errorPage feeds the error.html template.
type errorPage struct {
	Code    int
	Message string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the shared error page.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if renderErr := c.Render(code, "error.html", errorPage{Code: code, Message: msg}); renderErr != nil {
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrShopNotFound):
		return http.StatusNotFound, "massage shop not found"
	case errors.Is(err, domain.ErrReservationNotFound):
		return http.StatusNotFound, "reservation not found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	}

	// Backend rejections that no handler translated: the upstream service
	// failed, not this one.
	var be *backend.Error
	if errors.As(err, &be) {
		log.Error().
			Err(err).
			Int("backend_status", be.Status).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("backend request failed")
		return http.StatusBadGateway, "the booking service is currently unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
