package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sabaihub/booking-web/internal/api/middleware"
	"github.com/sabaihub/booking-web/internal/core/domain"
	"github.com/sabaihub/booking-web/internal/core/service"
)

// ctxManager extracts the per-request session manager injected by the
// session resolver and fails fast when the middleware chain is miswired:
// mutating handlers must never run without a session.
func ctxManager(c echo.Context) (*service.SessionManager, error) {
	mgr := middleware.ManagerFrom(c)
	if mgr == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session not resolved")
	}
	return mgr, nil
}

// ctxSession returns the current snapshot, anonymous when unresolved.
func ctxSession(c echo.Context) domain.Session {
	return middleware.SessionFrom(c)
}

// ctxToken returns the bearer token of an authenticated request. The route
// guard runs first on protected routes, so an empty token means the chain is
// miswired rather than the visitor being logged out.
func ctxToken(c echo.Context) (string, error) {
	s := ctxSession(c)
	if s.Token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session credential")
	}
	return s.Token, nil
}
