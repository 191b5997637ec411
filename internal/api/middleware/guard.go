package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/sabaihub/booking-web/internal/core/domain"
	"github.com/sabaihub/booking-web/internal/core/service"
)

// GuardDecision is the outcome of evaluating a session against a protected
// view.
type GuardDecision int

const (
	// GuardAllow renders the protected content.
	GuardAllow GuardDecision = iota
	// GuardWait renders a neutral waiting indicator; the session is still
	// resolving and no redirect may be issued yet.
	GuardWait
	// GuardLogin redirects to the login page, carrying the current path as
	// the post-login destination.
	GuardLogin
	// GuardLanding redirects to the landing page; the session is valid but
	// lacks the required role.
	GuardLanding
)

// Decide is a pure function of the session snapshot. The guard fails closed:
// protected content is only reachable through GuardAllow.
func Decide(s domain.Session, requireAdmin bool) GuardDecision {
	switch {
	case s.Loading:
		return GuardWait
	case !s.IsAuthenticated():
		return GuardLogin
	case requireAdmin && !s.User.IsAdmin():
		return GuardLanding
	default:
		return GuardAllow
	}
}

// RouteGuard enforces a Decide outcome on each request. It must run after
// SessionResolver; a missing session is treated as anonymous, which still
// fails closed.
func RouteGuard(requireAdmin bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch Decide(SessionFrom(c), requireAdmin) {
			case GuardWait:
				return c.Render(http.StatusOK, "loading.html", nil)
			case GuardLogin:
				path := c.Request().URL.Path
				loginURL := service.LoginPath + "?" + RedirectToParam + "=" + url.QueryEscape(path)
				return c.Redirect(http.StatusSeeOther, loginURL)
			case GuardLanding:
				return c.Redirect(http.StatusSeeOther, service.LandingPath)
			default:
				return next(c)
			}
		}
	}
}
