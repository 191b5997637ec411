package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sabaihub/booking-web/internal/core/domain"
	"github.com/sabaihub/booking-web/internal/core/ports"
	"github.com/sabaihub/booking-web/internal/core/service"
	"github.com/sabaihub/booking-web/internal/infrastructure/cookie"
)

// sessionKey is the echo.Context key under which the per-request session
// manager is stored.
const sessionKey = "session"

// SessionDeps are the collaborators every per-request session manager needs.
type SessionDeps struct {
	Auth    ports.AuthAPI
	Cache   ports.SessionCache
	TTLDays int
	Logger  zerolog.Logger
}

// SessionResolver constructs the session manager at the composition root of
// each request: credential store bound to the request's cookies, navigator
// bound to the response. Resolution is eager: by the time a handler or the
// route guard runs, the session is either AUTHENTICATED or ANONYMOUS.
func SessionResolver(deps SessionDeps) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			mgr := service.NewSessionManager(
				deps.Auth,
				cookie.New(c),
				deps.Cache,
				&redirector{c: c},
				deps.TTLDays,
				deps.Logger,
			)
			mgr.Initialize(c.Request().Context())
			c.Set(sessionKey, mgr)
			return next(c)
		}
	}
}

// ManagerFrom returns the request's session manager, or nil when
// SessionResolver did not run.
func ManagerFrom(c echo.Context) *service.SessionManager {
	mgr, _ := c.Get(sessionKey).(*service.SessionManager)
	return mgr
}

// SessionFrom returns the current session snapshot. Without a resolver the
// zero session (anonymous) is returned, which keeps guards failing closed.
func SessionFrom(c echo.Context) domain.Session {
	if mgr := ManagerFrom(c); mgr != nil {
		return mgr.Session()
	}
	return domain.Session{}
}

// redirector satisfies ports.Navigator by writing an HTTP redirect. The
// session manager emits at most one navigation per request, after a
// mutation's cleanup has run.
type redirector struct {
	c echo.Context
}

func (r *redirector) Navigate(path string) {
	_ = r.c.Redirect(http.StatusSeeOther, path)
}
