package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sabaihub/booking-web/internal/core/service"
	"github.com/sabaihub/booking-web/internal/infrastructure/cookie"
)

// RedirectToParam carries the post-login destination between the edge filter,
// the login page and the session manager.
const RedirectToParam = "redirectTo"

// EdgeRedirect is the request-time filter that runs before any session
// resolution. It only looks at the path and credential-cookie presence (no
// token validation) to avoid a flash of protected content:
//
//   - login page with a credential → redirect to redirectTo, else dashboard
//   - protected path without a credential → redirect to login, carrying the
//     original path as redirectTo
//
// Everything else passes through untouched. Prefix entries ending in "/"
// match any sub-path; bare entries match the path itself and its sub-paths.
func EdgeRedirect(protected ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			hasCredential := hasCredentialCookie(c)

			if path == service.LoginPath && hasCredential {
				target := c.QueryParam(RedirectToParam)
				// Only rooted paths are followed, to keep the redirect
				// on this origin.
				if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") {
					return c.Redirect(http.StatusFound, target)
				}
				return c.Redirect(http.StatusFound, service.DashboardPath)
			}

			if !hasCredential && isProtected(path, protected) {
				loginURL := service.LoginPath + "?" + RedirectToParam + "=" + url.QueryEscape(path)
				return c.Redirect(http.StatusFound, loginURL)
			}

			return next(c)
		}
	}
}

func hasCredentialCookie(c echo.Context) bool {
	ck, err := c.Cookie(cookie.Name)
	return err == nil && ck.Value != ""
}

func isProtected(path string, protected []string) bool {
	for _, p := range protected {
		if strings.HasSuffix(p, "/") {
			if strings.HasPrefix(path, p) {
				return true
			}
			continue
		}
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
