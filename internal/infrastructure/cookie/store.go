// Package cookie persists the bearer credential in the browser's auth_token
// cookie, scoped to one request/response cycle.
package cookie

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Name is the credential cookie, shared with the edge redirect filter.
const Name = "auth_token"

// Store implements ports.CredentialStore over an Echo request context. Get
// reads the request's cookie; Set and Clear write Set-Cookie headers on the
// response. Reads after a Set in the same request observe the pending value.
type Store struct {
	c echo.Context

	// pending mirrors writes made during this request, since the request's
	// Cookie header never changes mid-cycle.
	pending    string
	hasPending bool
}

func New(c echo.Context) *Store {
	return &Store{c: c}
}

// Get returns the stored token, if any. A missing or unreadable cookie is
// reported as absent, never as an error: storage trouble fails open to the
// logged-out state.
func (s *Store) Get() (string, bool) {
	if s.hasPending {
		return s.pending, s.pending != ""
	}

	ck, err := s.c.Cookie(Name)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}

// Set persists the token for ttlDays days, superseding any previous value.
func (s *Store) Set(token string, ttlDays int) {
	s.c.SetCookie(&http.Cookie{
		Name:     Name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(ttlDays) * 24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.pending = token
	s.hasPending = true
}

// Clear expires the cookie immediately.
func (s *Store) Clear() {
	s.c.SetCookie(&http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.pending = ""
	s.hasPending = true
}
