package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sabaihub/booking-web/internal/api/metrics"
	"github.com/sabaihub/booking-web/internal/api/middleware"
	"github.com/sabaihub/booking-web/internal/core/domain"
	"github.com/sabaihub/booking-web/internal/core/ports"
)

// AuthHandler serves the login and signup pages and drives the session
// manager on form submission.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type loginForm struct {
	Email      string `form:"email"      validate:"required,email"`
	Password   string `form:"password"   validate:"required"`
	RedirectTo string `form:"redirectTo"`
}

type signupForm struct {
	Name            string `form:"name"            validate:"required"`
	Email           string `form:"email"           validate:"required,email"`
	Password        string `form:"password"        validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=Password"`
	Tel             string `form:"tel"`
}

type loginData struct {
	User       *domain.User
	Email      string
	RedirectTo string
	Error      string
}

type signupData struct {
	User  *domain.User
	Name  string
	Email string
	Tel   string
	Error string
}

// LoginPage handles GET /auth/login. The edge filter has already bounced
// credentialed visitors, so this always renders the form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", loginData{
		RedirectTo: sanitizeRedirect(c.QueryParam(middleware.RedirectToParam)),
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "login.html", loginData{Error: "invalid form submission"})
	}
	data := loginData{Email: form.Email, RedirectTo: sanitizeRedirect(form.RedirectTo)}
	if err := c.Validate(form); err != nil {
		data.Error = err.Error()
		return c.Render(http.StatusBadRequest, "login.html", data)
	}

	mgr, err := ctxManager(c)
	if err != nil {
		return err
	}

	if err := mgr.Login(c.Request().Context(), form.Email, form.Password, data.RedirectTo); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		data.Error = err.Error()
		return c.Render(http.StatusUnauthorized, "login.html", data)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	// The session manager has already emitted the redirect.
	return nil
}

// SignupPage handles GET /auth/signup.
func (h *AuthHandler) SignupPage(c echo.Context) error {
	return c.Render(http.StatusOK, "signup.html", signupData{})
}

// Signup handles POST /auth/signup. A password confirmation mismatch is a
// local validation failure and never reaches the backend.
func (h *AuthHandler) Signup(c echo.Context) error {
	var form signupForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "signup.html", signupData{Error: "invalid form submission"})
	}
	data := signupData{Name: form.Name, Email: form.Email, Tel: form.Tel}
	if err := c.Validate(form); err != nil {
		data.Error = err.Error()
		return c.Render(http.StatusBadRequest, "signup.html", data)
	}

	mgr, err := ctxManager(c)
	if err != nil {
		return err
	}

	input := ports.RegisterInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Tel:      form.Tel,
	}
	if err := mgr.Signup(c.Request().Context(), input); err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		data.Error = err.Error()
		return c.Render(http.StatusUnprocessableEntity, "signup.html", data)
	}

	metrics.SignupsTotal.WithLabelValues("success").Inc()
	return nil
}

// Logout handles POST /auth/logout. It always succeeds locally; the session
// manager emits the redirect to the landing page.
func (h *AuthHandler) Logout(c echo.Context) error {
	mgr, err := ctxManager(c)
	if err != nil {
		return err
	}
	mgr.Logout(c.Request().Context())
	metrics.LogoutsTotal.Inc()
	return nil
}

// sanitizeRedirect keeps post-login navigation on this origin: only rooted
// paths pass through, anything else falls back to the default destination.
func sanitizeRedirect(target string) string {
	if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") {
		return target
	}
	return ""
}
