package handler

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/sabaihub/booking-web/web"
)

// Renderer adapts the embedded html/template set to echo.Renderer. Pages are
// addressed by file name, e.g. c.Render(http.StatusOK, "home.html", data).
type Renderer struct {
	templates *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{templates: web.Templates()}
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
