// Package web embeds the server-rendered HTML templates.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Static holds the stylesheet and other assets served under /static.
//
//go:embed static
var Static embed.FS

// Templates parses the embedded page templates. Pages are addressed by file
// name (e.g. "home.html"); shared partials like "nav" are defined once and
// referenced from every page.
func Templates() *template.Template {
	return template.Must(template.ParseFS(files, "templates/*.html"))
}
