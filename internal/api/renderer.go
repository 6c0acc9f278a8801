package api

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the embedded page templates for echo's c.Render.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates. It panics on a parse error,
// which can only come from a broken build.
func NewRenderer() *Renderer {
	return &Renderer{
		templates: template.Must(template.New("pages").ParseFS(templateFS, "templates/*.html")),
	}
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
