// Package view renders the catalog's HTML pages from embedded templates.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer implements echo.Renderer over the embedded templates. A page named
// "home" is rendered from templates/home.html.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses every embedded template. It panics on a malformed
// template since that is a build defect.
func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: template.Must(template.New("").ParseFS(templatesFS, "templates/*.html")),
	}
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name+".html", data)
}

var _ echo.Renderer = (*Renderer)(nil)
