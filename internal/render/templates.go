package render

import (
	"embed"
	"html/template"
)

// IndexTemplate is the name handlers pass to gin's c.HTML.
const IndexTemplate = "index.tmpl"

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New(IndexTemplate).ParseFS(templateFS, "templates/*.tmpl")
}
