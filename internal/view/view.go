package view

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every page template. Each page is a named template that
// pulls in the shared "header" and "footer".
func Templates() (*template.Template, error) {
	return template.New("storefront").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
}

// MustTemplates is Templates for program start up
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
