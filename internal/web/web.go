// Package web embeds the HTML forms served to browsers.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names.
const (
	LoginPage      = "login.html"
	RegisterPage   = "register.html"
	CreateExamPage = "create_exam.html"
)

// Templates parses every embedded page.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
