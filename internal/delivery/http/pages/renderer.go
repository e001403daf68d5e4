package pages

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// Data is the payload every page template receives.
type Data struct {
	Active    string // nav highlight: home, about, plan, things, calendar, offers, dashboard
	LoggedIn  bool
	Flash     string
	FlashKind string // "error" or "success"
	Next      string // ?next= carry-through for the login form
	Email     string // sticky form value on validation failure
	FirstName string
	LastName  string
}

// Renderer renders the embedded site pages.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded page templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the named page with the given status. Render errors after the
// header is written can only be logged by the caller.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data Data) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return r.tmpl.ExecuteTemplate(w, page, data)
}
