package controllers

import (
	"log/slog"
	"net/http"

	"eventexplorer/internal/delivery/http/middleware"
	"eventexplorer/internal/delivery/http/pages"
)

// PagesController serves the static marketing pages and the dashboard.
type PagesController struct {
	Logger *slog.Logger
	Pages  *pages.Renderer
}

func NewPagesController(logger *slog.Logger, renderer *pages.Renderer) *PagesController {
	return &PagesController{Logger: logger, Pages: renderer}
}

func (c *PagesController) Home(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, "home")
}

func (c *PagesController) About(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, "about")
}

func (c *PagesController) Plan(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, "plan")
}

func (c *PagesController) Things(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, "things")
}

func (c *PagesController) Calendar(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, "calendar")
}

func (c *PagesController) Offers(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, "offers")
}

// Dashboard is mounted behind middleware.RequirePage.
func (c *PagesController) Dashboard(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, "dashboard")
}

func (c *PagesController) render(w http.ResponseWriter, r *http.Request, page string) {
	_, loggedIn := middleware.UserIDFromContext(r.Context())
	data := pages.Data{Active: page, LoggedIn: loggedIn}
	if err := c.Pages.Render(w, http.StatusOK, page, data); err != nil {
		c.Logger.ErrorContext(r.Context(), "page render failed", "page", page, "err", err)
	}
}
