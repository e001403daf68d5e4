package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventexplorer/internal/delivery/http/controllers"
	"eventexplorer/internal/delivery/http/middleware"
	"eventexplorer/internal/domain"
)

// RouterDeps bundles everything NewRouter needs to mount the application.
type RouterDeps struct {
	Pages    *controllers.PagesController
	Auth     *controllers.AuthController
	Events   *controllers.EventController
	Me       *controllers.MeController
	Verifier domain.TokenVerifier

	LoginLimiter  *middleware.RateLimiter
	SignupLimiter *middleware.RateLimiter
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(deps RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()

	session := middleware.LoadSession(deps.Verifier)
	requireAuth := middleware.RequireAuth(deps.Verifier)
	requirePage := middleware.RequirePage(deps.Verifier)

	// Site pages
	mux.HandleFunc("GET /{$}", session(deps.Pages.Home))
	mux.HandleFunc("GET /about", session(deps.Pages.About))
	mux.HandleFunc("GET /plan", session(deps.Pages.Plan))
	mux.HandleFunc("GET /things", session(deps.Pages.Things))
	mux.HandleFunc("GET /calendar", session(deps.Pages.Calendar))
	mux.HandleFunc("GET /offers", session(deps.Pages.Offers))
	mux.HandleFunc("GET /dashboard", requirePage(deps.Pages.Dashboard))

	// Auth
	mux.HandleFunc("GET /login", session(deps.Auth.LoginForm))
	mux.HandleFunc("POST /login", deps.LoginLimiter.Wrap(session(deps.Auth.Login)))
	mux.HandleFunc("GET /signup", session(deps.Auth.SignupForm))
	mux.HandleFunc("POST /signup", deps.SignupLimiter.Wrap(session(deps.Auth.Signup)))
	mux.HandleFunc("POST /logout", deps.Auth.Logout)

	// Catalog API
	mux.HandleFunc("GET /api/categories", deps.Events.Categories)
	mux.HandleFunc("GET /api/events", deps.Events.ListEvents)
	mux.HandleFunc("GET /api/events/{id}", deps.Events.GetEvent)
	mux.HandleFunc("POST /api/me/themes", requireAuth(deps.Me.SaveThemes))

	// Ops
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
