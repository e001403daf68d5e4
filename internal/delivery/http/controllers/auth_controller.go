package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eventexplorer/internal/delivery/http/middleware"
	"eventexplorer/internal/delivery/http/pages"
	"eventexplorer/internal/domain"
)

// AuthController serves the signup, login, and logout routes. Login and signup
// are browser forms; failures re-render the form with a flash message and the
// matching status code.
type AuthController struct {
	Logger        *slog.Logger
	Service       domain.AccountService
	Pages         *pages.Renderer
	SessionTTL    time.Duration
	SecureCookies bool
}

func NewAuthController(logger *slog.Logger, svc domain.AccountService, renderer *pages.Renderer, sessionTTL time.Duration, secureCookies bool) *AuthController {
	return &AuthController{
		Logger:        logger,
		Service:       svc,
		Pages:         renderer,
		SessionTTL:    sessionTTL,
		SecureCookies: secureCookies,
	}
}

// LoginForm renders the login page, or redirects straight to the dashboard
// for an already-authenticated visitor.
func (c *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	c.render(w, r, http.StatusOK, "login", pages.Data{Next: safeNext(r.URL.Query().Get("next"))})
}

// Login handles the login form post. Both unknown email and wrong password
// produce the same 401 flash.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		c.render(w, r, http.StatusBadRequest, "login", pages.Data{Flash: "Bad form submission.", FlashKind: "error"})
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	token, _, err := c.Service.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.render(w, r, http.StatusUnauthorized, "login", pages.Data{
				Flash:     "Invalid email or password.",
				FlashKind: "error",
				Email:     email,
				Next:      safeNext(r.URL.Query().Get("next")),
			})
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		c.render(w, r, http.StatusInternalServerError, "login", pages.Data{Flash: "Something went wrong. Please try again.", FlashKind: "error"})
		return
	}

	c.setSessionCookie(w, token)
	next := safeNext(r.URL.Query().Get("next"))
	if next == "" {
		next = "/dashboard"
	}
	http.Redirect(w, r, next, http.StatusFound)
}

// SignupForm renders the signup page.
func (c *AuthController) SignupForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	c.render(w, r, http.StatusOK, "signup", pages.Data{})
}

// Signup handles the signup form post: 400 for validation failures, 409 for a
// taken email, 302 to the login page on success.
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		c.render(w, r, http.StatusBadRequest, "signup", pages.Data{Flash: "Bad form submission.", FlashKind: "error"})
		return
	}
	in := domain.RegisterInput{
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
		FirstName:       r.PostFormValue("first_name"),
		LastName:        r.PostFormValue("last_name"),
	}

	if _, err := c.Service.Register(r.Context(), in); err != nil {
		sticky := pages.Data{FlashKind: "error", Email: in.Email, FirstName: in.FirstName, LastName: in.LastName}
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			sticky.Flash = "Please enter a valid email."
			c.render(w, r, http.StatusBadRequest, "signup", sticky)
		case errors.Is(err, domain.ErrWeakPassword):
			sticky.Flash = "Password must be at least 8 characters."
			c.render(w, r, http.StatusBadRequest, "signup", sticky)
		case errors.Is(err, domain.ErrPasswordMismatch):
			sticky.Flash = "Passwords do not match."
			c.render(w, r, http.StatusBadRequest, "signup", sticky)
		case errors.Is(err, domain.ErrDuplicateEmail):
			sticky.Flash = "An account with that email already exists."
			c.render(w, r, http.StatusConflict, "signup", sticky)
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			sticky.Flash = "Something went wrong. Please try again."
			c.render(w, r, http.StatusInternalServerError, "signup", sticky)
		}
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

// Logout clears the session cookie and sends the visitor home.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (c *AuthController) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   c.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *AuthController) render(w http.ResponseWriter, r *http.Request, status int, page string, data pages.Data) {
	_, data.LoggedIn = middleware.UserIDFromContext(r.Context())
	if err := c.Pages.Render(w, status, page, data); err != nil {
		c.Logger.ErrorContext(r.Context(), "page render failed", "page", page, "err", err)
	}
}

// safeNext only accepts same-site absolute paths for post-login redirects.
// Anything with a scheme, a host, or a protocol-relative // prefix is dropped.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	if u, err := url.Parse(next); err != nil || u.Host != "" || u.Scheme != "" {
		return ""
	}
	return next
}
