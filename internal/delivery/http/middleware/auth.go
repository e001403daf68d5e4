package middleware

import (
	"context"
	"net/http"
	"net/url"

	h "eventexplorer/internal/delivery/http/helpers"
	"eventexplorer/internal/domain"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

type contextKey string

const userIDKey contextKey = "userID"

// SetUserID returns a context with the user ID set. Used by auth middleware.
func SetUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// sessionUserID extracts and verifies the session cookie, returning the user ID.
func sessionUserID(r *http.Request, verifier domain.TokenVerifier) (int64, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return 0, false
	}
	userID, err := verifier.Verify(cookie.Value)
	if err != nil {
		return 0, false
	}
	return userID, true
}

// LoadSession sets the user ID in the request context when a valid session
// cookie is present, and passes the request through either way. Handlers that
// merely adapt to login state (the page shell, login/signup redirects) use this.
func LoadSession(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := sessionUserID(r, verifier); ok {
				r = r.WithContext(SetUserID(r.Context(), userID))
			}
			next(w, r)
		}
	}
}

// RequireAuth returns a wrapper that validates the session cookie and sets the
// user ID in the request context. Without a valid session it responds 401 and
// does not call next. Intended for API routes.
func RequireAuth(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			userID, ok := sessionUserID(r, verifier)
			if !ok {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "authentication required")
				return
			}
			r = r.WithContext(SetUserID(r.Context(), userID))
			next(w, r)
		}
	}
}

// RequirePage is RequireAuth for browser pages: anonymous visitors are
// redirected to the login form with the original path in ?next=.
func RequirePage(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			userID, ok := sessionUserID(r, verifier)
			if !ok {
				http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.Path), http.StatusFound)
				return
			}
			r = r.WithContext(SetUserID(r.Context(), userID))
			next(w, r)
		}
	}
}
