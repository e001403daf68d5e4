package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventexplorer/internal/delivery/http/middleware"
	"eventexplorer/internal/delivery/http/pages"
	"eventexplorer/internal/domain"
)

type fakeAccountService struct {
	registerErr error
	registered  domain.RegisterInput

	token   string
	authErr error
}

func (f *fakeAccountService) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	f.registered = in
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &domain.User{ID: 1, Email: in.Email}, nil
}

func (f *fakeAccountService) Authenticate(ctx context.Context, email, password string) (string, *domain.User, error) {
	if f.authErr != nil {
		return "", nil, f.authErr
	}
	return f.token, &domain.User{ID: 1, Email: email}, nil
}

func newTestAuthController(t *testing.T, svc domain.AccountService) *AuthController {
	t.Helper()
	renderer, err := pages.NewRenderer()
	require.NoError(t, err)
	return NewAuthController(discardLogger(), svc, renderer, 24*time.Hour, false)
}

func formPost(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestAuthController_Login_success(t *testing.T) {
	svc := &fakeAccountService{token: "signed-token"}
	ctrl := newTestAuthController(t, svc)

	rec := httptest.NewRecorder()
	ctrl.Login(rec, formPost("/login", url.Values{"email": {"dorji@example.com"}, "password": {"hunter2hunter2"}}))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, int((24 * time.Hour).Seconds()), cookie.MaxAge)
}

func TestAuthController_Login_next_redirect(t *testing.T) {
	tests := []struct {
		name string
		next string
		want string
	}{
		{"relative path honored", "/dashboard", "/dashboard"},
		{"nested path honored", "/things", "/things"},
		{"absolute url dropped", "http://evil.example/phish", "/dashboard"},
		{"protocol-relative dropped", "//evil.example", "/dashboard"},
		{"empty falls back", "", "/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := newTestAuthController(t, &fakeAccountService{token: "tok"})

			rec := httptest.NewRecorder()
			target := "/login?next=" + url.QueryEscape(tt.next)
			ctrl.Login(rec, formPost(target, url.Values{"email": {"a@b.c"}, "password": {"password1"}}))

			require.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
		})
	}
}

func TestAuthController_Login_invalid_credentials(t *testing.T) {
	ctrl := newTestAuthController(t, &fakeAccountService{authErr: domain.ErrInvalidCredentials})

	rec := httptest.NewRecorder()
	ctrl.Login(rec, formPost("/login", url.Values{"email": {"dorji@example.com"}, "password": {"wrong"}}))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password.")
	assert.Nil(t, sessionCookie(t, rec), "no session cookie on failed login")
}

func TestAuthController_Login_already_logged_in(t *testing.T) {
	ctrl := newTestAuthController(t, &fakeAccountService{})

	req := formPost("/login", url.Values{})
	req = req.WithContext(middleware.SetUserID(req.Context(), 7))
	rec := httptest.NewRecorder()
	ctrl.Login(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestAuthController_Signup(t *testing.T) {
	form := url.Values{
		"email":            {"dorji@example.com"},
		"password":         {"hunter2hunter2"},
		"confirm_password": {"hunter2hunter2"},
		"first_name":       {"Dorji"},
		"last_name":        {"Wangmo"},
	}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantFlash  string
	}{
		{"success", nil, http.StatusFound, ""},
		{"invalid email", domain.ErrInvalidEmail, http.StatusBadRequest, "Please enter a valid email."},
		{"weak password", domain.ErrWeakPassword, http.StatusBadRequest, "Password must be at least 8 characters."},
		{"password mismatch", domain.ErrPasswordMismatch, http.StatusBadRequest, "Passwords do not match."},
		{"taken email", domain.ErrDuplicateEmail, http.StatusConflict, "An account with that email already exists."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAccountService{registerErr: tt.err}
			ctrl := newTestAuthController(t, svc)

			rec := httptest.NewRecorder()
			ctrl.Signup(rec, formPost("/signup", form))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.err == nil {
				assert.Equal(t, "/login", rec.Header().Get("Location"))
				assert.Equal(t, "dorji@example.com", svc.registered.Email)
				assert.Equal(t, "Dorji", svc.registered.FirstName)
			} else {
				assert.Contains(t, rec.Body.String(), tt.wantFlash)
				// form stays sticky on failure
				assert.Contains(t, rec.Body.String(), "dorji@example.com")
			}
		})
	}
}

func TestAuthController_Logout(t *testing.T) {
	ctrl := newTestAuthController(t, &fakeAccountService{})

	rec := httptest.NewRecorder()
	ctrl.Logout(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/dashboard", safeNext("/dashboard"))
	assert.Equal(t, "", safeNext("//evil.example"))
	assert.Equal(t, "", safeNext("https://evil.example/x"))
	assert.Equal(t, "", safeNext("dashboard"))
	assert.Equal(t, "", safeNext(""))
}
