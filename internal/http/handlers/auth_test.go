package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swiftride/portal/internal/auth"
	"github.com/swiftride/portal/internal/config"
	"github.com/swiftride/portal/internal/domain/identity"
	"github.com/swiftride/portal/internal/http/handlers"
	"github.com/swiftride/portal/internal/http/middlewares"
	"github.com/swiftride/portal/internal/repo/postgres"
	"github.com/swiftride/portal/internal/security"
)

type fakeUserReader struct {
	getByEmailFn func(ctx context.Context, email string) (identity.User, error)
}

func (f *fakeUserReader) GetByEmail(ctx context.Context, email string) (identity.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return identity.User{}, postgres.ErrUserNotFound
}

func authRouter(users *fakeUserReader) *gin.Engine {
	r := gin.New()

	jwt := auth.NewManager("test-secret", time.Hour)
	h := handlers.NewAuthHandler(users, jwt, nil, config.Config{Env: "test"})

	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)

	return r
}

func postJSON(t *testing.T, r *gin.Engine, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestLogin(t *testing.T) {
	hash, err := security.HashPassword("correct horse")

	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	rider := identity.User{
		ID:           "u1",
		Email:        "ada@example.com",
		PasswordHash: hash,
		Role:         identity.RoleRider,
		Profile:      identity.Profile{Name: "Ada"},
	}

	users := &fakeUserReader{getByEmailFn: func(_ context.Context, email string) (identity.User, error) {
		if email == rider.Email {
			return rider, nil
		}
		return identity.User{}, postgres.ErrUserNotFound
	}}

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCookie bool
	}{
		{
			name:       "valid credentials set the session cookie",
			body:       `{"email":"ada@example.com","password":"correct horse"}`,
			wantStatus: http.StatusOK,
			wantCookie: true,
		},
		{
			name:       "wrong password",
			body:       `{"email":"ada@example.com","password":"battery staple"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown email",
			body:       `{"email":"ghost@example.com","password":"whatever"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed email rejected before lookup",
			body:       `{"email":"not-an-email","password":"whatever"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing password",
			body:       `{"email":"ada@example.com"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, authRouter(users), "/auth/login", tc.body)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d, body=%s", w.Code, tc.wantStatus, w.Body.String())
			}

			cookie := sessionCookie(w.Result())

			if tc.wantCookie {
				if cookie == nil || cookie.Value == "" {
					t.Fatal("expected session cookie")
				}

				if !cookie.HttpOnly {
					t.Fatal("session cookie must be http-only")
				}

				return
			}

			if cookie != nil && cookie.Value != "" {
				t.Fatal("unexpected session cookie on failed login")
			}
		})
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	w := postJSON(t, authRouter(&fakeUserReader{}), "/auth/logout", `{}`)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}

	cookie := sessionCookie(w.Result())

	if cookie == nil {
		t.Fatal("expected expiring session cookie")
	}

	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("cookie not expired: value=%q maxAge=%d", cookie.Value, cookie.MaxAge)
	}
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == middlewares.SessionCookie {
			return c
		}
	}

	return nil
}
