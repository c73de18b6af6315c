package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/swiftride/portal/internal/domain/identity"
	"github.com/swiftride/portal/internal/http/handlers"
	"github.com/swiftride/portal/internal/http/middlewares"
)

func resolveRouter(snap identity.Snapshot) *gin.Engine {
	r := gin.New()

	r.Use(func(c *gin.Context) {
		middlewares.SetSnapshot(c, snap)
		c.Next()
	})

	h := handlers.NewRouteHandler(nil)
	r.GET("/route/resolve", h.Resolve)

	return r
}

type decisionResponse struct {
	Decision string `json:"decision"`
	To       string `json:"to"`
	From     string `json:"from"`
}

func TestResolve(t *testing.T) {
	rider := &identity.User{ID: "u1", Role: identity.RoleRider}
	admin := &identity.User{ID: "a1", Role: identity.RoleAdmin}

	tests := []struct {
		name       string
		snap       identity.Snapshot
		target     string
		wantStatus int
		want       decisionResponse
	}{
		{
			name:       "loading session",
			snap:       identity.Snapshot{IsLoading: true},
			target:     "/route/resolve?path=/rider/book",
			wantStatus: http.StatusOK,
			want:       decisionResponse{Decision: "loading"},
		},
		{
			name:       "anonymous viewer carries origin to login",
			snap:       identity.Snapshot{},
			target:     "/route/resolve?path=/driver/rides",
			wantStatus: http.StatusOK,
			want:       decisionResponse{Decision: "redirect", To: "/login", From: "/driver/rides"},
		},
		{
			name:       "custom redirect target",
			snap:       identity.Snapshot{},
			target:     "/route/resolve?path=/rider/book&redirectTo=/welcome",
			wantStatus: http.StatusOK,
			want:       decisionResponse{Decision: "redirect", To: "/welcome", From: "/rider/book"},
		},
		{
			name:       "admin probing driver area goes home without origin",
			snap:       identity.Snapshot{IsAuthenticated: true, User: admin},
			target:     "/route/resolve?path=/driver/dashboard&requiredRole=driver",
			wantStatus: http.StatusOK,
			want:       decisionResponse{Decision: "redirect", To: "/admin/dashboard"},
		},
		{
			name:       "rider on unrestricted page renders",
			snap:       identity.Snapshot{IsAuthenticated: true, User: rider},
			target:     "/route/resolve?path=/payments",
			wantStatus: http.StatusOK,
			want:       decisionResponse{Decision: "render"},
		},
		{
			name:       "missing path is a bad request",
			snap:       identity.Snapshot{},
			target:     "/route/resolve",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown required role is a bad request",
			snap:       identity.Snapshot{IsAuthenticated: true, User: rider},
			target:     "/route/resolve?path=/x&requiredRole=dispatcher",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := resolveRouter(tc.snap)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.target, nil))

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d, body=%s", w.Code, tc.wantStatus, w.Body.String())
			}

			if tc.wantStatus != http.StatusOK {
				return
			}

			var got decisionResponse

			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			if got != tc.want {
				t.Fatalf("decision = %+v, want %+v", got, tc.want)
			}
		})
	}
}
