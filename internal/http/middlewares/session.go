package middlewares

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/swiftride/portal/internal/domain/identity"
)

// SessionCookie carries the session token for browser clients. API
// clients may send it as a bearer token instead.
const SessionCookie = "portal_session"

// Keep this small interface so tests can fake it easily.
type SnapshotResolver interface {
	Resolve(ctx context.Context, token string) identity.Snapshot
}

type SessionMiddleware struct {
	resolver SnapshotResolver
}

func NewSessionMiddleware(resolver SnapshotResolver) *SessionMiddleware {
	return &SessionMiddleware{resolver: resolver}
}

// ResolveSnapshot attaches the viewer's Session Snapshot to every request.
// It never rejects: anonymous viewers just carry an anonymous snapshot,
// and the guard downstream decides what that means per route.
func (m *SessionMiddleware) ResolveSnapshot() gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := m.resolver.Resolve(c.Request.Context(), tokenFromRequest(c))

		c.Set(CtxSnapshot, snap)

		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")

	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
	}

	return ""
}

// SnapshotFromContext returns the snapshot stashed by ResolveSnapshot.
func SnapshotFromContext(c *gin.Context) (identity.Snapshot, bool) {
	v, ok := c.Get(CtxSnapshot)
	if !ok {
		return identity.Snapshot{}, false
	}
	snap, ok := v.(identity.Snapshot)
	return snap, ok
}

// SetSnapshot exists for handler tests that bypass the middleware.
func SetSnapshot(c *gin.Context, snap identity.Snapshot) {
	c.Set(CtxSnapshot, snap)
}
