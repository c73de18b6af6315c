package middlewares

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/swiftride/portal/internal/domain/identity"
	"github.com/swiftride/portal/internal/guard"
	"github.com/swiftride/portal/internal/observability"
)

// GuardMiddleware is the routing host side of the guard: it runs the pure
// decision function and translates the Decision into HTTP.
type GuardMiddleware struct {
	prom *observability.Prom
}

func NewGuardMiddleware(prom *observability.Prom) *GuardMiddleware {
	return &GuardMiddleware{prom: prom}
}

// Protect gates a route group. Empty role means any authenticated viewer.
//
//   - Loading   -> 503 + Retry-After, the session is still resolving
//   - Redirect  -> 303 See Other; login redirects carry the origin in
//     "from" so the login flow can send the viewer back
//   - Render    -> pass through to the handler
func (m *GuardMiddleware) Protect(required identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, ok := SnapshotFromContext(c)

		if !ok {
			// no session middleware ran; treat as anonymous
			snap = identity.Anonymous()
		}

		d := guard.Decide(snap, guard.Request{
			RequiredRole:    required,
			CurrentLocation: c.Request.URL.RequestURI(),
		})

		if m.prom != nil {
			m.prom.ObserveGuard(string(d.Kind))
		}

		switch d.Kind {
		case guard.KindLoading:
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": gin.H{
					"code":    "session_pending",
					"message": "Session is still resolving. Retry shortly.",
				},
			})

		case guard.KindRedirect:
			c.Redirect(http.StatusSeeOther, redirectTarget(d))
			c.Abort()

		default:
			c.Next()
		}
	}
}

func redirectTarget(d guard.Decision) string {
	if d.From == "" {
		return d.Path
	}

	return d.Path + "?from=" + url.QueryEscape(d.From)
}
