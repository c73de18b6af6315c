package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swiftride/portal/internal/domain/identity"
	"github.com/swiftride/portal/internal/guard"
	"github.com/swiftride/portal/internal/http/middlewares"
	"github.com/swiftride/portal/internal/observability"
)

type RouteHandler struct {
	prom *observability.Prom
}

func NewRouteHandler(prom *observability.Prom) *RouteHandler {
	return &RouteHandler{prom: prom}
}

type resolveQuery struct {
	Path         string `form:"path" binding:"required"`
	RequiredRole string `form:"requiredRole" binding:"omitempty,oneof=rider driver admin"`
	RedirectTo   string `form:"redirectTo"`
}

// Resolve is the navigation-event interception surface: the client asks,
// before rendering a protected page, what the guard says about it. The
// answer is pure data; the client performs the navigation itself.
func (h *RouteHandler) Resolve(ctx *gin.Context) {
	var q resolveQuery

	if !BindQuery(ctx, &q) {
		return
	}

	snap, ok := middlewares.SnapshotFromContext(ctx)

	if !ok {
		snap = identity.Anonymous()
	}

	d := guard.Decide(snap, guard.Request{
		RequiredRole:    identity.Role(q.RequiredRole),
		RedirectTo:      q.RedirectTo,
		CurrentLocation: q.Path,
	})

	if h.prom != nil {
		h.prom.ObserveGuard(string(d.Kind))
	}

	ctx.JSON(http.StatusOK, d)
}
