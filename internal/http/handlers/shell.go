package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swiftride/portal/internal/domain/identity"
	"github.com/swiftride/portal/internal/guard"
	"github.com/swiftride/portal/internal/http/middlewares"
	"github.com/swiftride/portal/internal/nav"
)

// ConnectionReader is the view this handler has of the realtime
// connection monitor.
type ConnectionReader interface {
	IsConnected(ctx context.Context, userID string) (bool, error)
}

type ShellHandler struct {
	presence ConnectionReader
}

func NewShellHandler(presence ConnectionReader) *ShellHandler {
	return &ShellHandler{presence: presence}
}

type navEntry struct {
	nav.Item
	Active bool `json:"active"`
}

type shellQuery struct {
	Path string `form:"path"`
}

// Shell serves everything the page chrome needs in one round trip: who
// the viewer is, their menu with the active entry flagged, the connection
// indicator and, for drivers, the availability badge.
func (h *ShellHandler) Shell(ctx *gin.Context) {
	var q shellQuery

	if !BindQuery(ctx, &q) {
		return
	}

	snap, ok := middlewares.SnapshotFromContext(ctx)

	if !ok {
		snap = identity.Anonymous()
	}

	// The shell is authenticated chrome; run it through the same guard as
	// any protected page (no role requirement). The preserved location is
	// the page the client was rendering, not this endpoint.
	loc := q.Path

	if loc == "" {
		loc = ctx.Request.URL.RequestURI()
	}

	d := guard.Decide(snap, guard.Request{CurrentLocation: loc})

	switch d.Kind {
	case guard.KindLoading:
		ctx.JSON(http.StatusOK, gin.H{"state": "loading"})
		return

	case guard.KindRedirect:
		ctx.JSON(http.StatusOK, gin.H{
			"state":    "redirect",
			"decision": d,
		})
		return
	}

	u := snap.User

	items := nav.Build(u.Role)
	entries := make([]navEntry, 0, len(items))

	for _, item := range items {
		entries = append(entries, navEntry{
			Item:   item,
			Active: q.Path != "" && nav.IsActive(item.Path, q.Path),
		})
	}

	connected := false

	if h.presence != nil {
		// presence being down must not take the shell down with it
		if ok, err := h.presence.IsConnected(ctx.Request.Context(), u.ID); err == nil {
			connected = ok
		}
	}

	payload := gin.H{
		"state": "ready",
		"user": gin.H{
			"id":   u.ID,
			"name": u.Profile.Name,
			"role": u.Role,
		},
		"navigation": entries,
		"connection": gin.H{"connected": connected},
	}

	// Driver status renders only for drivers that actually carry the
	// info; everyone else gets no driver block at all.
	if u.Role == identity.RoleDriver && u.DriverInfo != nil {
		status := "unavailable"

		if u.DriverInfo.IsAvailable {
			status = "available"
		}

		payload["driverStatus"] = gin.H{
			"available": u.DriverInfo.IsAvailable,
			"label":     status,
		}
	}

	RespondJSONWithETag(ctx, http.StatusOK, payload)
}
