package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swiftride/portal/internal/http/middlewares"
	"github.com/swiftride/portal/internal/observability"
)

type HeartbeatWriter interface {
	Heartbeat(ctx context.Context, userID string) error
}

type PresenceHandler struct {
	presence HeartbeatWriter
	prom     *observability.Prom
}

func NewPresenceHandler(presence HeartbeatWriter, prom *observability.Prom) *PresenceHandler {
	return &PresenceHandler{presence: presence, prom: prom}
}

// Heartbeat renews the viewer's connection marker. The client calls this
// on its socket keepalive cadence; the shell reads the result back as the
// connection indicator.
func (h *PresenceHandler) Heartbeat(ctx *gin.Context) {
	snap, _ := middlewares.SnapshotFromContext(ctx)

	if snap.User == nil {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	if err := h.presence.Heartbeat(ctx.Request.Context(), snap.User.ID); err != nil {
		RespondInternal(ctx, "Could not record heartbeat")
		return
	}

	if h.prom != nil {
		h.prom.HeartbeatsTotal.Inc()
	}

	ctx.Status(http.StatusNoContent)
}
