package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swiftride/portal/internal/http/middlewares"
)

type AvailabilityWriter interface {
	SetDriverAvailability(ctx context.Context, userID string, available bool) error
}

type SnapshotInvalidator interface {
	Invalidate(userID string)
}

type DriverHandler struct {
	users    AvailabilityWriter
	sessions SnapshotInvalidator
}

func NewDriverHandler(users AvailabilityWriter, sessions SnapshotInvalidator) *DriverHandler {
	return &DriverHandler{users: users, sessions: sessions}
}

type availabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// SetAvailability flips the driver's availability badge. Driver-guarded,
// so the snapshot is known to carry a driver.
func (h *DriverHandler) SetAvailability(ctx *gin.Context) {
	var req availabilityRequest

	if !BindJSON(ctx, &req) {
		return
	}

	snap, _ := middlewares.SnapshotFromContext(ctx)

	if snap.User == nil {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.users.SetDriverAvailability(cctx, snap.User.ID, *req.Available); err != nil {
		RespondInternal(ctx, "Could not update availability")
		return
	}

	// drop the cached snapshot so the next shell render sees the change
	if h.sessions != nil {
		h.sessions.Invalidate(snap.User.ID)
	}

	ctx.JSON(http.StatusOK, gin.H{"available": *req.Available})
}
