package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swiftride/portal/internal/domain/payment"
	"github.com/swiftride/portal/internal/http/middlewares"
	"github.com/swiftride/portal/internal/utils"
)

type PaymentLister interface {
	ListByUser(ctx context.Context, userID string, afterCreatedAt time.Time, afterID string, limit int) ([]payment.Payment, *string, bool, error)
}

type PaymentsHandler struct {
	payments PaymentLister
}

func NewPaymentsHandler(payments PaymentLister) *PaymentsHandler {
	return &PaymentsHandler{payments: payments}
}

type paymentHistoryQuery struct {
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Cursor string `form:"cursor"`
}

// History serves the payment-history panel for the authenticated viewer.
// The guard middleware already ensured there is one.
func (h *PaymentsHandler) History(ctx *gin.Context) {
	var q paymentHistoryQuery

	if !BindQuery(ctx, &q) {
		return
	}

	snap, _ := middlewares.SnapshotFromContext(ctx)

	if snap.User == nil {
		// unreachable behind the guard; fail closed anyway
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	var afterCreatedAt time.Time
	var afterID string

	if q.Cursor != "" {
		c, err := utils.DecodePaymentCursor(q.Cursor)

		if err != nil {
			RespondBadRequest(ctx, "Invalid cursor", nil)
			return
		}

		afterCreatedAt = c.CreatedAt
		afterID = c.ID
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	payments, next, hasMore, err := h.payments.ListByUser(cctx, snap.User.ID, afterCreatedAt, afterID, q.Limit)

	if err != nil {
		RespondInternal(ctx, "Could not load payment history")
		return
	}

	if payments == nil {
		payments = []payment.Payment{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data":       payments,
		"nextCursor": next,
		"hasMore":    hasMore,
	})
}
