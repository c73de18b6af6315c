package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swiftride/portal/internal/domain/identity"
)

type UserLister interface {
	List(ctx context.Context, limit int) ([]identity.User, error)
}

type AdminHandler struct {
	users UserLister
}

func NewAdminHandler(users UserLister) *AdminHandler {
	return &AdminHandler{users: users}
}

type adminUsersQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Users backs the /admin/users page. The admin guard sits in front.
func (h *AdminHandler) Users(ctx *gin.Context) {
	var q adminUsersQuery

	if !BindQuery(ctx, &q) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	users, err := h.users.List(cctx, q.Limit)

	if err != nil {
		RespondInternal(ctx, "Could not load users")
		return
	}

	if users == nil {
		users = []identity.User{}
	}

	ctx.JSON(http.StatusOK, gin.H{"data": users})
}
