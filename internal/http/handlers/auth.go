package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swiftride/portal/internal/config"
	"github.com/swiftride/portal/internal/domain/identity"
	"github.com/swiftride/portal/internal/http/middlewares"
	"github.com/swiftride/portal/internal/security"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (identity.User, error)
}

type SessionTokens interface {
	GenerateSessionToken(userID, email, role string) (string, error)
	SessionTTL() time.Duration
}

type PresenceDropper interface {
	Disconnect(ctx context.Context, userID string) error
}

type AuthHandler struct {
	users    UserReader
	jwt      SessionTokens
	presence PresenceDropper
	cfg      config.Config
}

func NewAuthHandler(users UserReader, jwt SessionTokens, presence PresenceDropper, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		users:    users,
		jwt:      jwt,
		presence: presence,
		cfg:      cfg,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}
	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)
	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	token, err := h.jwt.GenerateSessionToken(foundUser.ID, foundUser.Email, string(foundUser.Role))

	if err != nil {
		RespondInternal(ctx, "Could not create session")
		return
	}

	h.setSessionCookie(ctx, token, h.jwt.SessionTTL())

	ctx.JSON(http.StatusOK, gin.H{
		"user": foundUser,
	})
}

// Logout clears the session cookie. Fire and forget: there is nothing to
// report back even if no session existed.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	// drop the connection marker eagerly instead of waiting out the TTL
	if h.presence != nil {
		if snap, ok := middlewares.SnapshotFromContext(ctx); ok && snap.User != nil {
			_ = h.presence.Disconnect(ctx.Request.Context(), snap.User.ID)
		}
	}

	h.setSessionCookie(ctx, "", -time.Second)

	ctx.Status(http.StatusNoContent)
}

// Session returns the viewer's resolved Session Snapshot. Never 401: an
// anonymous viewer is a valid answer, and a client stuck on isLoading
// polls this until it flips.
func (h *AuthHandler) Session(ctx *gin.Context) {
	snap, ok := middlewares.SnapshotFromContext(ctx)

	if !ok {
		snap = identity.Anonymous()
	}

	ctx.JSON(http.StatusOK, snap)
}

func (h *AuthHandler) setSessionCookie(ctx *gin.Context, token string, ttl time.Duration) {
	secure := h.cfg.Env != "dev"

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middlewares.SessionCookie, token, int(ttl.Seconds()), "/", "", secure, true)
}
