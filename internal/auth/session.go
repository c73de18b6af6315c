package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/swiftride/portal/internal/cache"
	"github.com/swiftride/portal/internal/domain/identity"
	"github.com/swiftride/portal/internal/repo/postgres"
)

// Keep this small interface so tests can fake it easily.
type UserSource interface {
	GetByID(ctx context.Context, id string) (identity.User, error)
}

type TokenVerifier interface {
	VerifySessionToken(token string) (*Claims, error)
}

// Resolver turns a raw session token into a Session Snapshot. It is the
// session provider from the guard's point of view: the guard only ever
// sees the snapshot, never the token or the store.
type Resolver struct {
	jwt   TokenVerifier
	users UserSource
	cache *cache.Cache
	log   *slog.Logger
}

func NewResolver(jwt TokenVerifier, users UserSource, userCache *cache.Cache, log *slog.Logger) *Resolver {
	return &Resolver{
		jwt:   jwt,
		users: users,
		cache: userCache,
		log:   log,
	}
}

// Resolve builds the snapshot for one request.
//
//   - no token / bad token           -> anonymous
//   - token for a deleted user      -> anonymous (the session is dead)
//   - transient store failure       -> pending: we cannot prove either way,
//     so the viewer sees a loading state and retries, never a login flash
func (r *Resolver) Resolve(ctx context.Context, token string) identity.Snapshot {
	if token == "" {
		return identity.Anonymous()
	}

	claims, err := r.jwt.VerifySessionToken(token)

	if err != nil {
		return identity.Anonymous()
	}

	if u, ok := r.cachedUser(claims.UserID); ok {
		return identity.Snapshot{IsAuthenticated: true, User: &u}
	}

	cctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	u, err := r.users.GetByID(cctx, claims.UserID)

	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			return identity.Anonymous()
		}

		r.log.Warn("session resolution pending", "err", err, "user_id", claims.UserID)

		return identity.Pending()
	}

	if r.cache != nil {
		r.cache.Set(userCacheKey(u.ID), u)
	}

	return identity.Snapshot{IsAuthenticated: true, User: &u}
}

// Invalidate drops the cached user, e.g. after an availability toggle so
// the next shell render sees the new state.
func (r *Resolver) Invalidate(userID string) {
	if r.cache != nil {
		r.cache.Delete(userCacheKey(userID))
	}
}

func (r *Resolver) cachedUser(id string) (identity.User, bool) {
	if r.cache == nil {
		return identity.User{}, false
	}

	v, ok := r.cache.Get(userCacheKey(id))

	if !ok {
		return identity.User{}, false
	}

	u, ok := v.(identity.User)

	return u, ok
}

func userCacheKey(id string) string {
	return "user:" + id
}
