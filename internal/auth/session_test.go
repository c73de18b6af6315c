package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/swiftride/portal/internal/auth"
	"github.com/swiftride/portal/internal/cache"
	"github.com/swiftride/portal/internal/domain/identity"
	"github.com/swiftride/portal/internal/repo/postgres"
)

type fakeVerifier struct {
	verifyFn func(token string) (*auth.Claims, error)
}

func (f *fakeVerifier) VerifySessionToken(token string) (*auth.Claims, error) {
	if f.verifyFn != nil {
		return f.verifyFn(token)
	}
	return nil, errors.New("no verifier")
}

type fakeUsers struct {
	getFn func(ctx context.Context, id string) (identity.User, error)
	calls int
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (identity.User, error) {
	f.calls++
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return identity.User{}, postgres.ErrUserNotFound
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okVerifier(userID string) *fakeVerifier {
	return &fakeVerifier{verifyFn: func(string) (*auth.Claims, error) {
		return &auth.Claims{UserID: userID}, nil
	}}
}

func TestResolve(t *testing.T) {
	rider := identity.User{ID: "u1", Role: identity.RoleRider, Profile: identity.Profile{Name: "Ada"}}

	tests := []struct {
		name     string
		token    string
		verifier *fakeVerifier
		users    *fakeUsers
		want     identity.Snapshot
	}{
		{
			name:     "empty token is anonymous",
			token:    "",
			verifier: okVerifier("u1"),
			users:    &fakeUsers{},
			want:     identity.Anonymous(),
		},
		{
			name:  "bad token is anonymous",
			token: "garbage",
			verifier: &fakeVerifier{verifyFn: func(string) (*auth.Claims, error) {
				return nil, errors.New("invalid token")
			}},
			users: &fakeUsers{},
			want:  identity.Anonymous(),
		},
		{
			name:     "token for deleted user is anonymous",
			token:    "valid",
			verifier: okVerifier("gone"),
			users: &fakeUsers{getFn: func(context.Context, string) (identity.User, error) {
				return identity.User{}, postgres.ErrUserNotFound
			}},
			want: identity.Anonymous(),
		},
		{
			name:     "transient store failure is pending, not anonymous",
			token:    "valid",
			verifier: okVerifier("u1"),
			users: &fakeUsers{getFn: func(context.Context, string) (identity.User, error) {
				return identity.User{}, errors.New("connection refused")
			}},
			want: identity.Pending(),
		},
		{
			name:     "live session carries the user",
			token:    "valid",
			verifier: okVerifier("u1"),
			users: &fakeUsers{getFn: func(context.Context, string) (identity.User, error) {
				return rider, nil
			}},
			want: identity.Snapshot{IsAuthenticated: true, User: &rider},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := auth.NewResolver(tc.verifier, tc.users, nil, discardLogger())

			got := r.Resolve(context.Background(), tc.token)

			if got.IsLoading != tc.want.IsLoading || got.IsAuthenticated != tc.want.IsAuthenticated {
				t.Fatalf("Resolve() = %+v, want %+v", got, tc.want)
			}

			if (got.User == nil) != (tc.want.User == nil) {
				t.Fatalf("Resolve() user = %+v, want %+v", got.User, tc.want.User)
			}

			if got.User != nil && got.User.ID != tc.want.User.ID {
				t.Fatalf("Resolve() user ID = %q, want %q", got.User.ID, tc.want.User.ID)
			}
		})
	}
}

func TestResolveUsesCacheUntilInvalidated(t *testing.T) {
	driver := identity.User{ID: "d1", Role: identity.RoleDriver}

	users := &fakeUsers{getFn: func(context.Context, string) (identity.User, error) {
		return driver, nil
	}}

	r := auth.NewResolver(okVerifier("d1"), users, cache.New(time.Minute), discardLogger())

	for i := 0; i < 3; i++ {
		snap := r.Resolve(context.Background(), "valid")

		if !snap.IsAuthenticated {
			t.Fatalf("resolve %d not authenticated", i)
		}
	}

	if users.calls != 1 {
		t.Fatalf("expected 1 store lookup, got %d", users.calls)
	}

	r.Invalidate("d1")
	r.Resolve(context.Background(), "valid")

	if users.calls != 2 {
		t.Fatalf("expected fresh lookup after invalidate, got %d calls", users.calls)
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)

	token, err := m.GenerateSessionToken("u1", "ada@example.com", "rider")

	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}

	claims, err := m.VerifySessionToken(token)

	if err != nil {
		t.Fatalf("VerifySessionToken: %v", err)
	}

	if claims.UserID != "u1" || claims.Role != "rider" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	mint := auth.NewManager("secret-a", time.Hour)
	verify := auth.NewManager("secret-b", time.Hour)

	token, err := mint.GenerateSessionToken("u1", "ada@example.com", "rider")

	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}

	if _, err := verify.VerifySessionToken(token); err == nil {
		t.Fatal("expected verification failure across secrets")
	}
}
