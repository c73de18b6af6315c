package guard

import (
	"github.com/swiftride/portal/internal/domain/identity"
)

type Kind string

const (
	KindLoading  Kind = "loading"
	KindRedirect Kind = "redirect"
	KindRender   Kind = "render"
)

// DefaultRedirect is where unauthenticated viewers land unless the route
// overrides it.
const DefaultRedirect = "/login"

// Decision is what the routing host interprets. The guard itself never
// navigates; it only reports.
type Decision struct {
	Kind Kind `json:"decision"`

	// Path is the redirect target. Set only for KindRedirect.
	Path string `json:"to,omitempty"`

	// From preserves the originally requested location so the login flow
	// can return the viewer there afterwards. Set only on the
	// not-authenticated redirect, never on the wrong-role one.
	From string `json:"from,omitempty"`
}

type Request struct {
	// RequiredRole gates the route to one role. Zero value means any
	// authenticated viewer passes.
	RequiredRole identity.Role

	// RedirectTo overrides DefaultRedirect for the unauthenticated case.
	RedirectTo string

	// CurrentLocation is the path the viewer asked for.
	CurrentLocation string
}

// Decide evaluates one navigation request against a session snapshot.
//
// The branch order is a contract, not a style choice: the loading check
// must win over everything else so a still-resolving session never flashes
// a redirect to /login.
func Decide(snap identity.Snapshot, req Request) Decision {
	if snap.IsLoading {
		return Decision{Kind: KindLoading}
	}

	// A snapshot claiming authentication without a user is inconsistent;
	// fail closed.
	if !snap.IsAuthenticated || snap.User == nil {
		to := req.RedirectTo

		if to == "" {
			to = DefaultRedirect
		}

		return Decision{Kind: KindRedirect, Path: to, From: req.CurrentLocation}
	}

	if req.RequiredRole != "" && snap.User.Role != req.RequiredRole {
		// The viewer landed on a page structurally wrong for their role.
		// Send them home; the origin is not worth returning to.
		return Decision{Kind: KindRedirect, Path: DashboardRoute(snap.User.Role)}
	}

	return Decision{Kind: KindRender}
}
