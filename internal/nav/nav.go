package nav

import (
	"strings"

	"github.com/swiftride/portal/internal/domain/identity"
)

// Item is a single menu entry. Slice order is display order.
type Item struct {
	Path  string `json:"path"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var catalogs = map[identity.Role][]Item{
	identity.RoleRider: {
		{Path: "/rider/book", Label: "Book Ride", Icon: "car"},
		{Path: "/rider/rides", Label: "My Rides", Icon: "route"},
		{Path: "/rider/profile", Label: "Profile", Icon: "user"},
	},
	identity.RoleDriver: {
		{Path: "/driver/dashboard", Label: "Dashboard", Icon: "gauge"},
		{Path: "/driver/rides", Label: "My Rides", Icon: "route"},
		{Path: "/driver/profile", Label: "Profile", Icon: "user"},
	},
	identity.RoleAdmin: {
		{Path: "/admin/dashboard", Label: "Dashboard", Icon: "gauge"},
		{Path: "/admin/users", Label: "Users", Icon: "users"},
		{Path: "/admin/rides", Label: "Rides", Icon: "route"},
	},
}

// Build returns the menu for a role. Pure: same role, same list, every
// time. Unknown roles degrade to an empty menu rather than an error; the
// host should never get here with one, but a missing menu beats a crash
// in the page chrome.
func Build(role identity.Role) []Item {
	items, ok := catalogs[role]

	if !ok {
		return []Item{}
	}

	// copy so callers cannot mutate the catalog
	out := make([]Item, len(items))
	copy(out, items)

	return out
}

// IsActive reports whether a menu entry should be highlighted for the
// current location: exact match, or the location sits under the entry's
// path as a sub-page. Segment-aware so /rider/rides does not claim
// /rider/rides-archive.
func IsActive(itemPath, current string) bool {
	if current == itemPath {
		return true
	}

	return strings.HasPrefix(current, itemPath+"/")
}
