package nav_test

import (
	"reflect"
	"testing"

	"github.com/swiftride/portal/internal/domain/identity"
	"github.com/swiftride/portal/internal/nav"
)

func TestBuildCatalogs(t *testing.T) {
	tests := []struct {
		role      identity.Role
		wantPaths []string
		wantLabel []string
	}{
		{
			role:      identity.RoleRider,
			wantPaths: []string{"/rider/book", "/rider/rides", "/rider/profile"},
			wantLabel: []string{"Book Ride", "My Rides", "Profile"},
		},
		{
			role:      identity.RoleDriver,
			wantPaths: []string{"/driver/dashboard", "/driver/rides", "/driver/profile"},
			wantLabel: []string{"Dashboard", "My Rides", "Profile"},
		},
		{
			role:      identity.RoleAdmin,
			wantPaths: []string{"/admin/dashboard", "/admin/users", "/admin/rides"},
			wantLabel: []string{"Dashboard", "Users", "Rides"},
		},
	}

	for _, tc := range tests {
		t.Run(string(tc.role), func(t *testing.T) {
			items := nav.Build(tc.role)

			if len(items) == 0 {
				t.Fatalf("Build(%q) returned an empty menu", tc.role)
			}

			paths := make([]string, 0, len(items))
			labels := make([]string, 0, len(items))
			seen := make(map[string]bool)

			for _, item := range items {
				if seen[item.Path] {
					t.Fatalf("duplicate path %q in %q menu", item.Path, tc.role)
				}

				seen[item.Path] = true
				paths = append(paths, item.Path)
				labels = append(labels, item.Label)

				if item.Icon == "" {
					t.Fatalf("item %q has no icon", item.Path)
				}
			}

			if !reflect.DeepEqual(paths, tc.wantPaths) {
				t.Fatalf("paths = %v, want %v", paths, tc.wantPaths)
			}

			if !reflect.DeepEqual(labels, tc.wantLabel) {
				t.Fatalf("labels = %v, want %v", labels, tc.wantLabel)
			}
		})
	}
}

func TestBuildUnknownRoleDegradesToEmpty(t *testing.T) {
	items := nav.Build(identity.Role("dispatcher"))

	if items == nil {
		t.Fatal("Build must return an empty slice, not nil")
	}

	if len(items) != 0 {
		t.Fatalf("unknown role produced %d items", len(items))
	}
}

// Every known role has a menu, and every menu is a fresh copy per call.
func TestBuildIsTotalAndStable(t *testing.T) {
	for _, r := range identity.Roles() {
		first := nav.Build(r)
		first[0].Label = "tampered"

		second := nav.Build(r)

		if second[0].Label == "tampered" {
			t.Fatalf("Build(%q) leaked its backing catalog", r)
		}
	}
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		item    string
		current string
		want    bool
	}{
		{"/rider/rides", "/rider/rides", true},
		{"/rider/rides", "/rider/rides/42", true},
		{"/rider/rides", "/rider/rides-archive", false},
		{"/rider/rides", "/rider/book", false},
		{"/admin/users", "/admin", false},
	}

	for _, tc := range tests {
		if got := nav.IsActive(tc.item, tc.current); got != tc.want {
			t.Fatalf("IsActive(%q, %q) = %v, want %v", tc.item, tc.current, got, tc.want)
		}
	}
}
