package guard

import (
	"fmt"

	"github.com/swiftride/portal/internal/domain/identity"
)

// dashboardRoutes maps every role to its canonical landing route. The map
// must stay total over identity.Roles(); ValidateDashboards enforces that
// at startup.
var dashboardRoutes = map[identity.Role]string{
	identity.RoleRider:  "/rider/book",
	identity.RoleDriver: "/driver/dashboard",
	identity.RoleAdmin:  "/admin/dashboard",
}

// DashboardRoute returns the landing route for a role. An unknown role is
// a configuration defect, not runtime input: sessions only ever carry
// parsed roles, so a gap here means the map and the role enum drifted
// apart. Panic rather than render nothing.
func DashboardRoute(r identity.Role) string {
	route, ok := dashboardRoutes[r]

	if !ok {
		panic(fmt.Sprintf("guard: no dashboard route for role %q", r))
	}

	return route
}

// ValidateDashboards checks the map is total and every route non-empty.
// Called once during router construction so a gap fails the process fast.
func ValidateDashboards() error {
	for _, r := range identity.Roles() {
		if dashboardRoutes[r] == "" {
			return fmt.Errorf("guard: dashboard route missing for role %q", r)
		}
	}

	return nil
}
