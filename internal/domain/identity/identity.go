package identity

import "time"

type Role string

const (
	RoleRider  Role = "rider"
	RoleDriver Role = "driver"
	RoleAdmin  Role = "admin"
)

// Roles returns every known role. Exhaustiveness checks (dashboard map,
// nav catalogs) range over this slice.
func Roles() []Role {
	return []Role{RoleRider, RoleDriver, RoleAdmin}
}

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleRider, RoleDriver, RoleAdmin:
		return Role(s), true
	}

	return "", false
}

func (r Role) Known() bool {
	_, ok := ParseRole(string(r))
	return ok
}

type Profile struct {
	Name string `json:"name"`
}

// DriverInfo is present only for driver accounts.
type DriverInfo struct {
	IsAvailable bool `json:"isAvailable"`
}

type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"` // never expose hash in JSON
	Role         Role        `json:"role"`
	Profile      Profile     `json:"profile"`
	DriverInfo   *DriverInfo `json:"driverInfo,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Snapshot is the per-evaluation view of the viewer's session. It is read,
// never mutated, by the guard and the navigation builder.
//
// User is non-nil iff IsAuthenticated is true and IsLoading is false; the
// guard treats any violation as "not authenticated".
type Snapshot struct {
	IsLoading       bool  `json:"isLoading"`
	IsAuthenticated bool  `json:"isAuthenticated"`
	User            *User `json:"user,omitempty"`
}

// Anonymous is the snapshot handed out when no session could be resolved.
func Anonymous() Snapshot {
	return Snapshot{}
}

// Pending is the snapshot handed out while session resolution is still
// in flight (or transiently failing).
func Pending() Snapshot {
	return Snapshot{IsLoading: true}
}
