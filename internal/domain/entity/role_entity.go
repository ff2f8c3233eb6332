package entity

// Role is a marketplace role a user can act under.
// Each role has its own dashboard; a user may hold any subset.
type Role string

const (
	RoleHomeowner    Role = "homeowner"
	RoleProfessional Role = "professional"
	RoleSupplier     Role = "supplier"
)

// AllRoles lists every role the platform knows, in display order.
func AllRoles() []Role {
	return []Role{RoleHomeowner, RoleProfessional, RoleSupplier}
}

// ParseRole maps a string to a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleHomeowner, RoleProfessional, RoleSupplier:
		return Role(s), true
	}
	return "", false
}

// DashboardPath returns the route of the role's dashboard.
func (r Role) DashboardPath() string {
	return "/" + string(r)
}
