package enums

import "fmt"

// Role represents a team-level permissions role.
type Role string

const (
	RoleManager    Role = "Manager"
	RoleMechanic   Role = "Mechanic"
	RoleDriver     Role = "Driver"
	RolePartsClerk Role = "PartsClerk"
)

var validRoles = []Role{
	RoleManager,
	RoleMechanic,
	RoleDriver,
	RolePartsClerk,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}

// AllRoles returns the seeded role set.
func AllRoles() []Role {
	out := make([]Role, len(validRoles))
	copy(out, validRoles)
	return out
}
