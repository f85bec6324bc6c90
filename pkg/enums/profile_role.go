package enums

import "fmt"

// ProfileRole represents the platform-level role stored on a profile.
type ProfileRole string

const (
	ProfileRoleOwner    ProfileRole = "owner"
	ProfileRoleProvider ProfileRole = "provider"
	ProfileRoleCustomer ProfileRole = "customer"
)

var validProfileRoles = []ProfileRole{
	ProfileRoleOwner,
	ProfileRoleProvider,
	ProfileRoleCustomer,
}

// String implements fmt.Stringer.
func (p ProfileRole) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProfileRole.
func (p ProfileRole) IsValid() bool {
	for _, candidate := range validProfileRoles {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProfileRole converts raw input into a ProfileRole.
func ParseProfileRole(value string) (ProfileRole, error) {
	for _, candidate := range validProfileRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid profile role %q", value)
}
