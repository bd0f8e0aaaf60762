package authorization

// Role constants for Casbin role-based access control.
// These correspond to the roles defined in casbin/policy.csv.
const (
	// RoleAdmin moderates the catalog and manages users.
	RoleAdmin = "admin"

	// RoleAuthor is a verified author who can submit their own books and see
	// rating statistics for them.
	RoleAuthor = "author"

	// RoleNormal is a regular reader account.
	RoleNormal = "normal"
)

// FormatRole converts a role name to the Casbin role format.
// Example: FormatRole("admin") returns "role:admin"
func FormatRole(role string) string {
	return "role:" + role
}

// ValidRoles returns a list of all valid role names.
func ValidRoles() []string {
	return []string{RoleAdmin, RoleAuthor, RoleNormal}
}

// IsValidRole checks if a role name is valid.
func IsValidRole(role string) bool {
	for _, validRole := range ValidRoles() {
		if role == validRole {
			return true
		}
	}
	return false
}
