package models

// Person roles
const (
	RoleGuest     = "guest"
	RoleNavigator = "navigator"
)

// ValidRoles defines allowed person roles
var ValidRoles = map[string]bool{
	RoleGuest:     true,
	RoleNavigator: true,
}

// Person is a guest or a navigator of the program. The two taxonomies
// share one shape and one table, split by role.
type Person struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Role string `json:"role" db:"role"`
}
