package domain

import "time"

// Role enumerates dashboard roles. Role is the sole authorization input
// to the board; it is owned by the external auth provider.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleQA        Role = "qa"
	RoleDeveloper Role = "developer"
)

// Valid reports whether the role is one of the enumerated values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleQA, RoleDeveloper:
		return true
	}
	return false
}

// User is the current actor as reported by the auth provider.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
}
