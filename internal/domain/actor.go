package domain

// Role represents the role of an authenticated actor
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Actor is the authenticated identity attempting an operation.
// The identity collaborator supplies it; the core trusts it and does not
// authenticate by itself.
type Actor struct {
	ID   int64
	Role Role
}

// IsAdmin returns true if the actor has the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsValidRole returns true for a known role value
func IsValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}
