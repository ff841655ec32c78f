package user

import "time"

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// ValidRole reports whether a sign-up role is one of the two supported
// account kinds. Roles are fixed at registration.
func ValidRole(r Role) bool {
	return r == RoleBuyer || r == RoleSeller
}

type User struct {
	ID           string
	Email        string
	Name         string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

type RegisterParams struct {
	Email    string
	Password string
	Name     string
	Role     Role
}
