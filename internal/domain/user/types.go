package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleClient    Role = "client"
	RolePro       Role = "pro"
	RoleFranchise Role = "franchise"
	RoleAdmin     Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RolePro, RoleFranchise, RoleAdmin:
		return true
	default:
		return false
	}
}

// Elevated roles may filter other users' bookings and see unscoped lists.
func (r Role) IsElevated() bool {
	return r == RoleAdmin || r == RoleFranchise
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
