package model

import "strings"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// NormalizeRole maps anything other than admin to the plain user role.
func NormalizeRole(role string) string {
	if strings.EqualFold(strings.TrimSpace(role), RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// Identity is what a session proves about the caller.
type Identity struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// UserRecord is a statically configured user.
type UserRecord struct {
	Username     string
	Name         string
	Role         string
	PasswordHash string
}

func (u UserRecord) Identity() Identity {
	return Identity{Username: u.Username, Name: u.Name, Role: u.Role}
}
