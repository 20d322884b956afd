package domain

import "time"

// UserRole enumerates supported roles. The single "owner" principal holds the
// shared provider credential used for all generation traffic.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleOwner UserRole = "owner"
)

// User represents an authenticated account within the platform.
type User struct {
	ID        string
	Email     string
	Name      string
	Locale    string
	Role      UserRole
	Credits   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwner reports whether the user is the platform-owner principal.
func (u User) IsOwner() bool {
	return u.Role == UserRoleOwner
}
