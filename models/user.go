// models/user.go
package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account able to log in. Password holds whatever the configured
// credential scheme produced; with the plain scheme that is the clear text.
// TokenVersion is bumped on logout and password change; tokens issued for an
// older version no longer resume a session.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Password     string    `json:"-"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	TokenVersion int       `json:"-"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
