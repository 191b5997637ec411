package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")
var ErrForbidden = errors.New("access forbidden")

// User is the profile snapshot returned by the booking backend. It is
// immutable once fetched; a fresh fetch replaces it wholesale.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Tel       string    `json:"tel,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user may access the admin panel.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
