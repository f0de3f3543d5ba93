package account

import (
	"errors"
	"time"

	"jyambere.org/internal/roles"
)

// Account is the stored user record. The password field is persisted with
// the record; only session snapshots strip it.
type Account struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Password   string     `json:"password"`
	Name       string     `json:"name"`
	Role       roles.Role `json:"role"`
	Department *string    `json:"department"`
	CreatedAt  time.Time  `json:"createdAt"`
}

var (
	// ErrDuplicateEmail rejects registration with an already-known address.
	ErrDuplicateEmail = errors.New("account: duplicate email")
	// ErrInvalidCredentials is returned for any failed login. Callers cannot
	// tell an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("account: invalid credentials")
)
