//go:generate go run go.uber.org/mock/mockgen@latest -source=$GOFILE -destination=mocks/mock_$GOFILE -package=mock_domain UserRepository
package domain

import (
	"context"
	"time"
)

// RolePrefix is the mandatory prefix for every authority string.
const RolePrefix = "ROLE_"

// User is a provisioned user account. The username is the case-sensitive
// lookup key; Authorities keep their stored order.
type User struct {
	ID           string    `bson:"_id,omitempty"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"password"`
	Authorities  []string  `bson:"authorities"`
	Enabled      bool      `bson:"enabled"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

// UserRepository defines storage for user accounts.
type UserRepository interface {
	// CreateUser inserts a new user. Returns ErrUserExists when the
	// username is already taken.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByUsername retrieves a user by username. Returns
	// ErrUserNotFound when absent.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// UpdateUser replaces the stored record for user.Username. Returns
	// ErrUserNotFound when absent.
	UpdateUser(ctx context.Context, user *User) error
}
