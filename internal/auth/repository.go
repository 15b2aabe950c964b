package auth

import (
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the data-access contract.
// Service depends ONLY on this interface.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
