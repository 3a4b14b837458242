package auth

import (
	"context"
	"time"
)

// Repository persists web users.
type Repository interface {
	// GetByUsername returns the user or an apperror NotFound.
	GetByUsername(ctx context.Context, username string) (*User, error)
	// GetByID returns the user or an apperror NotFound.
	GetByID(ctx context.Context, id int64) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, user *User) (int64, error)
	// List returns all users, pending accounts first.
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id int64, upd UserUpdate) error
	RecordLogin(ctx context.Context, id int64, at time.Time) error
}
