package profiles

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username taken")
)

type UserId int64

type Email string

type User struct {
	Id           UserId
	CreatedAt    time.Time
	Username     string
	Email        Email
	PasswordHash []byte
	Roles        Roles
}

// NewUser holds registration data. Password is plain text and never stored as is.
type NewUser struct {
	Username string
	Email    Email
	Password string
}

type UserStore interface {
	// Register creates the account and dispatches AccountCreated to subscribers
	// atomically with the insert.
	Register(ctx context.Context, u NewUser) (User, error)

	ById(ctx context.Context, userId UserId) (User, error)

	ByUsername(ctx context.Context, username string) (User, error)

	// Delete removes the account together with its profile.
	Delete(ctx context.Context, userId UserId) error
}
