package mock

import (
	"context"

	"github.com/buzkaaclicker/profiles"
)

type UserStore struct {
	RegisterFn func(ctx context.Context, u profiles.NewUser) (profiles.User, error)

	ByIdFn func(ctx context.Context, userId profiles.UserId) (profiles.User, error)

	ByUsernameFn func(ctx context.Context, username string) (profiles.User, error)

	DeleteFn func(ctx context.Context, userId profiles.UserId) error
}

func (s UserStore) Register(ctx context.Context, u profiles.NewUser) (profiles.User, error) {
	return s.RegisterFn(ctx, u)
}

func (s UserStore) ById(ctx context.Context, userId profiles.UserId) (profiles.User, error) {
	return s.ByIdFn(ctx, userId)
}

func (s UserStore) ByUsername(ctx context.Context, username string) (profiles.User, error) {
	return s.ByUsernameFn(ctx, username)
}

func (s UserStore) Delete(ctx context.Context, userId profiles.UserId) error {
	return s.DeleteFn(ctx, userId)
}
