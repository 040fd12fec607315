package mock

import (
	"context"

	"github.com/buzkaaclicker/profiles"
)

type ProfileStore struct {
	AllFn func(ctx context.Context) ([]profiles.Profile, error)

	ByIdFn func(ctx context.Context, id profiles.ProfileId) (profiles.Profile, error)

	UpdateFn func(ctx context.Context, id profiles.ProfileId, update profiles.ProfileUpdate) (profiles.Profile, error)
}

func (s ProfileStore) All(ctx context.Context) ([]profiles.Profile, error) {
	return s.AllFn(ctx)
}

func (s ProfileStore) ById(ctx context.Context, id profiles.ProfileId) (profiles.Profile, error) {
	return s.ByIdFn(ctx, id)
}

func (s ProfileStore) Update(ctx context.Context, id profiles.ProfileId,
	update profiles.ProfileUpdate) (profiles.Profile, error) {
	return s.UpdateFn(ctx, id, update)
}
