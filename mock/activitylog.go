package mock

import (
	"context"

	"github.com/buzkaaclicker/profiles"
)

type ActivityStore struct {
	AddLogFn func(ctx context.Context, userId profiles.UserId, activity profiles.Activity) error

	ByUserIdFn func(ctx context.Context, userId profiles.UserId) ([]profiles.ActivityLog, error)
}

func (s ActivityStore) AddLog(ctx context.Context, userId profiles.UserId, activity profiles.Activity) error {
	return s.AddLogFn(ctx, userId, activity)
}

func (s ActivityStore) ByUserId(ctx context.Context, userId profiles.UserId) ([]profiles.ActivityLog, error) {
	return s.ByUserIdFn(ctx, userId)
}
