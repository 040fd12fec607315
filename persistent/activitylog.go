package persistent

import (
	"context"
	"fmt"
	"time"

	"github.com/buzkaaclicker/profiles"
	"github.com/uptrace/bun"
)

type ActivityLog struct {
	bun.BaseModel `bun:"table:activity_log"`

	Id        int64                  `bun:",pk,autoincrement"`
	CreatedAt time.Time              `bun:",nullzero,notnull,default:current_timestamp"`
	UserId    int64                  `bun:",notnull"`
	Name      string                 `bun:",notnull"`
	Data      map[string]interface{} `bun:"type:jsonb"`
}

func (l *ActivityLog) ToDomain() profiles.ActivityLog {
	return profiles.ActivityLog{
		Id:        l.Id,
		CreatedAt: l.CreatedAt,
		UserId:    profiles.UserId(l.UserId),
		Name:      l.Name,
		Data:      l.Data,
	}
}

type ActivityStore struct {
	DB *bun.DB
}

var _ profiles.ActivityStore = (*ActivityStore)(nil)

func (s *ActivityStore) AddLog(ctx context.Context, userId profiles.UserId, activity profiles.Activity) error {
	return addLog(ctx, s.DB, userId, activity)
}

// LogAccountCreated records the registration. Subscribe it to UserStore.OnAccountCreated.
func (s *ActivityStore) LogAccountCreated(ctx context.Context, tx bun.Tx, event profiles.AccountCreated) error {
	return addLog(ctx, tx, event.UserId, profiles.Activity{
		Name: profiles.ActivityAccountCreated,
		Data: map[string]interface{}{"username": event.Username},
	})
}

func addLog(ctx context.Context, db bun.IDB, userId profiles.UserId, activity profiles.Activity) error {
	_, err := db.NewInsert().
		Model(&ActivityLog{
			UserId: int64(userId),
			Name:   activity.Name,
			Data:   activity.Data,
		}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("insert log entry: %w", err)
	}
	return nil
}

func (s *ActivityStore) ByUserId(ctx context.Context, userId profiles.UserId) ([]profiles.ActivityLog, error) {
	var logs []ActivityLog
	err := s.DB.NewSelect().
		Model((*ActivityLog)(nil)).
		Where("activity_log.user_id=?", int64(userId)).
		Order("activity_log.id DESC").
		Scan(ctx, &logs)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	ml := make([]profiles.ActivityLog, len(logs))
	for i, l := range logs {
		ml[i] = l.ToDomain()
	}
	return ml, nil
}
