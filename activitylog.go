package profiles

import (
	"context"
	"time"
)

const (
	ActivityAccountCreated = "account_created"
	ActivitySessionCreated = "session_created"
	ActivityProfileUpdated = "profile_updated"
)

type Activity struct {
	Name string
	Data map[string]interface{}
}

type ActivityLog struct {
	Id        int64
	CreatedAt time.Time
	UserId    UserId
	Name      string
	Data      map[string]interface{}
}

type ActivityStore interface {
	AddLog(ctx context.Context, userId UserId, activity Activity) error

	// Logs of the user, newest first.
	ByUserId(ctx context.Context, userId UserId) ([]ActivityLog, error)
}
