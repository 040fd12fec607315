package inmem

import (
	"context"
	"sync"
	"time"

	"github.com/buzkaaclicker/profiles"
)

type ActivityStore struct {
	lastId int64
	logs   map[profiles.UserId][]profiles.ActivityLog
	mutex  sync.RWMutex
}

var _ profiles.ActivityStore = (*ActivityStore)(nil)

func NewActivityStore() *ActivityStore {
	return &ActivityStore{
		logs: make(map[profiles.UserId][]profiles.ActivityLog),
	}
}

func (s *ActivityStore) AddLog(ctx context.Context, userId profiles.UserId, activity profiles.Activity) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.lastId++
	s.logs[userId] = append(s.logs[userId], profiles.ActivityLog{
		Id:        s.lastId,
		CreatedAt: time.Now(),
		UserId:    userId,
		Name:      activity.Name,
		Data:      activity.Data,
	})
	return nil
}

// LogAccountCreated records the registration. Subscribe it to UserStore.OnAccountCreated.
func (s *ActivityStore) LogAccountCreated(ctx context.Context, event profiles.AccountCreated) error {
	return s.AddLog(ctx, event.UserId, profiles.Activity{
		Name: profiles.ActivityAccountCreated,
		Data: map[string]interface{}{"username": event.Username},
	})
}

func (s *ActivityStore) ByUserId(ctx context.Context, userId profiles.UserId) ([]profiles.ActivityLog, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	logs := s.logs[userId]
	newestFirst := make([]profiles.ActivityLog, len(logs))
	for i, log := range logs {
		newestFirst[len(logs)-1-i] = log
	}
	return newestFirst, nil
}
