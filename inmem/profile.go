package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/buzkaaclicker/profiles"
)

type ProfileStore struct {
	lastId   int64
	profiles map[profiles.ProfileId]profiles.Profile
	byOwner  map[profiles.UserId]profiles.ProfileId
	mutex    sync.RWMutex

	// Clock stamps created_at and updated_at, time.Now when nil.
	Clock func() time.Time
}

var _ profiles.ProfileStore = (*ProfileStore)(nil)

func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: map[profiles.ProfileId]profiles.Profile{},
		byOwner:  map[profiles.UserId]profiles.ProfileId{},
	}
}

func (s *ProfileStore) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// Provision creates the profile of a freshly registered account. Subscribe it
// to UserStore.OnAccountCreated.
func (s *ProfileStore) Provision(ctx context.Context, event profiles.AccountCreated) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.byOwner[event.UserId]; ok {
		return fmt.Errorf("user %d already owns a profile", event.UserId)
	}

	s.lastId++
	id := profiles.ProfileId(s.lastId)
	now := s.now()
	s.profiles[id] = profiles.Profile{
		Id:        id,
		Owner:     profiles.User{Id: event.UserId, Username: event.Username, CreatedAt: event.CreatedAt},
		CreatedAt: now,
		UpdatedAt: now,
		Image:     profiles.DefaultProfileImage,
	}
	s.byOwner[event.UserId] = id
	return nil
}

// DeleteByOwner removes the profile of a deleted account. Subscribe it to UserStore.OnAccountDeleted.
func (s *ProfileStore) DeleteByOwner(ctx context.Context, userId profiles.UserId) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if id, ok := s.byOwner[userId]; ok {
		delete(s.profiles, id)
		delete(s.byOwner, userId)
	}
	return nil
}

func (s *ProfileStore) All(ctx context.Context) ([]profiles.Profile, error) {
	s.mutex.RLock()
	all := make([]profiles.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		all = append(all, p)
	}
	s.mutex.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].Id > all[j].Id
	})
	return all, nil
}

func (s *ProfileStore) ById(ctx context.Context, id profiles.ProfileId) (profiles.Profile, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return profiles.Profile{}, profiles.ErrProfileNotFound
	}
	return p, nil
}

func (s *ProfileStore) Update(ctx context.Context, id profiles.ProfileId,
	update profiles.ProfileUpdate) (profiles.Profile, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return profiles.Profile{}, profiles.ErrProfileNotFound
	}
	update.ApplyTo(&p)
	p.UpdatedAt = s.now()
	s.profiles[id] = p
	return p, nil
}
