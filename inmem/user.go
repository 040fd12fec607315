package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/buzkaaclicker/profiles"
)

type AccountCreatedHandler func(ctx context.Context, event profiles.AccountCreated) error

type AccountDeletedHandler func(ctx context.Context, userId profiles.UserId) error

type UserStore struct {
	// Subscribers run under the store lock. A failing AccountCreatedHandler
	// drops the user again and runs the AccountDeletedHandlers to undo the
	// handlers that already succeeded.
	OnAccountCreated []AccountCreatedHandler
	OnAccountDeleted []AccountDeletedHandler

	lastId int64
	users  map[profiles.UserId]profiles.User
	mutex  sync.RWMutex
}

var _ profiles.UserStore = (*UserStore)(nil)

func NewUserStore() *UserStore {
	return &UserStore{
		users: map[profiles.UserId]profiles.User{},
	}
}

func (s *UserStore) Register(ctx context.Context, u profiles.NewUser) (profiles.User, error) {
	hash, err := profiles.HashPassword(u.Password)
	if err != nil {
		return profiles.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return profiles.User{}, profiles.ErrUsernameTaken
		}
	}

	s.lastId++
	uid := profiles.UserId(s.lastId)
	user := profiles.User{
		Id:           uid,
		CreatedAt:    time.Now(),
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: hash,
		Roles:        profiles.Roles{},
	}
	s.users[uid] = user

	event := profiles.AccountCreated{UserId: uid, Username: user.Username, CreatedAt: user.CreatedAt}
	for _, handler := range s.OnAccountCreated {
		if err := handler(ctx, event); err != nil {
			_ = s.deleteLocked(ctx, uid)
			return profiles.User{}, fmt.Errorf("account created handler: %w", err)
		}
	}
	return user, nil
}

func (s *UserStore) ById(ctx context.Context, userId profiles.UserId) (profiles.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	u, ok := s.users[userId]
	if !ok {
		return u, profiles.ErrUserNotFound
	}
	return u, nil
}

func (s *UserStore) ByUsername(ctx context.Context, username string) (profiles.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return profiles.User{}, profiles.ErrUserNotFound
}

// Update replaces the stored user, used to grant roles.
func (s *UserStore) Update(ctx context.Context, user profiles.User) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.users[user.Id]; !ok {
		return profiles.ErrUserNotFound
	}
	s.users[user.Id] = user
	return nil
}

func (s *UserStore) Delete(ctx context.Context, userId profiles.UserId) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.users[userId]; !ok {
		return profiles.ErrUserNotFound
	}
	return s.deleteLocked(ctx, userId)
}

func (s *UserStore) deleteLocked(ctx context.Context, userId profiles.UserId) error {
	delete(s.users, userId)
	for _, handler := range s.OnAccountDeleted {
		if err := handler(ctx, userId); err != nil {
			return fmt.Errorf("account deleted handler: %w", err)
		}
	}
	return nil
}
