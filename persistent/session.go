package persistent

import (
	"context"
	crand "crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/buzkaaclicker/profiles"
	"github.com/google/uuid"
	"github.com/tidwall/buntdb"
)

const sessionTTL = 30 * 24 * time.Hour // 30 days

const sessionsIndex = "sessions"

type Session struct {
	Id             string    `json:"id"`
	UserId         int64     `json:"userId"`
	Token          string    `json:"token"`
	Ip             string    `json:"ip"`
	UserAgent      string    `json:"userAgent"`
	LastAccessedAt time.Time `json:"lastAccessedAt"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

func (s Session) ToDomain() profiles.Session {
	return profiles.Session{
		Id:             s.Id,
		UserId:         profiles.UserId(s.UserId),
		Token:          s.Token,
		Ip:             s.Ip,
		UserAgent:      s.UserAgent,
		LastAccessedAt: s.LastAccessedAt,
		ExpiresAt:      s.ExpiresAt,
	}
}

type SessionStore struct {
	Buntdb        *buntdb.DB
	ActivityStore profiles.ActivityStore
}

var _ profiles.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) CreateIndexes() error {
	err := s.Buntdb.CreateIndex(sessionsIndex, "session:*", buntdb.IndexString)
	if err != nil && !errors.Is(err, buntdb.ErrIndexExists) {
		return fmt.Errorf("create sessions index: %w", err)
	}
	return nil
}

func (s *SessionStore) RegisterNew(ctx context.Context, userId profiles.UserId,
	ip string, userAgent string) (profiles.Session, error) {
	token, err := generateSessionToken()
	if err != nil {
		return profiles.Session{}, fmt.Errorf("generate token: %w", err)
	}
	id := uuid.New().String()

	err = s.ActivityStore.AddLog(ctx, userId, profiles.Activity{
		Name: profiles.ActivitySessionCreated,
		Data: map[string]interface{}{
			"ip":         ip,
			"userAgent":  userAgent,
			"session_id": id,
		},
	})
	if err != nil {
		return profiles.Session{}, fmt.Errorf("add session_created activity log: %w", err)
	}

	now := time.Now().UTC()
	session := Session{
		Id:             id,
		UserId:         int64(userId),
		Token:          token,
		Ip:             ip,
		UserAgent:      userAgent,
		LastAccessedAt: now,
		ExpiresAt:      now.Add(sessionTTL),
	}
	if err := s.store(session); err != nil {
		return profiles.Session{}, err
	}
	return session.ToDomain(), nil
}

func (s *SessionStore) store(session Session) error {
	serialized, err := json.Marshal(&session)
	if err != nil {
		return fmt.Errorf("session serialize: %w", err)
	}
	err = s.Buntdb.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set("session:"+session.Token, string(serialized),
			&buntdb.SetOptions{Expires: true, TTL: sessionTTL})
		return err
	})
	if err != nil {
		return fmt.Errorf("bunt update: %w", err)
	}
	return nil
}

func (s *SessionStore) Exists(token string) (bool, error) {
	err := s.Buntdb.View(func(tx *buntdb.Tx) error {
		_, err := tx.Get("session:" + token)
		return err
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, buntdb.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("bunt view: %w", err)
	}
}

func (s *SessionStore) AcquireAndRefresh(ctx context.Context, token string,
	ip string, userAgent string) (profiles.Session, error) {
	var session Session
	err := s.Buntdb.View(func(tx *buntdb.Tx) error {
		serialized, err := tx.Get("session:" + token)
		if err != nil {
			return fmt.Errorf("get serialized session: %w", err)
		}
		if err := json.Unmarshal([]byte(serialized), &session); err != nil {
			return fmt.Errorf("deserialize session: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, buntdb.ErrNotFound) {
			return profiles.Session{}, profiles.ErrSessionNotFound
		}
		return profiles.Session{}, fmt.Errorf("buntdb view: %w", err)
	}

	now := time.Now().UTC()
	session.Ip = ip
	session.UserAgent = userAgent
	session.LastAccessedAt = now
	session.ExpiresAt = now.Add(sessionTTL)
	if err := s.store(session); err != nil {
		return profiles.Session{}, err
	}
	return session.ToDomain(), nil
}

func (s *SessionStore) InvalidateByAuthToken(authToken string) error {
	err := s.Buntdb.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete("session:" + authToken)
		return err
	})
	if err != nil {
		if errors.Is(err, buntdb.ErrNotFound) {
			return profiles.ErrSessionNotFound
		}
		return fmt.Errorf("bunt update: %w", err)
	}
	return nil
}

func (s *SessionStore) InvalidateByUserId(userId profiles.UserId) error {
	err := s.Buntdb.Update(func(tx *buntdb.Tx) error {
		var keys []string
		var decodeErr error
		err := tx.Ascend(sessionsIndex, func(key, value string) bool {
			var session Session
			if err := json.Unmarshal([]byte(value), &session); err != nil {
				decodeErr = fmt.Errorf("deserialize session: %w", err)
				return false
			}
			if session.UserId == int64(userId) {
				keys = append(keys, key)
			}
			return true
		})
		if err != nil {
			return fmt.Errorf("ascend sessions: %w", err)
		}
		if decodeErr != nil {
			return decodeErr
		}
		for _, key := range keys {
			if _, err := tx.Delete(key); err != nil {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("bunt update: %w", err)
	}
	return nil
}

func generateSessionToken() (string, error) {
	const tokenBytes = 60
	rawToken := make([]byte, tokenBytes)
	// crypto/rand - getentropy(2)
	if _, err := crand.Read(rawToken); err != nil {
		return "", fmt.Errorf("rand read: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(rawToken), nil
}
