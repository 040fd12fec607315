package mock

import (
	"context"

	"github.com/buzkaaclicker/profiles"
)

type SessionStore struct {
	RegisterNewFn func(ctx context.Context, userId profiles.UserId, ip string, userAgent string) (profiles.Session, error)

	ExistsFn func(token string) (bool, error)

	AcquireAndRefreshFn func(ctx context.Context, token string, ip string, userAgent string) (profiles.Session, error)

	InvalidateByAuthTokenFn func(authToken string) error

	InvalidateByUserIdFn func(userId profiles.UserId) error
}

func (s SessionStore) RegisterNew(ctx context.Context, userId profiles.UserId,
	ip string, userAgent string) (profiles.Session, error) {
	return s.RegisterNewFn(ctx, userId, ip, userAgent)
}

func (s SessionStore) Exists(token string) (bool, error) {
	return s.ExistsFn(token)
}

func (s SessionStore) AcquireAndRefresh(ctx context.Context, token string,
	ip string, userAgent string) (profiles.Session, error) {
	return s.AcquireAndRefreshFn(ctx, token, ip, userAgent)
}

func (s SessionStore) InvalidateByAuthToken(authToken string) error {
	return s.InvalidateByAuthTokenFn(authToken)
}

func (s SessionStore) InvalidateByUserId(userId profiles.UserId) error {
	return s.InvalidateByUserIdFn(userId)
}

// StaticSessions authorizes every token present in the map as the mapped user.
func StaticSessions(tokens map[string]profiles.UserId) SessionStore {
	return SessionStore{
		AcquireAndRefreshFn: func(ctx context.Context, token string, ip string, userAgent string) (profiles.Session, error) {
			userId, ok := tokens[token]
			if !ok {
				return profiles.Session{}, profiles.ErrSessionNotFound
			}
			return profiles.Session{Token: token, UserId: userId, Ip: ip, UserAgent: userAgent}, nil
		},
	}
}
