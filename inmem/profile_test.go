package inmem

import (
	"context"
	"testing"
	"time"

	"github.com/buzkaaclicker/profiles"
	"github.com/stretchr/testify/assert"
)

func TestProfileStore(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	now := time.Date(2022, 1, 1, 15, 0, 0, 0, time.UTC)
	store := NewProfileStore()
	store.Clock = func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	assert.NoError(store.Provision(ctx, profiles.AccountCreated{UserId: 1, Username: "a"}))
	assert.NoError(store.Provision(ctx, profiles.AccountCreated{UserId: 2, Username: "b"}))
	assert.Error(store.Provision(ctx, profiles.AccountCreated{UserId: 2, Username: "b"}),
		"second profile for one account")

	all, err := store.All(ctx)
	if !assert.NoError(err) || !assert.Len(all, 2) {
		return
	}
	assert.Equal("b", all[0].Owner.Username)
	assert.Equal("a", all[1].Owner.Username)

	_, err = store.ById(ctx, 99)
	assert.ErrorIs(err, profiles.ErrProfileNotFound)

	before, err := store.ById(ctx, all[1].Id)
	if !assert.NoError(err) {
		return
	}
	content := "hello"
	updated, err := store.Update(ctx, before.Id, profiles.ProfileUpdate{Content: &content})
	if !assert.NoError(err) {
		return
	}
	assert.Equal("hello", updated.Content)
	assert.Equal(before.CreatedAt, updated.CreatedAt)
	assert.True(updated.UpdatedAt.After(before.UpdatedAt))
	assert.Equal(before.Owner, updated.Owner)

	_, err = store.Update(ctx, 99, profiles.ProfileUpdate{Content: &content})
	assert.ErrorIs(err, profiles.ErrProfileNotFound)

	assert.NoError(store.DeleteByOwner(ctx, 1))
	_, err = store.ById(ctx, before.Id)
	assert.ErrorIs(err, profiles.ErrProfileNotFound)
}
