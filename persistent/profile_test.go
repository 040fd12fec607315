package persistent

import (
	"context"
	"testing"
	"time"

	"github.com/buzkaaclicker/profiles"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
)

func TestProfileTimestampPrecision(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	p := &Profile{}
	assert.NoError(p.BeforeAppendModel(ctx, (*bun.InsertQuery)(nil)))
	assert.Zero(p.CreatedAt.Nanosecond() % int(time.Microsecond))
	assert.Equal(p.CreatedAt, p.UpdatedAt)

	assert.NoError(p.BeforeAppendModel(ctx, (*bun.UpdateQuery)(nil)))
	assert.Zero(p.UpdatedAt.Nanosecond() % int(time.Microsecond))
}

func TestProfileStore(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
		return
	}
	assert := assert.New(t)
	ctx := context.Background()
	db := openTestDb(t, ctx)
	defer db.Close()

	userStore, profileStore, _ := newTestUserStore(db)

	first, err := userStore.Register(ctx, profiles.NewUser{Username: "first", Password: "password1"})
	if !assert.NoError(err) {
		return
	}
	time.Sleep(5 * time.Millisecond)
	second, err := userStore.Register(ctx, profiles.NewUser{Username: "second", Password: "password2"})
	if !assert.NoError(err) {
		return
	}

	all, err := profileStore.All(ctx)
	if !assert.NoError(err) || !assert.Len(all, 2) {
		return
	}
	assert.Equal(second.Id, all[0].Owner.Id, "newest profile first")
	assert.Equal(first.Id, all[1].Owner.Id)

	t.Run("lookup", func(t *testing.T) {
		profile, err := profileStore.ById(ctx, all[1].Id)
		if !assert.NoError(err) {
			return
		}
		assert.Equal(all[1].Id, profile.Id)
		assert.Equal("first", profile.Owner.Username)

		_, err = profileStore.ById(ctx, all[0].Id+1000)
		assert.ErrorIs(err, profiles.ErrProfileNotFound)
	})

	t.Run("update", func(t *testing.T) {
		before, err := profileStore.ById(ctx, all[0].Id)
		if !assert.NoError(err) {
			return
		}
		time.Sleep(5 * time.Millisecond)

		name := "Second Person"
		image := "images/second.png"
		updated, err := profileStore.Update(ctx, before.Id, profiles.ProfileUpdate{Name: &name, Image: &image})
		if !assert.NoError(err) {
			return
		}
		assert.Equal(name, updated.Name)
		assert.Equal(before.Content, updated.Content)
		assert.Equal(image, updated.Image)
		assert.Equal(before.Owner.Id, updated.Owner.Id)
		assert.True(before.CreatedAt.Equal(updated.CreatedAt))
		assert.True(updated.UpdatedAt.After(before.UpdatedAt))

		stored, err := profileStore.ById(ctx, before.Id)
		if assert.NoError(err) {
			assert.Equal(name, stored.Name)
			assert.True(stored.CreatedAt.Equal(before.CreatedAt))
			assert.True(stored.UpdatedAt.Equal(updated.UpdatedAt), "returned and stored updated_at must match")
		}

		_, err = profileStore.Update(ctx, before.Id+1000, profiles.ProfileUpdate{Name: &name})
		assert.ErrorIs(err, profiles.ErrProfileNotFound)
	})
}
