package persistent

import (
	"context"
	"testing"

	"github.com/buzkaaclicker/profiles"
	"github.com/stretchr/testify/assert"
)

func TestActivityStore(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
		return
	}
	assert := assert.New(t)
	ctx := context.Background()
	db := openTestDb(t, ctx)
	defer db.Close()

	store := &ActivityStore{DB: db}

	const uid = 1

	assert.NoError(store.AddLog(ctx, uid, profiles.Activity{Name: "logged in"}))
	assert.NoError(store.AddLog(ctx, uid, profiles.Activity{Name: "logged out",
		Data: map[string]interface{}{"jestem03": "albo96"}}))

	logs, err := store.ByUserId(ctx, uid)
	if !assert.NoError(err) || !assert.Len(logs, 2) {
		return
	}
	assert.Equal("logged out", logs[0].Name)
	assert.Equal(map[string]interface{}{"jestem03": "albo96"}, logs[0].Data)
	assert.Equal("logged in", logs[1].Name)

	logs, err = store.ByUserId(ctx, uid+1)
	if assert.NoError(err) {
		assert.Empty(logs)
	}
}
