package inmem

import (
	"context"
	"testing"

	"github.com/buzkaaclicker/profiles"
	"github.com/stretchr/testify/assert"
)

func TestActivityStore(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	uid := profiles.UserId(5)

	s := NewActivityStore()
	{
		logs, err := s.ByUserId(ctx, uid)
		if assert.NoError(err) {
			assert.Equal(0, len(logs))
		}
	}

	assert.NoError(s.AddLog(ctx, uid, profiles.Activity{Name: "gdzie_ta_muza", Data: map[string]interface{}{"service": "sc"}}))
	assert.NoError(s.AddLog(ctx, uid, profiles.Activity{Name: "logged_out"}))

	logs, err := s.ByUserId(ctx, uid)
	if !assert.NoError(err) || !assert.Equal(2, len(logs)) {
		return
	}
	assert.Equal("logged_out", logs[0].Name)
	assert.Equal("gdzie_ta_muza", logs[1].Name)
	assert.Equal(map[string]interface{}{"service": "sc"}, logs[1].Data)

	// unknown user id
	logs, err = s.ByUserId(ctx, profiles.UserId(34290))
	if assert.NoError(err) {
		assert.Equal(0, len(logs))
	}
}
