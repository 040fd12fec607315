package profiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileUpdateApply(t *testing.T) {
	assert := assert.New(t)

	name := "Joan"
	empty := ""
	profile := Profile{Id: 1, Name: "old", Content: "bio", Image: DefaultProfileImage}

	ProfileUpdate{Name: &name, Content: &empty}.ApplyTo(&profile)
	assert.Equal("Joan", profile.Name)
	assert.Equal("", profile.Content)
	assert.Equal(DefaultProfileImage, profile.Image, "nil field must keep stored value")

	before := profile
	ProfileUpdate{}.ApplyTo(&profile)
	assert.Equal(before, profile)
}

func TestValidationErrors(t *testing.T) {
	assert := assert.New(t)

	errs := ValidationErrors{}
	assert.NoError(errs.OrNil())

	errs.Add("name", "too long")
	errs.Add("image", "blank")
	errs.Add("name", "not a string")
	assert.True(errs.Has("name"))
	assert.False(errs.Has("content"))
	assert.Equal([]string{"too long", "not a string"}, errs["name"])
	assert.EqualError(errs.OrNil(), "invalid fields: image (blank) name (too long; not a string)")
}
