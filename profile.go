package profiles

import (
	"context"
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")

const (
	NameMaxLength  = 255
	ImageMaxLength = 100

	// Shared placeholder asset assigned to every freshly provisioned profile.
	DefaultProfileImage = "../default_profile_pic_ciw1he.jpg"
)

type ProfileId int64

type Profile struct {
	Id        ProfileId
	Owner     User
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Content   string
	// Path of the image asset relative to the media root, or an absolute url.
	Image string
}

// ProfileUpdate carries the writable profile fields. Nil fields keep their stored value.
type ProfileUpdate struct {
	Name    *string
	Content *string
	Image   *string
}

func (u ProfileUpdate) ApplyTo(p *Profile) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
}

type ProfileStore interface {
	// All profiles, newest first.
	All(ctx context.Context) ([]Profile, error)

	ById(ctx context.Context, id ProfileId) (Profile, error)

	// Update stores the writable fields and refreshes UpdatedAt.
	Update(ctx context.Context, id ProfileId, update ProfileUpdate) (Profile, error)
}
