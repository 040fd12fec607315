package persistent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/buzkaaclicker/profiles"
	"github.com/uptrace/bun"
)

type Profile struct {
	bun.BaseModel `bun:"table:profile"`

	Id        int64     `bun:",pk,autoincrement"`
	UserId    int64     `bun:",unique,notnull"`
	User      *User     `bun:"rel:belongs-to,join:user_id=id"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	Name      string    `bun:",notnull,type:varchar(255)"`
	Content   string    `bun:",notnull,type:text"`
	Image     string    `bun:",notnull,type:varchar(100)"`
}

var _ bun.BeforeAppendModelHook = (*Profile)(nil)

// BeforeAppendModel keeps created_at fixed after insert and refreshes updated_at on every update.
// Timestamps are cut to the microsecond precision postgres stores.
func (p *Profile) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		if p.CreatedAt.IsZero() {
			p.CreatedAt = pgNow()
		}
		p.UpdatedAt = p.CreatedAt
	case *bun.UpdateQuery:
		p.UpdatedAt = pgNow()
	}
	return nil
}

func pgNow() time.Time {
	return time.Now().Truncate(time.Microsecond)
}

func (p Profile) ToDomain() profiles.Profile {
	var owner profiles.User
	if p.User != nil {
		owner = p.User.ToDomain()
	} else {
		owner = profiles.User{Id: profiles.UserId(p.UserId)}
	}
	return profiles.Profile{
		Id:        profiles.ProfileId(p.Id),
		Owner:     owner,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Name:      p.Name,
		Content:   p.Content,
		Image:     p.Image,
	}
}

type ProfileStore struct {
	DB *bun.DB
}

var _ profiles.ProfileStore = (*ProfileStore)(nil)

// Provision creates the profile of a freshly registered account. Subscribe it
// to UserStore.OnAccountCreated.
func (s *ProfileStore) Provision(ctx context.Context, tx bun.Tx, event profiles.AccountCreated) error {
	_, err := tx.NewInsert().
		Model(&Profile{
			UserId: int64(event.UserId),
			Image:  profiles.DefaultProfileImage,
		}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (s *ProfileStore) All(ctx context.Context) ([]profiles.Profile, error) {
	var rows []Profile
	err := s.DB.NewSelect().
		Model(&rows).
		Relation("User").
		Order("profile.created_at DESC", "profile.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select profiles: %w", err)
	}

	mapped := make([]profiles.Profile, len(rows))
	for i, p := range rows {
		mapped[i] = p.ToDomain()
	}
	return mapped, nil
}

func (s *ProfileStore) ById(ctx context.Context, id profiles.ProfileId) (profiles.Profile, error) {
	profile, err := selectProfile(ctx, s.DB.NewSelect(), id)
	if err != nil {
		return profiles.Profile{}, err
	}
	return profile.ToDomain(), nil
}

func (s *ProfileStore) Update(ctx context.Context, id profiles.ProfileId,
	update profiles.ProfileUpdate) (profiles.Profile, error) {
	var updated profiles.Profile
	err := s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		profile, err := selectProfile(ctx, tx.NewSelect().For("UPDATE OF profile"), id)
		if err != nil {
			return err
		}

		domain := profile.ToDomain()
		update.ApplyTo(&domain)
		profile.Name = domain.Name
		profile.Content = domain.Content
		profile.Image = domain.Image

		_, err = tx.NewUpdate().
			Model(profile).
			Column("name", "content", "image", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		updated = profile.ToDomain()
		return nil
	})
	if err != nil {
		return profiles.Profile{}, err
	}
	return updated, nil
}

func selectProfile(ctx context.Context, q *bun.SelectQuery, id profiles.ProfileId) (*Profile, error) {
	profile := new(Profile)
	err := q.
		Model(profile).
		Relation("User").
		Where("profile.id=?", int64(id)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, profiles.ErrProfileNotFound
		}
		return nil, fmt.Errorf("select profile: %w", err)
	}
	return profile, nil
}
