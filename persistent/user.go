package persistent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/buzkaaclicker/profiles"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

const pgUniqueViolation = "23505"

type User struct {
	bun.BaseModel `bun:"table:user"`

	Id           int64             `bun:",pk,autoincrement"`
	CreatedAt    time.Time         `bun:",nullzero,notnull,default:current_timestamp"`
	Username     string            `bun:",notnull,unique,type:varchar(150)"`
	Email        string            `bun:",notnull"`
	PasswordHash []byte            `bun:",notnull"`
	RolesNames   []profiles.RoleId `bun:",notnull,array"`

	// Mapped (in AfterScanRow hook) roles from RolesNames.
	Roles profiles.Roles `bun:"-"`
}

func (u User) ToDomain() profiles.User {
	return profiles.User{
		Id:           profiles.UserId(u.Id),
		CreatedAt:    u.CreatedAt,
		Username:     u.Username,
		Email:        profiles.Email(u.Email),
		PasswordHash: u.PasswordHash,
		Roles:        u.Roles,
	}
}

var _ bun.AfterScanRowHook = (*User)(nil)

func (u *User) AfterScanRow(ctx context.Context) error {
	u.Roles = profiles.RolesByIds(u.RolesNames)
	return nil
}

// AccountCreatedHandler runs inside the registration transaction. Returning
// an error rolls the whole registration back.
type AccountCreatedHandler func(ctx context.Context, tx bun.Tx, event profiles.AccountCreated) error

type UserStore struct {
	DB *bun.DB

	// Subscribers notified of every registered account, in order.
	OnAccountCreated []AccountCreatedHandler
}

var _ profiles.UserStore = (*UserStore)(nil)

func (s *UserStore) Register(ctx context.Context, u profiles.NewUser) (profiles.User, error) {
	hash, err := profiles.HashPassword(u.Password)
	if err != nil {
		return profiles.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := &User{
		Username:     u.Username,
		Email:        string(u.Email),
		PasswordHash: hash,
		RolesNames:   []profiles.RoleId{},
		Roles:        profiles.Roles{},
	}

	err = s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(user).
			Returning("*").
			Exec(ctx)
		if err != nil {
			if isUniqueViolation(err) {
				return profiles.ErrUsernameTaken
			}
			return fmt.Errorf("insert user: %w", err)
		}

		event := profiles.AccountCreated{
			UserId:    profiles.UserId(user.Id),
			Username:  user.Username,
			CreatedAt: user.CreatedAt,
		}
		for _, handler := range s.OnAccountCreated {
			if err := handler(ctx, tx, event); err != nil {
				return fmt.Errorf("account created handler: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return profiles.User{}, err
	}
	return user.ToDomain(), nil
}

func (s *UserStore) ById(ctx context.Context, userId profiles.UserId) (profiles.User, error) {
	return s.selectOne(ctx, `"user"."id"=?`, int64(userId))
}

func (s *UserStore) ByUsername(ctx context.Context, username string) (profiles.User, error) {
	return s.selectOne(ctx, `"user"."username"=?`, username)
}

func (s *UserStore) selectOne(ctx context.Context, where string, arg interface{}) (profiles.User, error) {
	user := new(User)
	err := s.DB.NewSelect().
		Model(user).
		Where(where, arg).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profiles.User{}, profiles.ErrUserNotFound
		}
		return profiles.User{}, fmt.Errorf("select user: %w", err)
	}
	return user.ToDomain(), nil
}

func (s *UserStore) Delete(ctx context.Context, userId profiles.UserId) error {
	res, err := s.DB.NewDelete().
		Model((*User)(nil)).
		Where(`"user"."id"=?`, int64(userId)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return profiles.ErrUserNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == pgUniqueViolation
}
