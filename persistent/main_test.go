package persistent

import (
	"context"
	"testing"

	"github.com/uptrace/bun"
)

// openTestDb returns a connection to the shared test database with every table emptied.
func openTestDb(t *testing.T, ctx context.Context) *bun.DB {
	if TestEnvDsn() == "" {
		t.Skip("PGDB_DSN not set, run through testenv")
	}
	db := PgOpenTest(ctx)
	if err := CreateSchema(ctx, db); err != nil {
		t.Fatalf("create schema: %s", err)
	}
	_, err := db.NewTruncateTable().
		Table("profile", "activity_log", "user").
		Cascade().
		Exec(ctx)
	if err != nil {
		t.Fatalf("truncate tables: %s", err)
	}
	return db
}

func newTestUserStore(db *bun.DB) (*UserStore, *ProfileStore, *ActivityStore) {
	profileStore := &ProfileStore{DB: db}
	activityStore := &ActivityStore{DB: db}
	userStore := &UserStore{
		DB:               db,
		OnAccountCreated: []AccountCreatedHandler{profileStore.Provision, activityStore.LogAccountCreated},
	}
	return userStore, profileStore, activityStore
}
