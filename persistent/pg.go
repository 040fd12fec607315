package persistent

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	_ "github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

func PgOpen(ctx context.Context, pgDsn string) *bun.DB {
	sqldb, err := sql.Open("pg", pgDsn)
	if err != nil {
		logrus.WithError(err).Fatalln("Could not open pg database.")
	}
	err = sqldb.PingContext(ctx)
	if err != nil {
		logrus.WithError(err).Fatalln("Could not ping pg database.")
	}

	db := bun.NewDB(sqldb, pgdialect.New())
	if os.Getenv("DB_VERBOSE") == "true" {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db
}

// Integration tests share one postgres instance started by testenv, which
// passes its dsn through the environment.

func PgOpenTest(ctx context.Context) *bun.DB {
	return PgOpen(ctx, TestEnvDsn())
}

func TestEnvDsn() string {
	return os.Getenv("PGDB_DSN")
}

func SetTestEnvDsn(dsn string) {
	os.Setenv("PGDB_DSN", dsn)
}

// CreateSchema creates missing tables. Existing tables are left untouched.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateTable().
		IfNotExists().
		Model((*User)(nil)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create user table: %w", err)
	}

	_, err = db.NewCreateTable().
		IfNotExists().
		Model((*Profile)(nil)).
		ForeignKey(`("user_id") REFERENCES "user" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create profile table: %w", err)
	}
	_, err = db.NewCreateIndex().
		IfNotExists().
		Model((*Profile)(nil)).
		Index("profile_created_at_idx").
		Column("created_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create profile index: %w", err)
	}

	_, err = db.NewCreateTable().
		IfNotExists().
		Model((*ActivityLog)(nil)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create activity_log table: %w", err)
	}
	return nil
}
