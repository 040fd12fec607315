package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/buzkaaclicker/profiles/inmem"
	"github.com/buzkaaclicker/profiles/persistent"
	"github.com/stretchr/testify/assert"
)

// registerAndReopen issues a session for a fresh account, reopens the session
// db and reports whether the token survived.
func registerAndReopen(t *testing.T, cfg config) bool {
	ctx := context.Background()

	bdb, err := openSessionDb(cfg)
	if err != nil {
		t.Fatalf("open session db: %s", err)
	}
	stores := inmem.NewStores()
	sessionStore := &persistent.SessionStore{Buntdb: bdb, ActivityStore: stores.Activities}
	if err := sessionStore.CreateIndexes(); err != nil {
		t.Fatalf("create indexes: %s", err)
	}
	session, err := sessionStore.RegisterNew(ctx, 1, "127.0.0.1", "curl")
	if err != nil {
		t.Fatalf("register session: %s", err)
	}
	if err := bdb.Close(); err != nil {
		t.Fatalf("close session db: %s", err)
	}

	bdb, err = openSessionDb(cfg)
	if err != nil {
		t.Fatalf("reopen session db: %s", err)
	}
	defer bdb.Close()
	sessionStore = &persistent.SessionStore{Buntdb: bdb, ActivityStore: inmem.NewActivityStore()}
	exists, err := sessionStore.Exists(session.Token)
	if err != nil {
		t.Fatalf("exists: %s", err)
	}
	return exists
}

func TestSessionDbLifetime(t *testing.T) {
	assert := assert.New(t)

	memoryCfg := config{storage: storageMemory, sessionDb: filepath.Join(t.TempDir(), "kv.db")}
	assert.False(registerAndReopen(t, memoryCfg), "memory storage must not keep sessions across restarts")

	pgCfg := config{storage: storagePostgres, sessionDb: filepath.Join(t.TempDir(), "kv.db")}
	assert.True(registerAndReopen(t, pgCfg), "postgres storage keeps sessions on disk")
}
