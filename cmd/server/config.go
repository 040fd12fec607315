package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	storagePostgres = "postgres"
	storageMemory   = "memory"
)

type config struct {
	debug        bool
	syslog       bool
	listenAddr   string
	storage      string
	pgDsn        string
	sessionDb    string
	mediaUrl     string
	allowOrigins string
}

// loadDotEnv fills unset variables from .env when the file exists.
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.WithError(err).Fatalln("Could not load .env file.")
	}
}

func configFromEnv() config {
	getEnv := func(key string, fallback string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		return fallback
	}

	cfg := config{
		debug:        os.Getenv("DEBUG") == "true",
		syslog:       os.Getenv("SYSLOG") == "true",
		storage:      getEnv("STORAGE", storagePostgres),
		pgDsn:        os.Getenv("POSTGRES_DSN"),
		sessionDb:    getEnv("SESSION_DB", "kv.db"),
		mediaUrl:     getEnv("MEDIA_URL", "/media/"),
		allowOrigins: getEnv("ALLOW_ORIGINS", "*"),
	}
	if cfg.debug {
		cfg.listenAddr = getEnv("LISTEN_ADDR", "127.0.0.1:2137")
	} else {
		cfg.listenAddr = getEnv("LISTEN_ADDR", ":2137")
	}

	switch cfg.storage {
	case storagePostgres:
		if cfg.pgDsn == "" {
			logrus.Fatalln("Environment variable POSTGRES_DSN is not set!")
		}
	case storageMemory:
	default:
		logrus.WithField("storage", cfg.storage).Fatalln("Unknown STORAGE (postgres or memory).")
	}
	return cfg
}
