package main

import (
	"context"
	"flag"
	"log/syslog"
	"os"
	"os/signal"
	"time"

	"github.com/buzkaaclicker/profiles"
	"github.com/buzkaaclicker/profiles/inmem"
	"github.com/buzkaaclicker/profiles/persistent"
	"github.com/buzkaaclicker/profiles/transport/rest"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/sirupsen/logrus"
	logrusys "github.com/sirupsen/logrus/hooks/syslog"
	"github.com/tidwall/buntdb"
	"github.com/uptrace/bun"
)

type stores struct {
	users      profiles.UserStore
	profiles   profiles.ProfileStore
	activities profiles.ActivityStore
}

func pgStores(db *bun.DB) stores {
	profileStore := &persistent.ProfileStore{DB: db}
	activityStore := &persistent.ActivityStore{DB: db}
	userStore := &persistent.UserStore{
		DB: db,
		OnAccountCreated: []persistent.AccountCreatedHandler{
			profileStore.Provision,
			activityStore.LogAccountCreated,
		},
	}
	return stores{users: userStore, profiles: profileStore, activities: activityStore}
}

func memoryStores() stores {
	s := inmem.NewStores()
	return stores{users: s.Users, profiles: s.Profiles, activities: s.Activities}
}

func listenAndServe(bdb *buntdb.DB, st stores, cfg config) func() error {
	sessionStore := &persistent.SessionStore{Buntdb: bdb, ActivityStore: st.activities}
	if err := sessionStore.CreateIndexes(); err != nil {
		logrus.WithError(err).Fatalln("Could not create session indexes.")
	}

	authController := rest.AuthController{SessionStore: sessionStore, UserStore: st.users}
	profileController := rest.ProfileController{
		Store:         st.profiles,
		ActivityStore: st.activities,
		Serializer:    rest.ProfileSerializer{MediaUrl: cfg.mediaUrl},
	}
	activityController := rest.ActivityController{Store: st.activities}

	server := fiber.New()
	server.Use(rest.LogHandler())

	api := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: rest.ErrorHandler,
	})
	api.Use(cors.New(cors.Config{AllowOrigins: cfg.allowOrigins}))

	requestAuthorizer := rest.RequestAuthorizer(sessionStore, st.users)
	api.Get("/status", monitor.New())
	authController.InstallTo(requestAuthorizer, api)
	profileController.InstallTo(requestAuthorizer, api)
	activityController.InstallTo(requestAuthorizer, api)
	api.Use(rest.NotFoundHandler)

	server.Mount("/api", api)
	server.Use(rest.NotFoundHandler)

	go func() {
		if err := server.Listen(cfg.listenAddr); err != nil {
			logrus.WithError(err).Fatalln("Fiber listen failed.")
		}
	}()

	return server.Shutdown
}

// openSessionDb opens the session kv store. With in-memory storage user ids
// restart from 1, so sessions must not outlive the process either.
func openSessionDb(cfg config) (*buntdb.DB, error) {
	if cfg.storage == storageMemory {
		return buntdb.Open(":memory:")
	}
	return buntdb.Open(cfg.sessionDb)
}

func setupLogger(cfg config) {
	logrus.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: time.Stamp,
		FullTimestamp:   true,
	})
	if cfg.debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if !cfg.syslog {
		return
	}

	syslogHook, err := logrusys.NewSyslogHook("", "", syslog.LOG_USER, "profiles_backend")
	if err != nil {
		logrus.WithError(err).Fatalln("Could not create syslog hook.")
		return
	}
	logrus.AddHook(syslogHook)
}

func awaitInterruption() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
}

func main() {
	flag.Parse()
	loadDotEnv()
	cfg := configFromEnv()
	setupLogger(cfg)
	logrus.Infoln("Starting backend.")

	bdb, err := openSessionDb(cfg)
	if err != nil {
		logrus.WithError(err).Fatalln("Could not open buntdb.")
	}
	defer bdb.Close()

	var st stores
	if cfg.storage == storageMemory {
		logrus.Warnln("Using in-memory storage, data is lost on shutdown.")
		st = memoryStores()
	} else {
		logrus.Infoln("Opening database.")
		ctx := context.Background()
		db := persistent.PgOpen(ctx, cfg.pgDsn)
		defer db.Close()
		if err := persistent.CreateSchema(ctx, db); err != nil {
			logrus.WithError(err).Fatalln("Could not create database schema.")
		}
		st = pgStores(db)
	}

	logrus.WithField("addr", cfg.listenAddr).Infoln("Starting listening... To shut down use ^C")
	shutdown := listenAndServe(bdb, st, cfg)

	awaitInterruption()

	logrus.Infoln("Shutting down...")
	err = shutdown()
	if err != nil {
		logrus.WithError(err).Warningln("Fiber shutdown failed.")
	}
}
