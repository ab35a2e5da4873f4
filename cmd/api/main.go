package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mdb "pet-adoption/internal/adapters/storage/mongodb"
	pg "pet-adoption/internal/adapters/storage/postgres"
	rds "pet-adoption/internal/adapters/storage/redis"
	"pet-adoption/internal/platform/config"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/session"
	"pet-adoption/internal/router"
)

// @title			pet-adoption API
// @version		1.0
// @description	Pets for adoption, posts, comments and likes.
// @BasePath		/
func main() {
	cfg := config.Load()
	log := logger.NewFromEnv()
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{
		SessionSecret:      []byte(cfg.SessionSecret),
		SessionTTL:         cfg.SessionTTL,
		UploadDir:          cfg.UploadDir,
		LoginRatePerMinute: cfg.LoginRatePerMinute,
		Logger:             log,
	}

	if cfg.MongoURI != "" {
		client, err := mdb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			log.Error("mongo unavailable", map[string]any{"error": err})
			os.Exit(1)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		db := client.Database(cfg.MongoDatabase)
		if err := mdb.EnsureIndexes(ctx, db); err != nil {
			log.Error("mongo indexes", map[string]any{"error": err})
			os.Exit(1)
		}
		opts.Mongo = db
		log.Info("using mongo storage", map[string]any{"database": cfg.MongoDatabase})
	} else {
		log.Warn("MONGO_URI not set; using in-memory storage", nil)
	}

	sessions, closeSessions, err := openSessions(ctx, cfg, log)
	if err != nil {
		log.Error("session store unavailable", map[string]any{"error": err})
		os.Exit(1)
	}
	defer closeSessions()
	opts.Sessions = sessions

	h, err := router.NewRouter(opts)
	if err != nil {
		log.Error("router setup failed", map[string]any{"error": err})
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": cfg.Addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err})
		os.Exit(1)
	}
	log.Info("server stopped", nil)
}

// openSessions elige el backend: REDIS_URL, después SESSION_DSN (Postgres), si no in-memory (nil).
func openSessions(ctx context.Context, cfg config.Config, log logger.Logger) (session.Store, func(), error) {
	switch {
	case cfg.RedisURL != "":
		store, err := rds.NewSessionStore(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using redis sessions", nil)
		return store, func() { _ = store.Close() }, nil

	case cfg.SessionDSN != "":
		db, err := pg.Open(ctx, cfg.SessionDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		repo := pg.NewSessionsRepo(db)
		go purgeSessions(ctx, repo, log)
		log.Info("using postgres sessions", nil)
		return repo, func() { _ = db.Close() }, nil

	default:
		return nil, func() {}, nil
	}
}

// Redis vence las keys solo; Postgres necesita barrer las filas viejas.
func purgeSessions(ctx context.Context, repo *pg.SessionsRepo, log logger.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.PurgeExpired(ctx)
			if err != nil {
				log.Warn("purge expired sessions", map[string]any{"error": err})
				continue
			}
			log.Debug("purged expired sessions", map[string]any{"count": n})
		}
	}
}
