// Package server assembles the API binary: storage, migrations, cache,
// sessions, mail, services and the HTTP server itself.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/awladnasem/alefbata/internal/cache"
	"github.com/awladnasem/alefbata/internal/config"
	"github.com/awladnasem/alefbata/internal/lib/sl"
	"github.com/awladnasem/alefbata/internal/lib/smtp"
	"github.com/awladnasem/alefbata/internal/migrations"
	authservice "github.com/awladnasem/alefbata/internal/services/auth"
	catalogservice "github.com/awladnasem/alefbata/internal/services/catalog"
	"github.com/awladnasem/alefbata/internal/services/mailer"
	progressservice "github.com/awladnasem/alefbata/internal/services/progress"
	subscriptionservice "github.com/awladnasem/alefbata/internal/services/subscription"
	"github.com/awladnasem/alefbata/internal/session"
	"github.com/awladnasem/alefbata/internal/storage"
	"github.com/awladnasem/alefbata/internal/storage/memory"
	"github.com/awladnasem/alefbata/internal/storage/postgres"
)

// App is the assembled API server and the resources it owns.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *postgres.Storage
	cache    *cache.Cache
	sessions *session.Manager
}

// New builds the application. Without a storage connection string it runs
// entirely in memory, which is how local development works; Redis is
// likewise optional.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	var store storage.Storage
	var db *postgres.Storage
	var sessionStore session.Store

	if cfg.StorageConnectionString == "" {
		logger.Info("no storage connection string, using in-memory storage")
		store = memory.New()
		sessionStore = session.NewMemStore(cfg.Session.SweepInterval)
	} else {
		pg, err := postgres.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		if err = migrations.Run(pg.DB, "./migrations"); err != nil {
			return nil, err
		}
		pgSessions, err := session.NewPGStore(pg.DB)
		if err != nil {
			return nil, err
		}
		store, db, sessionStore = pg, pg, pgSessions
	}

	if err := store.Seed(ctx); err != nil {
		return nil, err
	}

	var catalogCache catalogservice.Cache
	var redisCache *cache.Cache
	if cfg.RedisConnection.AddressRedis != "" {
		var err error
		redisCache, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		catalogCache = redisCache
	} else {
		logger.Info("no redis address, catalog cache disabled")
	}

	sessions := session.NewManager(
		session.NewCodec(cfg.Session.Secret, cfg.Session.TTL, cfg.Env == "prod"),
		sessionStore,
	)

	transport := smtp.NewTransport(cfg.SMTP, logger)
	mailService := mailer.New(transport, cfg.BaseURL, logger)

	authService := authservice.New(store, mailService, logger)
	catalogService := catalogservice.New(store, catalogCache, logger)
	subscriptionService := subscriptionservice.New(store, logger)
	progressService := progressservice.New(store, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, sessions, store,
		authService, catalogService, subscriptionService, progressService)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		cache:    redisCache,
		sessions: sessions,
	}, nil
}

// Run serves until ctx is done, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if err := a.sessions.Close(); err != nil {
		a.logger.Error("failed to close session store", sl.Err(err))
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close cache", sl.Err(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("failed to close storage", sl.Err(err))
		}
	}
}
