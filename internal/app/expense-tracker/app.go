// Package expensetracker собирает приложение: хранилище, кеш, сервисы,
// маршруты и HTTP-сервер с graceful shutdown.
package expensetracker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/webtechhobbyist/expense-tracker/internal/cache"
	"github.com/webtechhobbyist/expense-tracker/internal/config"
	libsession "github.com/webtechhobbyist/expense-tracker/internal/lib/session"
	"github.com/webtechhobbyist/expense-tracker/internal/migrations"
	authservice "github.com/webtechhobbyist/expense-tracker/internal/services/auth"
	expenseservice "github.com/webtechhobbyist/expense-tracker/internal/services/expense"
	"github.com/webtechhobbyist/expense-tracker/internal/storage/repository"
)

// App — собранное приложение.
type App struct {
	server          *http.Server
	logger          *slog.Logger
	db              *repository.Storage
	cache           *cache.Cache
	auth            *authservice.AuthService
	cleanupInterval time.Duration
}

// New создает приложение: подключается к базе и Redis, прогоняет миграции
// и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	cookieOpts := libsession.CookieOptions{
		Secure:   cfg.CookieSecure,
		SameSite: cfg.Session.SameSiteMode(),
		Domain:   cfg.CookieDomain,
	}

	auth := authservice.NewAuthService(db, db, cfg.Session.TTL, logger)
	expenses := expenseservice.NewExpenseService(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, auth, expenses, cookieOpts, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:          srv,
		logger:          logger,
		db:              db,
		cache:           cacheRedis,
		auth:            auth,
		cleanupInterval: cfg.Session.CleanupInterval,
	}, nil
}

// Run запускает HTTP-сервер и фоновую чистку истёкших сессий,
// завершает их по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	go a.auth.RunSessionCleanup(ctx, a.cleanupInterval)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
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
		_ = a.db.DB.Close()
		return err
	}
}
