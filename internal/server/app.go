// Package server initializes and runs the filedepot server. It wires the
// database, the session cache, and the blob store into the services and
// starts the HTTP endpoint, handling graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akozinov/filedepot/internal/logging"
	"github.com/akozinov/filedepot/internal/server/blob"
	"github.com/akozinov/filedepot/internal/server/config"
	"github.com/akozinov/filedepot/internal/server/httpapi"
	"github.com/akozinov/filedepot/internal/server/repositories/repomanager"
	"github.com/akozinov/filedepot/internal/server/services"
	"github.com/akozinov/filedepot/internal/server/sessions"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	cache  *redis.Client
	http   *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	cache := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	sessionCache := sessions.NewRedisCache(cache)

	blobs, err := blob.NewLocalStore(cfg.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	us := services.NewUserService(db, rm, sessionCache, cfg.SessionTTL)
	fs := services.NewFileService(db, rm, sessionCache, blobs, logger)
	as := services.NewAppService(db, rm, sessionCache)

	srv := httpapi.NewServer(cfg.EndpointAddrHTTP, logger, us, fs, as)

	return &App{config: cfg, logger: logger, db: db, cache: cache, http: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.http.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	app.Close(ctx)
}

// Close releases the database and cache connections.
func (app *App) Close(ctx context.Context) {
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
	if err := app.cache.Close(); err != nil {
		app.logger.Error(ctx, "cache close error", "error", err.Error())
	}
}
