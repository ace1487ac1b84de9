package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/screener"
	"github.com/aretw0/screener/internal/adapters/file"
	"github.com/aretw0/screener/internal/config"
	"github.com/aretw0/screener/internal/logging"
	"github.com/aretw0/screener/pkg/adapters/memory"
	"github.com/aretw0/screener/pkg/adapters/postgres"
	"github.com/aretw0/screener/pkg/adapters/redis"
	"github.com/aretw0/screener/pkg/persistence/middleware"
	"github.com/aretw0/screener/pkg/ports"
	"github.com/aretw0/screener/pkg/records"
)

// App holds what every command needs: configuration, logging and records.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Reporter *logging.Reporter
	Store    ports.RecordStore
	Records  *records.Service

	closers []io.Closer
}

// Open builds the logger, error reporter and record store described by cfg.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, logCloser, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logger: logger, closers: []io.Closer{logCloser}}

	app.Reporter, err = logging.NewReporter(cfg.Sentry.DSN, cfg.Sentry.Environment, screener.Version)
	if err != nil {
		logger.Warn("error reporting disabled", "error", err)
		app.Reporter = &logging.Reporter{}
	}

	store, closer, err := OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		app.Reporter.Capture(ctx, err, map[string]string{"component": "store", "driver": cfg.Store.Driver})
		_ = app.Close()
		return nil, err
	}
	app.Store = store
	app.closers = append(app.closers, closer)
	app.Records = records.NewService(store, records.WithLogger(logger))

	logger.Debug("records store ready", "driver", cfg.Store.Driver)
	return app, nil
}

// Close releases the store and log file, in reverse order of opening.
func (a *App) Close() error {
	a.Reporter.Flush()
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	return errors.Join(errs...)
}

// OpenStore connects the RecordStore selected by cfg.Driver, sealing
// candidate fields when an encryption key is configured.
func OpenStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (ports.RecordStore, io.Closer, error) {
	var mws []middleware.Middleware
	if cfg.Encryption.Key != "" {
		mw, err := encryption(cfg.Encryption)
		if err != nil {
			return nil, nil, err
		}
		mws = append(mws, mw)
	}

	store, closer, err := openDriver(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return middleware.Chain(store, mws...), closer, nil
}

func encryption(cfg config.EncryptionConfig) (middleware.Middleware, error) {
	active, err := middleware.ParseKey(cfg.Key)
	if err != nil {
		return nil, fmt.Errorf("store.encryption.key: %w", err)
	}
	ec := middleware.EncryptionConfig{ActiveKey: active}
	for i, k := range cfg.FallbackKeys {
		key, err := middleware.ParseKey(k)
		if err != nil {
			return nil, fmt.Errorf("store.encryption.fallback_keys[%d]: %w", i, err)
		}
		ec.FallbackKeys = append(ec.FallbackKeys, key)
	}
	return middleware.NewEncryptionMiddleware(ec)
}

func openDriver(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (ports.RecordStore, io.Closer, error) {
	switch cfg.Driver {
	case "memory":
		return memory.NewStore(), nopCloser{}, nil

	case "file":
		s, err := file.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser{}, nil

	case "redis":
		s := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redis.WithPrefix(cfg.Redis.Prefix))
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		return s, s, nil

	case "postgres":
		s, err := postgres.Open(ctx, cfg.Postgres.DSN, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
