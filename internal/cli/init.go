// Package cli implements the discipline command line: it wires configuration,
// storage and the log store together and renders results as text, JSON or YAML.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"discipline/internal/amqp"
	"discipline/internal/backend"
	"discipline/internal/config"
	applog "discipline/internal/log"
	"discipline/internal/logstore"
)

// ErrInvalidConfig marks configuration problems found before any storage is touched.
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// SetupLogger builds the application logger at LOG_LEVEL, or debug when verbose.
// It also becomes the slog default.
func SetupLogger(cfg *config.Config, verbose bool, out io.Writer) *applog.Logger {
	logCfg := applog.DefaultConfig()
	if level, err := applog.ParseLevel(cfg.LogLevel); err == nil {
		logCfg.Level = level
	}
	if verbose {
		logCfg.Level = slog.LevelDebug
	}
	if out != nil {
		logCfg.Output = out
	}
	logCfg.Component = applog.ComponentCLI

	logger := applog.New(logCfg)
	applog.SetDefault(logger)
	return logger
}

// OpenStore builds the configured backend, initializes a log store over it and,
// when AMQP_URL is set, subscribes the change publisher. The returned cleanup
// releases everything that was opened. A nil now means the wall clock.
func OpenStore(ctx context.Context, cfg *config.Config, logger *applog.Logger, now func() time.Time) (*logstore.Store, func() error, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	settings, err := backend.SettingsFrom(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	opened, err := backend.NewOpener(logger).Open(ctx, settings)
	if err != nil {
		return nil, nil, err
	}

	store := logstore.New(opened.Adapter,
		logstore.WithLogger(logger),
		logstore.WithLocation(loc),
		logstore.WithClock(now),
	)
	if err := store.Initialize(ctx); err != nil {
		_ = opened.Close()
		return nil, nil, err
	}

	cleanups := []func() error{opened.Close}

	if cfg.NotificationsEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey, cfg.AMQPPublishTimeout)
		if err != nil {
			// Notifications are best effort; the log itself still works.
			logger.LogError(ctx, "Change notifications disabled", err, applog.OpStartup, applog.NewFields())
		} else {
			cancel := store.Subscribe(client.Subscriber(ctx, loc, logger))
			cleanups = append(cleanups, func() error {
				cancel()
				return client.Close()
			})
		}
	}

	cleanup := func() error {
		var errs []error
		for i := len(cleanups) - 1; i >= 0; i-- {
			if err := cleanups[i](); err != nil {
				logger.LogError(ctx, "Failed to release resource", err, applog.OpShutdown, applog.NewFields())
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
	return store, cleanup, nil
}

// openConfiguredStore is the default StoreOpener: environment, config, logger, store.
func openConfiguredStore(ctx context.Context, opts *RootOptions) (*logstore.Store, func() error, error) {
	LoadEnvFile()
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := SetupLogger(cfg, opts.Verbose, os.Stderr)
	return OpenStore(ctx, cfg, logger, opts.now)
}
