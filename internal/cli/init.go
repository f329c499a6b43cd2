// Package cli provides common CLI initialization utilities for cmd/salesstats.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"salesstats/internal/config"
	applog "salesstats/internal/log"
	"salesstats/internal/storage"
)

// SetupLogger initializes structured logging on stderr at the given level
// and sets it as the default logger. Unknown levels fall back to info.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Level, _ = applog.ParseLevel(level)
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads .env files for local development.
// Missing files are ignored; variables already set in the environment win.
func LoadEnvFile(filenames ...string) {
	_ = godotenv.Load(filenames...)
}

// LoadAndValidateConfig loads configuration from the environment, applies
// overrides (for example command line flags) and validates the result.
func LoadAndValidateConfig(logger *applog.Logger, overrides ...func(*config.Config)) (*config.Config, error) {
	cfg := config.Load()
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldOperation, applog.OpValidate, applog.FieldError, err)
		return nil, err
	}
	return cfg, nil
}

// InitSQLite opens (and migrates) the SQLite ledger at dbPath.
func InitSQLite(logger *applog.Logger, dbPath string) (*storage.SQLiteRepository, error) {
	repo, err := storage.NewSQLiteRepository(dbPath, logger)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", applog.FieldError, err, applog.FieldPath, dbPath)
		return nil, fmt.Errorf("init sqlite %s: %w", dbPath, err)
	}
	return repo, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
// The returned stop func releases the signal handler and cancels the context.
func SignalContext(parent context.Context, logger *applog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String(), applog.FieldOperation, applog.OpShutdown)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
