package backend

import (
	"context"
	"errors"
	"fmt"
	"os"

	"salesstats/internal/amqp"
	"salesstats/internal/ledger"
	"salesstats/internal/ledger/csvfile"
	"salesstats/internal/ledger/google"
	"salesstats/internal/ledger/memory"
	applog "salesstats/internal/log"
	"salesstats/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// Create implements Factory.Create
func (f *DefaultFactory) Create(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		reader  ledger.Reader
		cleanup CleanupFunc
		err     error
	)
	switch config.Type {
	case CSVBackend:
		reader = csvfile.New(config.CSVPath)
		f.logger.Info("Initialized CSV ledger", applog.FieldPath, config.CSVPath)
	case SQLiteBackend:
		reader, cleanup, err = f.createSQLite(config)
	case SheetsBackend:
		reader, err = f.createSheets(ctx, config)
	case MemoryBackend:
		reader, err = f.createMemory(ctx, config)
	default:
		err = fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	res := &Result{Reader: reader}
	cleanups := []CleanupFunc{cleanup}

	// Publishing is optional: a broker that cannot be reached only disables it.
	if config.AMQPURL != "" {
		client, err := amqp.NewClient(ctx, config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without publishing", applog.FieldError, err)
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
			res.Publisher = client
			cleanups = append(cleanups, client.Close)
		}
	}

	res.Cleanup = func() error {
		var errs []error
		for _, c := range cleanups {
			if c == nil {
				continue
			}
			if err := c(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
	return res, nil
}

func (f *DefaultFactory) createSQLite(config Config) (ledger.Reader, CleanupFunc, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath, f.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}
	f.logger.Info("Initialized SQLite ledger", applog.FieldPath, config.SQLiteDBPath)
	return repo, repo.Close, nil
}

func (f *DefaultFactory) createSheets(ctx context.Context, config Config) (ledger.Reader, error) {
	cli, err := google.New(ctx, google.Config{
		SpreadsheetID:      config.GoogleSpreadsheetID,
		SheetName:          config.GoogleSheetName,
		ServiceAccountJSON: config.GoogleServiceAccountJSON,
		ServiceAccountFile: config.GoogleServiceAccountFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}
	f.logger.Info("Initialized Google Sheets ledger", "spreadsheet_id", config.GoogleSpreadsheetID)
	return cli, nil
}

// createMemory seeds the store from CSVPath when that file exists.
func (f *DefaultFactory) createMemory(ctx context.Context, config Config) (ledger.Reader, error) {
	store := memory.New()
	if config.CSVPath == "" {
		f.logger.Info("Initialized empty memory ledger")
		return store, nil
	}
	if _, err := os.Stat(config.CSVPath); errors.Is(err, os.ErrNotExist) {
		f.logger.Warn("Seed file not found, memory ledger starts empty", applog.FieldPath, config.CSVPath)
		return store, nil
	}
	n, err := ledger.Import(ctx, csvfile.New(config.CSVPath), store)
	if err != nil {
		return nil, fmt.Errorf("seed memory ledger: %w", err)
	}
	f.logger.Info("Initialized memory ledger", applog.FieldPath, config.CSVPath, applog.FieldRecords, n)
	return store, nil
}
