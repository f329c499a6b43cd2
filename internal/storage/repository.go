package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"salesstats/internal/core"
	"salesstats/internal/ledger"
	applog "salesstats/internal/log"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	logger  *applog.Logger
}

var (
	_ ledger.Reader = (*SQLiteRepository)(nil)
	_ ledger.Writer = (*SQLiteRepository)(nil)
)

// NewSQLiteRepository opens and migrates the database at dbPath.
// A nil logger falls back to the process default.
func NewSQLiteRepository(dbPath string, logger *applog.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = applog.FromContext(context.Background())
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
		logger:  logger.WithComponent(applog.ComponentStorage),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements ledger.Writer
func (r *SQLiteRepository) Append(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	row, err := r.queries.CreateTransaction(ctx, toParams(tx))
	if err != nil {
		return "", fmt.Errorf("create transaction: %w", err)
	}

	r.logger.DebugContext(ctx, "Transaction saved to SQLite",
		"id", row.ID,
		"date", row.SaleDate,
		"branch", row.Branch,
		"product_line", row.ProductLine)

	return strconv.FormatInt(row.ID, 10), nil
}

// ReadTransactions implements ledger.Reader
func (r *SQLiteRepository) ReadTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	txs := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := toTransaction(row)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", row.ID, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// Count returns the number of stored transactions.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	n, err := r.queries.CountTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return int(n), nil
}

// ImportAll stores txs in a single database transaction and returns how many were written.
// With replace set the existing rows are deleted in the same transaction. Every row is
// validated before the database is touched, and nothing is committed unless all rows are.
func (r *SQLiteRepository) ImportAll(ctx context.Context, txs []core.Transaction, replace bool) (int, error) {
	for i, tx := range txs {
		if err := tx.Validate(); err != nil {
			return 0, fmt.Errorf("transaction %d: %w", i+1, err)
		}
	}

	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer dbtx.Rollback()

	q := r.queries.WithTx(dbtx)
	if replace {
		if err := q.DeleteAllTransactions(ctx); err != nil {
			return 0, fmt.Errorf("delete transactions: %w", err)
		}
	}
	for i, tx := range txs {
		if _, err := q.CreateTransaction(ctx, toParams(tx)); err != nil {
			return 0, fmt.Errorf("create transaction %d: %w", i+1, err)
		}
	}
	if err := dbtx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	r.logger.InfoContext(ctx, "Ledger imported into SQLite",
		applog.FieldOperation, applog.OpImport,
		applog.FieldRecords, len(txs),
		"replace", replace)
	return len(txs), nil
}

func toParams(tx core.Transaction) CreateTransactionParams {
	return CreateTransactionParams{
		SaleDate:    tx.Date.String(),
		Branch:      tx.Branch,
		ProductLine: tx.ProductLine,
		Quantity:    int64(tx.Quantity),
		Total:       tx.Total.Amount.String(),
	}
}

func toTransaction(row Transaction) (core.Transaction, error) {
	date, err := core.ParseDate(row.SaleDate)
	if err != nil {
		return core.Transaction{}, err
	}
	total, err := core.ParseMoney(row.Total)
	if err != nil {
		return core.Transaction{}, err
	}
	tx := core.Transaction{
		Date:        date,
		Branch:      row.Branch,
		ProductLine: row.ProductLine,
		Quantity:    int(row.Quantity),
		Total:       total,
	}
	return tx, tx.Validate()
}
