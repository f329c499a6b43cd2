package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Transaction is a stored ledger row.
type Transaction struct {
	ID          int64
	SaleDate    string
	Branch      string
	ProductLine string
	Quantity    int64
	Total       string
}

type CreateTransactionParams struct {
	SaleDate    string
	Branch      string
	ProductLine string
	Quantity    int64
	Total       string
}

const createTransaction = `
INSERT INTO transactions (sale_date, branch, product_line, quantity, total)
VALUES (?, ?, ?, ?, ?)
RETURNING id, sale_date, branch, product_line, quantity, total
`

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error) {
	row := q.db.QueryRowContext(ctx, createTransaction,
		arg.SaleDate,
		arg.Branch,
		arg.ProductLine,
		arg.Quantity,
		arg.Total,
	)
	var t Transaction
	err := row.Scan(&t.ID, &t.SaleDate, &t.Branch, &t.ProductLine, &t.Quantity, &t.Total)
	return t, err
}

const listTransactions = `
SELECT id, sale_date, branch, product_line, quantity, total
FROM transactions
ORDER BY id
`

func (q *Queries) ListTransactions(ctx context.Context) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.SaleDate, &t.Branch, &t.ProductLine, &t.Quantity, &t.Total); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countTransactions = `SELECT COUNT(*) FROM transactions`

func (q *Queries) CountTransactions(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countTransactions)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteAllTransactions = `DELETE FROM transactions`

func (q *Queries) DeleteAllTransactions(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllTransactions)
	return err
}
