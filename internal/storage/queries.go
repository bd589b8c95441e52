package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
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

type LedgerDocument struct {
	IndexName string
	ID        int64
	Date      string
	Item      string
	ItemType  string
	Amount    string
	Balance   string
}

const deleteIndex = `DELETE FROM ledger_indexes WHERE name = ?`

func (q *Queries) DeleteIndex(ctx context.Context, name string) error {
	_, err := q.db.ExecContext(ctx, deleteIndex, name)
	return err
}

const deleteDocuments = `DELETE FROM ledger_documents WHERE index_name = ?`

func (q *Queries) DeleteDocuments(ctx context.Context, name string) error {
	_, err := q.db.ExecContext(ctx, deleteDocuments, name)
	return err
}

const createIndex = `INSERT INTO ledger_indexes (name) VALUES (?)`

func (q *Queries) CreateIndex(ctx context.Context, name string) error {
	_, err := q.db.ExecContext(ctx, createIndex, name)
	return err
}

const upsertDocument = `INSERT INTO ledger_documents (index_name, id, date, item, item_type, amount, balance)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (index_name, id) DO UPDATE SET
    date = excluded.date,
    item = excluded.item,
    item_type = excluded.item_type,
    amount = excluded.amount,
    balance = excluded.balance`

func (q *Queries) UpsertDocument(ctx context.Context, d LedgerDocument) error {
	_, err := q.db.ExecContext(ctx, upsertDocument,
		d.IndexName, d.ID, d.Date, d.Item, d.ItemType, d.Amount, d.Balance)
	return err
}

const listDocuments = `SELECT index_name, id, date, item, item_type, amount, balance
FROM ledger_documents WHERE index_name = ? ORDER BY id`

func (q *Queries) ListDocuments(ctx context.Context, name string) ([]LedgerDocument, error) {
	rows, err := q.db.QueryContext(ctx, listDocuments, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []LedgerDocument
	for rows.Next() {
		var d LedgerDocument
		if err := rows.Scan(&d.IndexName, &d.ID, &d.Date, &d.Item, &d.ItemType, &d.Amount, &d.Balance); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return items, rows.Err()
}

const countDocuments = `SELECT COUNT(*) FROM ledger_documents WHERE index_name = ?`

func (q *Queries) CountDocuments(ctx context.Context, name string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countDocuments, name).Scan(&n)
	return n, err
}
