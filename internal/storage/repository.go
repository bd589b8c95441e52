package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"cashflow/internal/core"
	"cashflow/internal/log"
)

// SQLiteRepository is the ledger index: named collections of ledger
// documents, one document per entry keyed by its position.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
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

	return &SQLiteRepository{db: db, queries: New(db)}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// IndexLedger replaces the named index with one document per ledger entry.
func (r *SQLiteRepository) IndexLedger(ctx context.Context, name string, ledger *core.Ledger) error {
	return r.ReplaceIndex(ctx, name, ledger.Entries())
}

// ReplaceIndex swaps the content of the named index for entries in one
// transaction: the index is dropped, recreated and written. When any write
// fails the previous documents stay in place.
func (r *SQLiteRepository) ReplaceIndex(ctx context.Context, name string, entries []core.Entry) error {
	start := time.Now()
	err := r.inTx(ctx, func(q *Queries) error {
		if err := q.DeleteDocuments(ctx, name); err != nil {
			return fmt.Errorf("delete documents of %s: %w", name, err)
		}
		if err := q.DeleteIndex(ctx, name); err != nil {
			return fmt.Errorf("delete index %s: %w", name, err)
		}
		if err := q.CreateIndex(ctx, name); err != nil {
			return fmt.Errorf("create index %s: %w", name, err)
		}
		for _, e := range entries {
			if err := q.UpsertDocument(ctx, toDocument(name, e)); err != nil {
				return fmt.Errorf("index document %d: %w", e.Position, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "Ledger indexed",
		log.FieldComponent, log.ComponentStorage,
		log.FieldIndex, name,
		log.FieldDocuments, len(entries),
		log.FieldDuration, time.Since(start).Milliseconds())
	return nil
}

// ListDocuments reads the named index back ordered by position.
func (r *SQLiteRepository) ListDocuments(ctx context.Context, name string) ([]core.Entry, error) {
	docs, err := r.queries.ListDocuments(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("list documents of %s: %w", name, err)
	}
	entries := make([]core.Entry, 0, len(docs))
	for _, d := range docs {
		e, err := fromDocument(d)
		if err != nil {
			return nil, fmt.Errorf("decode document %d of %s: %w", d.ID, name, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// CountDocuments returns how many documents the named index holds.
func (r *SQLiteRepository) CountDocuments(ctx context.Context, name string) (int, error) {
	n, err := r.queries.CountDocuments(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("count documents of %s: %w", name, err)
	}
	return int(n), nil
}

func (r *SQLiteRepository) inTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(r.queries.WithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func toDocument(index string, e core.Entry) LedgerDocument {
	return LedgerDocument{
		IndexName: index,
		ID:        int64(e.Position),
		Date:      core.FormatTimestamp(e.Date),
		Item:      e.Item,
		ItemType:  string(e.ItemType),
		Amount:    e.Amount.String(),
		Balance:   e.Balance.String(),
	}
}

func fromDocument(d LedgerDocument) (core.Entry, error) {
	date, err := core.ParseTimestamp(d.Date, time.Local)
	if err != nil {
		return core.Entry{}, err
	}
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return core.Entry{}, fmt.Errorf("amount %q: %w", d.Amount, err)
	}
	balance, err := decimal.NewFromString(d.Balance)
	if err != nil {
		return core.Entry{}, fmt.Errorf("balance %q: %w", d.Balance, err)
	}
	return core.Entry{
		Position: int(d.ID),
		Occurrence: core.Occurrence{
			Date:     date,
			Item:     d.Item,
			ItemType: core.ItemType(d.ItemType),
			Amount:   amount,
			Balance:  balance,
		},
	}, nil
}
