package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cashflow/internal/amqp"
	"cashflow/internal/core"
	"cashflow/internal/log"
)

// LedgerIndex is the document store the worker writes into.
type LedgerIndex interface {
	ReplaceIndex(ctx context.Context, name string, entries []core.Entry) error
}

// IndexWorker replaces an index with each ledger received from the queue.
type IndexWorker struct {
	index LedgerIndex
	loc   *time.Location
}

func NewIndexWorker(index LedgerIndex, loc *time.Location) *IndexWorker {
	if loc == nil {
		loc = time.Local
	}
	return &IndexWorker{index: index, loc: loc}
}

// HandleLedgerMessage implements amqp.LedgerHandler.
func (w *IndexWorker) HandleLedgerMessage(ctx context.Context, msg *amqp.LedgerMessage) error {
	slog.InfoContext(ctx, "Processing ledger message",
		log.FieldComponent, log.ComponentWorker,
		log.FieldIndex, msg.Index,
		log.FieldDocuments, len(msg.Documents))

	entries, err := msg.Entries(w.loc)
	if err != nil {
		return fmt.Errorf("decode ledger for %s: %w", msg.Index, err)
	}
	if err := w.index.ReplaceIndex(ctx, msg.Index, entries); err != nil {
		return fmt.Errorf("replace index %s: %w", msg.Index, err)
	}
	return nil
}
