package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"cashflow/internal/core"
)

// Document is one ledger entry as it travels on the queue. ID is the entry
// position and Date an RFC 3339 timestamp.
type Document struct {
	ID       int             `json:"id"`
	Date     string          `json:"date"`
	Item     string          `json:"item"`
	ItemType core.ItemType   `json:"item_type"`
	Amount   decimal.Decimal `json:"amount"`
	Balance  decimal.Decimal `json:"balance"`
}

// LedgerMessage carries a whole projected ledger destined for one index.
type LedgerMessage struct {
	Index     string     `json:"index"`
	Documents []Document `json:"documents"`
	Timestamp time.Time  `json:"timestamp"`
}

func NewLedgerMessage(index string, ledger *core.Ledger) *LedgerMessage {
	entries := ledger.Entries()
	docs := make([]Document, len(entries))
	for i, e := range entries {
		docs[i] = Document{
			ID:       e.Position,
			Date:     core.FormatTimestamp(e.Date),
			Item:     e.Item,
			ItemType: e.ItemType,
			Amount:   e.Amount,
			Balance:  e.Balance,
		}
	}
	return &LedgerMessage{Index: index, Documents: docs, Timestamp: time.Now()}
}

func (m *LedgerMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerMessageFromJSON(data []byte) (*LedgerMessage, error) {
	var msg LedgerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Index == "" {
		return nil, errors.New("ledger message without index")
	}
	return &msg, nil
}

// Entries decodes the documents back into ledger entries. Dates are read in
// loc.
func (m *LedgerMessage) Entries(loc *time.Location) ([]core.Entry, error) {
	entries := make([]core.Entry, len(m.Documents))
	for i, d := range m.Documents {
		if err := d.ItemType.Validate(); err != nil {
			return nil, fmt.Errorf("document %d: %w", d.ID, err)
		}
		date, err := core.ParseTimestamp(d.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", d.ID, err)
		}
		entries[i] = core.Entry{
			Position: d.ID,
			Occurrence: core.Occurrence{
				Date:     date,
				Item:     d.Item,
				ItemType: d.ItemType,
				Amount:   d.Amount,
				Balance:  d.Balance,
			},
		}
	}
	return entries, nil
}
