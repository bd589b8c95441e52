package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	// Entry is one ledger row. Position is its zero-based index in the
	// sorted ledger and the only field guaranteed unique.
	Entry struct {
		Position int
		Occurrence
	}

	// Ledger is the sorted, balance-annotated projection. It is built once
	// and read-only afterwards.
	Ledger struct {
		starting decimal.Decimal
		entries  []Entry
	}

	// Stats summarizes the balances of a ledger.
	Stats struct {
		Count int
		Min   decimal.Decimal
		Max   decimal.Decimal
		Mean  decimal.Decimal
	}
)

// NewLedger wraps entries already sorted and folded by the ledger builder.
func NewLedger(starting decimal.Decimal, entries []Entry) *Ledger {
	return &Ledger{starting: starting, entries: entries}
}

func (l *Ledger) StartingBalance() decimal.Decimal {
	return l.starting
}

func (l *Ledger) Len() int {
	return len(l.entries)
}

// At returns the entry at position i.
func (l *Ledger) At(i int) Entry {
	return l.entries[i]
}

// Entries returns a copy of the rows.
func (l *Ledger) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// ClosingBalance is the balance after the last entry, or the starting
// balance of an empty ledger.
func (l *Ledger) ClosingBalance() decimal.Decimal {
	if len(l.entries) == 0 {
		return l.starting
	}
	return l.entries[len(l.entries)-1].Balance
}

// Span returns the first and last entry dates.
func (l *Ledger) Span() (first, last time.Time, ok bool) {
	if len(l.entries) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return l.entries[0].Date, l.entries[len(l.entries)-1].Date, true
}

// Stats computes min, max and mean balance. An empty ledger has Count 0.
func (l *Ledger) Stats() Stats {
	if len(l.entries) == 0 {
		return Stats{}
	}
	s := Stats{
		Count: len(l.entries),
		Min:   l.entries[0].Balance,
		Max:   l.entries[0].Balance,
	}
	sum := decimal.Zero
	for _, e := range l.entries {
		if e.Balance.LessThan(s.Min) {
			s.Min = e.Balance
		}
		if e.Balance.GreaterThan(s.Max) {
			s.Max = e.Balance
		}
		sum = sum.Add(e.Balance)
	}
	s.Mean = sum.Div(decimal.NewFromInt(int64(len(l.entries))))
	return s
}
