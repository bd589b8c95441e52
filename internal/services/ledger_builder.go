package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"cashflow/internal/core"
)

// BuildLedger sorts occurrences by date then item and folds the running
// balance from starting. The input slice is left untouched.
func BuildLedger(occurrences []core.Occurrence, starting decimal.Decimal) (*core.Ledger, error) {
	sorted := slices.Clone(occurrences)
	slices.SortStableFunc(sorted, compareOccurrences)

	entries := make([]core.Entry, len(sorted))
	balance := starting
	for i, o := range sorted {
		signed, err := o.Signed()
		if err != nil {
			return nil, fmt.Errorf("occurrence %d (%q on %s): %w", i, o.Item, o.Date.Format(core.DateLayout), err)
		}
		balance = balance.Add(signed)
		o.Balance = balance
		entries[i] = core.Entry{Position: i, Occurrence: o}
	}
	return core.NewLedger(starting, entries), nil
}

func compareOccurrences(a, b core.Occurrence) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return strings.Compare(a.Item, b.Item)
}
