package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLedgerStats(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Position: 0, Occurrence: Occurrence{Date: day, Balance: dec("900")}},
		{Position: 1, Occurrence: Occurrence{Date: day.AddDate(0, 0, 1), Balance: dec("1200")}},
		{Position: 2, Occurrence: Occurrence{Date: day.AddDate(0, 0, 2), Balance: dec("1500")}},
	}
	l := NewLedger(dec("1000"), entries)

	s := l.Stats()
	assert.Equal(t, 3, s.Count)
	assert.True(t, s.Min.Equal(dec("900")))
	assert.True(t, s.Max.Equal(dec("1500")))
	assert.True(t, s.Mean.Equal(dec("1200")))
	assert.True(t, l.ClosingBalance().Equal(dec("1500")))

	first, last, ok := l.Span()
	assert.True(t, ok)
	assert.Equal(t, day, first)
	assert.Equal(t, day.AddDate(0, 0, 2), last)
}

func TestLedgerEmpty(t *testing.T) {
	l := NewLedger(dec("42"), nil)

	assert.Equal(t, 0, l.Len())
	assert.Equal(t, Stats{}, l.Stats())
	assert.True(t, l.ClosingBalance().Equal(dec("42")))
	_, _, ok := l.Span()
	assert.False(t, ok)
}

func TestLedgerEntriesIsACopy(t *testing.T) {
	l := NewLedger(decimal.Zero, []Entry{{Position: 0, Occurrence: Occurrence{Item: "Rent"}}})

	rows := l.Entries()
	rows[0].Item = "changed"

	assert.Equal(t, "Rent", l.At(0).Item)
}
