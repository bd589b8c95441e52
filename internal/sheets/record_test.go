package sheets

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashflow/internal/core"
)

var header = []string{"item", "enabled", "item_type", "schedule_label", "schedule_type", "schedule_start", "schedule_expr", "amount"}

func mustHeader(t *testing.T) Header {
	t.Helper()
	h, err := NewHeader(header)
	require.NoError(t, err)
	return h
}

func TestParseEnabled(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"1", true, false},
		{"0", false, false},
		{"1.0", true, false},
		{"2", true, false},
		{"true", true, false},
		{"FALSE", false, false},
		{"", false, false},
		{"yes", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseEnabled(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrInvalidEnabled)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRowNormalizesCase(t *testing.T) {
	h := mustHeader(t)
	r, err := ParseRow(h, []string{" Rent ", "1", " DEBIT", "", " Days_In_Month ", "", "1", "10.5"}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "Rent", r.Item)
	assert.Equal(t, core.Debit, r.ItemType)
	assert.Equal(t, core.DaysInMonth, r.ScheduleType)
	assert.True(t, decimal.RequireFromString("10.5").Equal(r.Amount))
}

func TestParseRowDisabledSkipsCells(t *testing.T) {
	h := mustHeader(t)
	r, err := ParseRow(h, []string{"gym", "0", "nonsense", "", "bogus", "not-a-date", "", "abc"}, time.UTC)
	require.NoError(t, err)
	assert.False(t, r.Enabled)
	assert.Equal(t, "gym", r.Item)
}

func TestParseRowErrors(t *testing.T) {
	h := mustHeader(t)

	_, err := ParseRow(h, []string{"x", "1", "debit", "", "one_time", "2024-13-45", "", "1"}, time.UTC)
	assert.ErrorIs(t, err, core.ErrMalformedDate)

	_, err = ParseRow(h, []string{"x", "1", "debit", "", "one_time", "2024-01-01", "", "ten"}, time.UTC)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	_, err = ParseRow(h, []string{"x", "maybe", "debit", "", "one_time", "2024-01-01", "", "1"}, time.UTC)
	assert.ErrorIs(t, err, core.ErrInvalidEnabled)
}

func TestParseRowDates(t *testing.T) {
	h := mustHeader(t)
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	for _, start := range []string{"2024-01-15", "2024-01-15 00:00:00", "45306"} {
		t.Run(start, func(t *testing.T) {
			r, err := ParseRow(h, []string{"x", "1", "credit", "", "one_time", start, "", "1"}, time.UTC)
			require.NoError(t, err)
			assert.Equal(t, want, r.ScheduleStart)
		})
	}
}

func TestParseRowsFindsHeaderAndReportsRow(t *testing.T) {
	rows := [][]string{
		{"My budget"},
		{},
		header,
		{"rent", "1", "debit", "", "days_in_month", "", "1", "1000"},
		{"", "", "", "", "", "", "", ""},
		{"bad", "1", "debit", "", "one_time", "nope", "", "1"},
	}
	_, err := ParseRows(rows, time.UTC)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMalformedDate)
	assert.Contains(t, err.Error(), "row 6")

	rules, err := ParseRows(rows[:5], time.UTC)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "rent", rules[0].Item)
}

func TestNewHeaderMissingColumns(t *testing.T) {
	_, err := NewHeader([]string{"item", "amount"})
	assert.ErrorIs(t, err, core.ErrMissingColumn)
	assert.Contains(t, err.Error(), "enabled")
}

func TestValuesToRows(t *testing.T) {
	rows := ValuesToRows([][]any{{"rent", 1, " debit "}, {float64(45306), float64(1500000), nil, true}})
	assert.Equal(t, [][]string{{"rent", "1", "debit"}, {"45306", "1500000", "", "true"}}, rows)
}
