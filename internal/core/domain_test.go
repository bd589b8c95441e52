package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseItemType(t *testing.T) {
	cases := []struct {
		in   string
		want ItemType
		ok   bool
	}{
		{"debit", Debit, true},
		{" Credit ", Credit, true},
		{"DEBIT", Debit, true},
		{"transfer", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseItemType(tc.in)
			if !tc.ok {
				require.ErrorIs(t, err, ErrUnsupportedItemType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestItemTypeSign(t *testing.T) {
	got, err := Debit.Sign(dec("12.50"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("-12.50")))

	got, err = Credit.Sign(dec("12.50"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("12.50")))

	_, err = ItemType("refund").Sign(dec("1"))
	assert.ErrorIs(t, err, ErrUnsupportedItemType)
}

func TestRuleValidate(t *testing.T) {
	good := Rule{Item: "Rent", Enabled: true, ItemType: Debit, ScheduleType: Interval, Amount: dec("100")}
	require.NoError(t, good.Validate())

	badType := good
	badType.ItemType = "other"
	assert.ErrorIs(t, badType.Validate(), ErrUnsupportedItemType)

	negative := good
	negative.Amount = dec("-1")
	assert.ErrorIs(t, negative.Validate(), ErrInvalidAmount)
}

func TestRuleOccurrenceCopiesFields(t *testing.T) {
	r := Rule{Item: "Gym", ItemType: Debit, Amount: dec("30")}
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	o := r.Occurrence(day)
	assert.Equal(t, day, o.Date)
	assert.Equal(t, "Gym", o.Item)
	assert.Equal(t, Debit, o.ItemType)
	assert.True(t, o.Amount.Equal(dec("30")))
	assert.True(t, o.Balance.IsZero())
}

func TestParseScheduleKind(t *testing.T) {
	assert.Equal(t, DaysInMonth, ParseScheduleKind(" Days_In_Month "))
	assert.Equal(t, ScheduleKind("weekly"), ParseScheduleKind("weekly"))
}
