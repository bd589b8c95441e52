package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Debit  ItemType = "debit"
	Credit ItemType = "credit"
)

const (
	Interval    ScheduleKind = "interval"
	DaysInMonth ScheduleKind = "days_in_month"
	Croniter    ScheduleKind = "croniter"
	OneTime     ScheduleKind = "one_time"
)

type (
	// ItemType decides the sign an occurrence applies to the balance.
	ItemType string

	// ScheduleKind names one of the supported recurrence semantics.
	ScheduleKind string

	// Rule is one row of the transactions sheet.
	Rule struct {
		Item          string
		Label         string // schedule_label, informational only
		Enabled       bool
		ItemType      ItemType
		ScheduleType  ScheduleKind
		ScheduleStart time.Time // zero when the row has none
		ScheduleExpr  string
		Amount        decimal.Decimal
	}

	// Occurrence is one dated instance of a Rule.
	Occurrence struct {
		Date     time.Time
		Item     string
		ItemType ItemType
		Amount   decimal.Decimal
		Balance  decimal.Decimal
	}
)

// ParseItemType normalizes s and checks it against the supported types.
func ParseItemType(s string) (ItemType, error) {
	t := ItemType(strings.ToLower(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t ItemType) Validate() error {
	switch t {
	case Debit, Credit:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedItemType, string(t))
	}
}

// Sign applies the item type to a magnitude: debits subtract, credits add.
func (t ItemType) Sign(amount decimal.Decimal) (decimal.Decimal, error) {
	switch t {
	case Debit:
		return amount.Neg(), nil
	case Credit:
		return amount, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnsupportedItemType, string(t))
	}
}

// ParseScheduleKind normalizes s. Unknown kinds are rejected later by the
// schedule parser so that the error carries the rule context.
func ParseScheduleKind(s string) ScheduleKind {
	return ScheduleKind(strings.ToLower(strings.TrimSpace(s)))
}

func (k ScheduleKind) String() string {
	return string(k)
}

// Validate checks the fields every rule needs regardless of its schedule.
// Schedule specific fields are checked by the schedule parser.
func (r Rule) Validate() error {
	if err := r.ItemType.Validate(); err != nil {
		return err
	}
	if r.Amount.IsNegative() {
		return fmt.Errorf("%w: %s is negative", ErrInvalidAmount, r.Amount.String())
	}
	return nil
}

// Occurrence stamps the rule's item, type and amount on date.
func (r Rule) Occurrence(date time.Time) Occurrence {
	return Occurrence{
		Date:     date,
		Item:     r.Item,
		ItemType: r.ItemType,
		Amount:   r.Amount,
	}
}

// Signed returns the amount with the item type's sign applied.
func (o Occurrence) Signed() (decimal.Decimal, error) {
	return o.ItemType.Sign(o.Amount)
}
