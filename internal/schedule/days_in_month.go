package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"cashflow/internal/core"
)

// lastToken selects the last calendar day of the month.
const lastToken = "last"

// maxMonthDay is the highest day present in every month.
const maxMonthDay = 28

// DayToken is one entry of a days_in_month expression: either a day of the
// month or the last day of the month.
type DayToken struct {
	Day  int
	Last bool
}

func (t DayToken) String() string {
	if t.Last {
		return lastToken
	}
	return strconv.Itoa(t.Day)
}

// DaysInMonth fires on the listed days of every month.
type DaysInMonth struct {
	Tokens []DayToken
}

func parseDaysInMonth(r core.Rule, _ Options) (Schedule, error) {
	tokens, err := ParseDayTokens(r.ScheduleExpr)
	if err != nil {
		return nil, err
	}
	return DaysInMonth{Tokens: tokens}, nil
}

// ParseDayTokens parses a comma-separated list of 1-28 days and "last".
func ParseDayTokens(expr string) ([]DayToken, error) {
	parts := strings.Split(expr, ",")
	tokens := make([]DayToken, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if strings.EqualFold(p, lastToken) {
			tokens = append(tokens, DayToken{Last: true})
			continue
		}
		if !isDigits(p) {
			return nil, fmt.Errorf("%w: %q in %q", core.ErrUnsupportedDayToken, p, expr)
		}
		day, err := strconv.Atoi(p)
		if err != nil || day < 1 || day > maxMonthDay {
			return nil, fmt.Errorf("%w: %q in %q (days must be 1-%d)", core.ErrUnsupportedDayToken, p, expr, maxMonthDay)
		}
		tokens = append(tokens, DayToken{Day: day})
	}
	return tokens, nil
}

func (DaysInMonth) Kind() core.ScheduleKind { return core.DaysInMonth }

// Expand expands every token independently and concatenates the results in
// token order. The collector sorts later.
func (s DaysInMonth) Expand(w core.Window) []time.Time {
	var out []time.Time
	for _, t := range s.Tokens {
		if t.Last {
			out = append(out, expandLastDay(w)...)
		} else {
			out = append(out, expandMonthDay(t.Day, w)...)
		}
	}
	return out
}

// expandMonthDay follows the cron schedule "0 0 day * *" from the window start.
func expandMonthDay(day int, w core.Window) []time.Time {
	spec, err := cron.ParseStandard(fmt.Sprintf("0 0 %d * *", day))
	if err != nil {
		// day was validated by ParseDayTokens
		panic(fmt.Sprintf("schedule: day %d: %v", day, err))
	}
	var out []time.Time
	for cursor := w.Start; ; {
		next := spec.Next(cursor)
		if next.IsZero() || w.Ended(next) {
			break
		}
		cursor = next
		if next.Before(w.Start) {
			continue
		}
		out = append(out, next)
	}
	return out
}

// expandLastDay emits midnight of the last day of each month, starting with
// the month of the window start.
func expandLastDay(w core.Window) []time.Time {
	var out []time.Time
	year, month := w.Start.Year(), w.Start.Month()
	for {
		next := core.LastDayOfMonth(year, month, w.Location())
		if w.Ended(next) {
			break
		}
		if !next.Before(w.Start) {
			out = append(out, next)
		}
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
