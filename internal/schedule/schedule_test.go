package schedule

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashflow/internal/core"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func window(t *testing.T, now time.Time, days int) core.Window {
	t.Helper()
	w, err := core.NewWindow(now, days)
	require.NoError(t, err)
	return w
}

func rule(kind core.ScheduleKind, start time.Time, expr string) core.Rule {
	return core.Rule{
		Item:          "item",
		Enabled:       true,
		ItemType:      core.Credit,
		ScheduleType:  kind,
		ScheduleStart: start,
		ScheduleExpr:  expr,
		Amount:        decimal.NewFromInt(1),
	}
}

func TestParse(t *testing.T) {
	start := day(2024, 1, 1)
	tests := []struct {
		name    string
		rule    core.Rule
		kind    core.ScheduleKind
		wantErr error
	}{
		{"interval", rule(core.Interval, start, "7"), core.Interval, nil},
		{"interval from float cell", rule(core.Interval, start, "7.0"), core.Interval, nil},
		{"interval zero", rule(core.Interval, start, "0"), "", core.ErrInvalidInterval},
		{"interval negative", rule(core.Interval, start, "-3"), "", core.ErrInvalidInterval},
		{"interval fractional", rule(core.Interval, start, "1.5"), "", core.ErrInvalidInterval},
		{"interval text", rule(core.Interval, start, "weekly"), "", core.ErrInvalidInterval},
		{"interval without start", rule(core.Interval, time.Time{}, "7"), "", core.ErrMissingStart},
		{"days in month", rule(core.DaysInMonth, time.Time{}, "1, 15 ,last"), core.DaysInMonth, nil},
		{"days in month 29", rule(core.DaysInMonth, time.Time{}, "29"), "", core.ErrUnsupportedDayToken},
		{"cron", rule(core.Croniter, time.Time{}, "0 9 * * 1"), core.Croniter, nil},
		{"cron malformed", rule(core.Croniter, time.Time{}, "61 * * * *"), "", core.ErrInvalidCron},
		{"one time", rule(core.OneTime, start, ""), core.OneTime, nil},
		{"one time without start", rule(core.OneTime, time.Time{}, ""), "", core.ErrMissingStart},
		{"unknown", rule("unknown", start, ""), "", core.ErrUnsupportedSchedule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse(tt.rule, Options{})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, s.Kind())
		})
	}
}

func TestRegister(t *testing.T) {
	kind := core.ScheduleKind("weekly")
	t.Cleanup(func() { delete(parsers, kind) })

	Register(kind, func(r core.Rule, _ Options) (Schedule, error) {
		return Interval{Start: r.ScheduleStart, Days: 7}, nil
	})

	s, err := Parse(rule(kind, day(2024, 1, 1), ""), Options{})
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: day(2024, 1, 1), Days: 7}, s)
}

func TestParseDayTokens(t *testing.T) {
	tokens, err := ParseDayTokens(" 1 , LAST ,28")
	require.NoError(t, err)
	assert.Equal(t, []DayToken{{Day: 1}, {Last: true}, {Day: 28}}, tokens)
	assert.Equal(t, "last", tokens[1].String())
	assert.Equal(t, "28", tokens[2].String())

	for _, bad := range []string{"0", "29", "31", "-1", "+5", "first", "", "1,,2", "15.0"} {
		t.Run(bad, func(t *testing.T) {
			_, err := ParseDayTokens(bad)
			assert.ErrorIs(t, err, core.ErrUnsupportedDayToken)
		})
	}
}
