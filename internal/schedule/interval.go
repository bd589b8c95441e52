package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"cashflow/internal/core"
)

// Interval fires every Days days after Start. Start itself never fires.
type Interval struct {
	Start time.Time
	Days  int
}

func parseInterval(r core.Rule, _ Options) (Schedule, error) {
	start, err := requireStart(r)
	if err != nil {
		return nil, err
	}
	expr := strings.TrimSpace(r.ScheduleExpr)
	// Spreadsheet numbers can arrive as "7.0".
	n, err := decimal.NewFromString(expr)
	if err != nil || !n.IsInteger() || !n.IsPositive() {
		return nil, fmt.Errorf("%w: %q is not a positive number of days", core.ErrInvalidInterval, expr)
	}
	return Interval{Start: start, Days: int(n.IntPart())}, nil
}

func (Interval) Kind() core.ScheduleKind { return core.Interval }

// Expand walks start + k*Days for k = 1, 2, ... Dates before the window are
// skipped; the walk stops at the first date past the window end.
func (s Interval) Expand(w core.Window) []time.Time {
	var out []time.Time
	for k := 1; ; k++ {
		next := s.Start.AddDate(0, 0, k*s.Days)
		if w.Ended(next) {
			break
		}
		if next.Before(w.Start) {
			continue
		}
		out = append(out, next)
	}
	return out
}
