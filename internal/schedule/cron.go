package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"cashflow/internal/core"
)

// Cron fires on a standard 5-field cron expression.
type Cron struct {
	Expr string
	// MaxIterations caps the fire times computed per expansion. Zero means
	// the window length in days, so expressions firing more than once a day
	// can stop before the window end.
	MaxIterations int

	spec cron.Schedule
}

func parseCron(r core.Rule, opts Options) (Schedule, error) {
	return NewCron(r.ScheduleExpr, opts.CronMaxIterations)
}

// NewCron parses expr with the standard minute/hour/dom/month/dow parser.
func NewCron(expr string, maxIterations int) (Cron, error) {
	expr = strings.TrimSpace(expr)
	spec, err := cron.ParseStandard(expr)
	if err != nil {
		return Cron{}, fmt.Errorf("%w: %q: %w", core.ErrInvalidCron, expr, err)
	}
	return Cron{Expr: expr, MaxIterations: maxIterations, spec: spec}, nil
}

func (Cron) Kind() core.ScheduleKind { return core.Croniter }

func (s Cron) Expand(w core.Window) []time.Time {
	out, _ := s.ExpandCapped(w)
	return out
}

// ExpandCapped expands the schedule and also reports whether the iteration
// cap stopped the scan before the window end.
func (s Cron) ExpandCapped(w core.Window) (dates []time.Time, capped bool) {
	limit := s.MaxIterations
	if limit <= 0 {
		limit = w.Days
	}
	cursor := w.Start
	for i := 0; i < limit; i++ {
		next := s.spec.Next(cursor)
		if next.IsZero() || w.Ended(next) {
			return dates, false
		}
		cursor = next
		if next.Before(w.Start) {
			continue
		}
		dates = append(dates, next)
	}
	// The cap only matters if another fire time is still inside the window.
	next := s.spec.Next(cursor)
	return dates, !next.IsZero() && !w.Ended(next)
}
