// Package schedule turns the schedule columns of a rule into a concrete
// recurrence and expands it into dates.
//
// Each schedule kind is its own type carrying only the parameters it needs.
// Parse is the only place where an unknown kind can show up; once a Schedule
// exists, expanding it cannot fail.
package schedule

import (
	"fmt"
	"time"

	"cashflow/internal/core"
)

// Schedule is implemented by Interval, DaysInMonth, Cron and OneTime.
type Schedule interface {
	// Kind returns the schedule_type this schedule was parsed from.
	Kind() core.ScheduleKind
	// Expand returns the dates of the schedule inside w. Interval, Cron and
	// OneTime yield them in ascending order; DaysInMonth groups them by day
	// token. Callers that need chronological order sort the result.
	Expand(w core.Window) []time.Time
}

// Options tune expansion without being part of a rule.
type Options struct {
	// CronMaxIterations caps the number of fire times a cron schedule
	// computes. Zero means the window length in days.
	CronMaxIterations int
}

// ParseFunc builds the schedule of one kind from a rule.
type ParseFunc func(r core.Rule, opts Options) (Schedule, error)

// parsers maps schedule kinds to their parser.
var parsers = map[core.ScheduleKind]ParseFunc{
	core.Interval:    parseInterval,
	core.DaysInMonth: parseDaysInMonth,
	core.Croniter:    parseCron,
	core.OneTime:     parseOneTime,
}

// Parse returns the schedule described by r.
func Parse(r core.Rule, opts Options) (Schedule, error) {
	parse, ok := parsers[r.ScheduleType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedSchedule, r.ScheduleType.String())
	}
	return parse(r, opts)
}

// Register adds or replaces the parser of a schedule kind.
func Register(kind core.ScheduleKind, parse ParseFunc) {
	parsers[kind] = parse
}

func requireStart(r core.Rule) (time.Time, error) {
	if r.ScheduleStart.IsZero() {
		return time.Time{}, fmt.Errorf("%w for %s schedule", core.ErrMissingStart, r.ScheduleType)
	}
	return r.ScheduleStart, nil
}
