package schedule

import (
	"time"

	"cashflow/internal/core"
)

// OneTime fires once, on Date.
type OneTime struct {
	Date time.Time
}

func parseOneTime(r core.Rule, _ Options) (Schedule, error) {
	start, err := requireStart(r)
	if err != nil {
		return nil, err
	}
	return OneTime{Date: start}, nil
}

func (OneTime) Kind() core.ScheduleKind { return core.OneTime }

func (s OneTime) Expand(w core.Window) []time.Time {
	if !w.Contains(s.Date) {
		return nil
	}
	return []time.Time{s.Date}
}
