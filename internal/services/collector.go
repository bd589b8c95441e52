package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"cashflow/internal/core"
	"cashflow/internal/log"
	"cashflow/internal/schedule"
)

// CollectorConfig holds the tunables of the occurrence collector.
type CollectorConfig struct {
	// Workers bounds how many rules are expanded concurrently. Results are
	// merged in rule order, so any value gives the same output.
	Workers  int
	Schedule schedule.Options
}

// Collector expands every enabled rule of a run into occurrences.
type Collector struct {
	config CollectorConfig
}

// NewCollector creates a collector. Workers below 1 mean sequential expansion.
func NewCollector(config CollectorConfig) *Collector {
	if config.Workers < 1 {
		config.Workers = 1
	}
	return &Collector{config: config}
}

// Collect returns the unordered union of the occurrences of every enabled
// rule inside w. The first invalid rule aborts the whole collection.
func (c *Collector) Collect(ctx context.Context, rules []core.Rule, w core.Window) ([]core.Occurrence, error) {
	perRule := make([][]core.Occurrence, len(rules))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.Workers)

	for i, r := range rules {
		if !r.Enabled {
			slog.InfoContext(ctx, "Rule disabled, skipping",
				log.FieldRow, i+1,
				log.FieldItem, r.Item)
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			occurrences, err := c.expandRule(gctx, r, w)
			if err != nil {
				return fmt.Errorf("rule %d (%q): %w", i+1, r.Item, err)
			}
			perRule[i] = occurrences
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, occ := range perRule {
		total += len(occ)
	}
	out := make([]core.Occurrence, 0, total)
	for _, occ := range perRule {
		out = append(out, occ...)
	}
	return out, nil
}

func (c *Collector) expandRule(ctx context.Context, r core.Rule, w core.Window) ([]core.Occurrence, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	sched, err := schedule.Parse(r, c.config.Schedule)
	if err != nil {
		return nil, err
	}

	var dates []time.Time
	if cron, ok := sched.(schedule.Cron); ok {
		var capped bool
		dates, capped = cron.ExpandCapped(w)
		if capped {
			slog.WarnContext(ctx, "Cron iteration cap reached before the window end",
				log.FieldItem, r.Item,
				log.FieldScheduleExpr, cron.Expr,
				log.FieldOccurrences, len(dates))
		}
	} else {
		dates = sched.Expand(w)
	}

	slog.DebugContext(ctx, "Rule expanded",
		log.FieldItem, r.Item,
		log.FieldScheduleType, sched.Kind().String(),
		log.FieldScheduleExpr, r.ScheduleExpr,
		log.FieldOccurrences, len(dates))

	out := make([]core.Occurrence, len(dates))
	for i, d := range dates {
		slog.DebugContext(ctx, "Next event",
			log.FieldItem, r.Item,
			log.FieldDate, d.Format(time.DateTime))
		out[i] = r.Occurrence(d)
	}
	return out, nil
}
