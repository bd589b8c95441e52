package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"cashflow/internal/core"
	"cashflow/internal/log"
	"cashflow/internal/schedule"
	"cashflow/internal/sheets"
)

// ProjectorConfig holds the inputs of a projection that are not rules.
type ProjectorConfig struct {
	StartingBalance   decimal.Decimal
	Days              int
	Workers           int
	CronMaxIterations int
}

// Projection is the result of one run.
type Projection struct {
	Now    time.Time
	Window core.Window
	Rules  int
	Ledger *core.Ledger
}

// Projector turns the rules of a reader into a ledger
type Projector struct {
	rules  sheets.RuleReader
	config ProjectorConfig
	clock  func() time.Time
}

// NewProjector creates a projector reading rules from rules.
func NewProjector(rules sheets.RuleReader, config ProjectorConfig) *Projector {
	return &Projector{
		rules:  rules,
		config: config,
		clock:  time.Now,
	}
}

// WithClock replaces the source of "now".
func (p *Projector) WithClock(clock func() time.Time) *Projector {
	p.clock = clock
	return p
}

// Project reads all rules and projects them from the current instant.
func (p *Projector) Project(ctx context.Context) (*Projection, error) {
	if p.rules == nil {
		return nil, errors.New("projector not properly initialized")
	}
	rules, err := p.rules.ReadRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}
	return ProjectRules(ctx, rules, p.clock(), p.config)
}

// ProjectRules expands rules over [now, now+Days) and builds the ledger.
// now is sampled once by the caller and shared by every rule.
func ProjectRules(ctx context.Context, rules []core.Rule, now time.Time, config ProjectorConfig) (*Projection, error) {
	window, err := core.NewWindow(now, config.Days)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Projecting transactions",
		log.FieldComponent, log.ComponentProjection,
		log.FieldRules, len(rules),
		log.FieldStartingBalance, config.StartingBalance.StringFixed(2),
		log.FieldDays, config.Days,
		log.FieldWindowStart, window.Start.Format(time.DateTime),
		log.FieldWindowEnd, window.End.Format(time.DateTime))

	collector := NewCollector(CollectorConfig{
		Workers:  config.Workers,
		Schedule: schedule.Options{CronMaxIterations: config.CronMaxIterations},
	})
	occurrences, err := collector.Collect(ctx, rules, window)
	if err != nil {
		return nil, err
	}

	ledger, err := BuildLedger(occurrences, config.StartingBalance)
	if err != nil {
		return nil, err
	}

	stats := ledger.Stats()
	slog.InfoContext(ctx, "Projection complete",
		log.FieldComponent, log.ComponentProjection,
		log.FieldOccurrences, stats.Count,
		log.FieldStartingBalance, config.StartingBalance.StringFixed(2),
		log.FieldMinBalance, stats.Min.StringFixed(2),
		log.FieldMaxBalance, stats.Max.StringFixed(2),
		log.FieldMeanBalance, stats.Mean.StringFixed(2))

	return &Projection{
		Now:    now,
		Window: window,
		Rules:  len(rules),
		Ledger: ledger,
	}, nil
}
