package commands

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cashflow/internal/log"
)

func newWatchCommand(a *app) *cobra.Command {
	var interval time.Duration
	var once bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-project on an interval and keep the ledger index current",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("interval") {
				a.cfg.WatchInterval = interval
			}
			if a.cfg.WatchInterval <= 0 {
				return errors.New("watch interval must be positive")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, once)
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "time between projections (default WATCH_INTERVAL)")
	cmd.Flags().BoolVar(&once, "once", false, "run a single cycle and exit")
	return cmd
}

func (a *app) watch(ctx context.Context, once bool) error {
	rules, err := a.reader(ctx, a.cfg.RulesCacheTTL)
	if err != nil {
		return err
	}
	projector := a.projector(rules)

	logger := a.logger.WithComponent(log.ComponentWorker)
	logger.InfoContext(ctx, "Watch started",
		"interval", a.cfg.WatchInterval,
		log.FieldIndex, a.cfg.LedgerIndex)

	cycle := func() error {
		p, err := projector.Project(ctx)
		if err != nil {
			return err
		}
		return a.index(ctx, p)
	}

	if err := cycle(); err != nil {
		return err
	}
	if once {
		return nil
	}

	ticker := time.NewTicker(a.cfg.WatchInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Watch stopped", log.FieldOperation, log.OpShutdown)
			return nil
		case <-ticker.C:
			// A failing cycle keeps the previous index; the next tick retries.
			if err := cycle(); err != nil {
				logger.LogError(ctx, "Projection cycle failed", err, log.OpProject, nil)
			}
		}
	}
}
