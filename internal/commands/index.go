package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cashflow/internal/cli"
	"cashflow/internal/log"
	"cashflow/internal/services"
)

func newIndexCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Project and replace the ledger index with the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p, err := a.project(ctx)
			if err != nil {
				return err
			}
			if err := a.index(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d documents into %q\n", p.Ledger.Len(), a.cfg.LedgerIndex)
			return nil
		},
	}
}

// index replaces the configured index with the projection.
func (a *app) index(ctx context.Context, p *services.Projection) error {
	repo, err := cli.InitSQLite(a.logger, a.cfg.SQLiteDBPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	name := a.cfg.LedgerIndex
	if err := repo.IndexLedger(ctx, name, p.Ledger); err != nil {
		a.logger.LogError(ctx, "Failed to index ledger", err, log.OpIndex, log.NewFields().WithIndex(name, p.Ledger.Len()))
		return err
	}
	return nil
}
