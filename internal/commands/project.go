package commands

import (
	"github.com/spf13/cobra"

	"cashflow/internal/report"
)

func newProjectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "project",
		Short: "Print the projected ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.project(cmd.Context())
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), report.Run{
				Rules:           p.Rules,
				StartingBalance: p.Ledger.StartingBalance(),
				Window:          p.Window,
			}, p.Ledger)
		},
	}
}
