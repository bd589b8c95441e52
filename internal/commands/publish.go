package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cashflow/internal/amqp"
	"cashflow/internal/log"
)

func newPublishCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Project and publish the ledger to the indexing queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if a.cfg.AMQPURL == "" {
				return errors.New("AMQP_URL is required to publish")
			}
			p, err := a.project(ctx)
			if err != nil {
				return err
			}

			client, err := amqp.NewClient(ctx, a.cfg.AMQPURL, a.cfg.AMQPExchange, a.cfg.AMQPQueue)
			if err != nil {
				return err
			}
			defer client.Close()

			msg := amqp.NewLedgerMessage(a.cfg.LedgerIndex, p.Ledger)
			if err := client.PublishLedger(ctx, msg); err != nil {
				a.logger.LogError(ctx, "Failed to publish ledger", err, log.OpPublish,
					log.NewFields().WithIndex(msg.Index, len(msg.Documents)))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %d documents for %q\n", len(msg.Documents), msg.Index)
			return nil
		},
	}
}
