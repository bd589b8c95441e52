package main

import (
	"context"
	"errors"
	"os"
	"time"

	"cashflow/internal/amqp"
	"cashflow/internal/cli"
	"cashflow/internal/config"
	"cashflow/internal/log"
	"cashflow/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	cfg := config.Load()
	logger := cli.SetupLogger(cfg.Debug).WithComponent(log.ComponentWorker)

	logger.Info("Starting ledger-indexer", log.FieldOperation, log.OpStartup)

	if err := cli.ValidateConfig(logger, cfg); err != nil {
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required")
		os.Exit(1)
	}

	repo, err := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	if err != nil {
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 10*time.Second, func() {
		if err := repo.Close(); err != nil {
			logger.Warn("Failed to close ledger index", log.FieldError, err)
		}
	})

	client, err := amqp.NewClient(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	w := worker.NewIndexWorker(repo, time.Local)
	go func() {
		err := client.ConsumeLedgers(ctx, w.HandleLedgerMessage)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", log.FieldError, err)
			os.Exit(1)
		}
	}()

	logger.Info("Ledger indexer running",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue,
		log.FieldPath, cfg.SQLiteDBPath)

	cli.WaitForShutdown(ctx, done)
}
