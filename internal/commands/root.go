package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"cashflow/internal/backend"
	"cashflow/internal/cli"
	"cashflow/internal/config"
	"cashflow/internal/log"
	"cashflow/internal/services"
	"cashflow/internal/sheets"
)

// app is the state shared by every subcommand once flags are resolved.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	clock  func() time.Time
	loc    *time.Location

	flags struct {
		rules          string
		backend        string
		balance        string
		days           int
		cronIterations int
		workers        int
		index          string
		db             string
		debug          bool
	}
}

// NewRootCommand creates the cashflow CLI with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{clock: time.Now, loc: time.Local})
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cashflow",
		Short: "Project recurring transactions into a dated balance ledger",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.flags.rules, "rules", "", "rules file (.xlsx, .xlsm or .csv); selects the file backend")
	pf.StringVar(&a.flags.backend, "backend", "", "rule source: file or sheets")
	pf.StringVar(&a.flags.balance, "balance", "", "starting balance")
	pf.IntVar(&a.flags.days, "days", 0, "days to project from now")
	pf.IntVar(&a.flags.cronIterations, "cron-iterations", 0, "max cron steps per rule (0 = days)")
	pf.IntVar(&a.flags.workers, "workers", 0, "rules expanded concurrently")
	pf.StringVar(&a.flags.index, "index", "", "ledger index name")
	pf.StringVar(&a.flags.db, "db", "", "SQLite ledger index path")
	pf.BoolVar(&a.flags.debug, "debug", false, "verbose logging")

	rootCmd.AddCommand(
		newProjectCommand(a),
		newIndexCommand(a),
		newPublishCommand(a),
		newWatchCommand(a),
	)
	return rootCmd
}

// init loads the environment, applies explicitly set flags on top of it and
// validates the result.
func (a *app) init(cmd *cobra.Command) error {
	cli.LoadEnvFile()
	cfg := config.Load()

	flags := cmd.Flags()
	if flags.Changed("rules") {
		cfg.RulesFile = a.flags.rules
		if !flags.Changed("backend") {
			cfg.DataBackend = config.BackendFile
		}
	}
	if flags.Changed("backend") {
		cfg.DataBackend = a.flags.backend
	}
	if flags.Changed("balance") {
		balance, err := decimal.NewFromString(a.flags.balance)
		if err != nil {
			return fmt.Errorf("invalid --balance %q: %w", a.flags.balance, err)
		}
		cfg.StartingBalance = balance
	}
	if flags.Changed("days") {
		cfg.ProjectionDays = a.flags.days
	}
	if flags.Changed("cron-iterations") {
		cfg.CronMaxIterations = a.flags.cronIterations
	}
	if flags.Changed("workers") {
		cfg.Workers = a.flags.workers
	}
	if flags.Changed("index") {
		cfg.LedgerIndex = a.flags.index
	}
	if flags.Changed("db") {
		cfg.SQLiteDBPath = a.flags.db
	}
	if flags.Changed("debug") {
		cfg.Debug = a.flags.debug
	}

	a.logger = cli.SetupLogger(cfg.Debug)
	if err := cli.ValidateConfig(a.logger, cfg); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// reader builds the configured rule source, cached for ttl when positive.
func (a *app) reader(ctx context.Context, ttl time.Duration) (sheets.RuleReader, error) {
	bcfg, err := backend.FromAppConfig(a.cfg)
	if err != nil {
		return nil, err
	}
	bcfg.CacheTTL = ttl
	bcfg.Location = a.loc
	reader, err := backend.NewFactory(a.logger.Logger).CreateReader(ctx, bcfg)
	if err != nil {
		a.logger.LogError(ctx, "Failed to create rule reader", err, log.OpRead,
			log.LogFields{log.FieldBackend: bcfg.Type})
		return nil, err
	}
	return reader, nil
}

func (a *app) projector(rules sheets.RuleReader) *services.Projector {
	return services.NewProjector(rules, services.ProjectorConfig{
		StartingBalance:   a.cfg.StartingBalance,
		Days:              a.cfg.ProjectionDays,
		Workers:           a.cfg.Workers,
		CronMaxIterations: a.cfg.CronMaxIterations,
	}).WithClock(a.clock)
}

// project reads the rules once and projects them.
func (a *app) project(ctx context.Context) (*services.Projection, error) {
	rules, err := a.reader(ctx, 0)
	if err != nil {
		return nil, err
	}
	return a.projector(rules).Project(ctx)
}
