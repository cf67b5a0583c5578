package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/config"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/database"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/logger"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/services"
)

const usage = `usage: budgetcast <command> [flags]

commands:
  forecast      list projected transactions
  balances      list projected transactions with running balances
  summary       lowest balance and first overdraft per bank channel
  payoff        compare debt payoff strategies
  deferred      deferred-interest promotions by expiry
  regenerate    replace unposted transactions with a fresh horizon
  transactions  list stored transactions
  import        load entities from a JSON bundle
`

// app bundles the services every command runs against.
type app struct {
	cfg       *config.Config
	out       io.Writer
	snapshots services.SnapshotStorer
	forecast  services.ForecastServicer
	payoff    services.PayoffServicer
	schedule  services.ScheduleServicer
	imports   services.ImportServicer
}

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"forecast":     runForecast,
	"balances":     runBalances,
	"summary":      runSummary,
	"payoff":       runPayoff,
	"deferred":     runDeferred,
	"regenerate":   runRegenerate,
	"transactions": runTransactions,
	"import":       runImport,
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		logger.Get().Fatalf("budgetcast: %v", err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	snapshots := services.NewSnapshotService(db)
	a := &app{
		cfg:       cfg,
		out:       out,
		snapshots: snapshots,
		forecast:  services.NewForecastService(snapshots),
		payoff:    services.NewPayoffService(snapshots),
		schedule:  services.NewScheduleService(db, snapshots),
		imports:   services.NewImportService(db),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cmd(ctx, a, args[1:])
}

// newFlagSet returns a flag set carrying the output format flag shared by
// every command.
func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	format := fs.String("format", formatTable, "output format: table, json or csv")
	return fs, format
}
