package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kevin07696/settlement-ledger/internal/adapters/database"
	"github.com/kevin07696/settlement-ledger/internal/config"
	"github.com/kevin07696/settlement-ledger/internal/services/ledger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn := os.Getenv("DATABASE_URL")
	defaults := ledger.Defaults{}
	if cfg, err := config.LoadFromEnv(); err == nil {
		if dsn == "" {
			dsn = cfg.Database.URL()
		}
		defaults.FreezePeriodDays = cfg.Ledger.DefaultFreezePeriodDays
		defaults.CommissionPercent = cfg.Ledger.DefaultCommissionPercent
	}
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "set DATABASE_URL or DB_* variables")
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := database.NewPostgreSQLAdapter(connectCtx, database.DefaultPostgreSQLConfig(dsn), logger)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	opts := []ledger.Option{}
	if defaults.FreezePeriodDays > 0 {
		opts = append(opts, ledger.WithDefaults(defaults))
	}

	cli := &ledgerCLI{
		svc: ledger.NewLedgerService(db.Queries(), db, logger, opts...),
		out: os.Stdout,
	}
	if err := cli.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
