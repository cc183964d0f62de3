package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/kevin07696/settlement-ledger/internal/adapters/secrets"
	"github.com/kevin07696/settlement-ledger/internal/config"
	"github.com/kevin07696/settlement-ledger/internal/db"
)

const (
	dialect = "postgres"

	// create writes new files, so it always targets the source tree
	sourceMigrationsDir = "internal/db/migrations"
)

var (
	flags = flag.NewFlagSet("migrate", flag.ExitOnError)
	dir   = flags.String("dir", "", "read migrations from this directory instead of the embedded set")
)

func main() {
	flags.Usage = usage
	_ = flags.Parse(os.Args[1:])

	args := flags.Args()
	if len(args) < 1 {
		flags.Usage()
		return
	}

	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, args[0], args[1:], logger); err != nil {
		logger.Fatal("Migration failed", zap.String("command", args[0]), zap.Error(err))
	}
}

func run(ctx context.Context, command string, args []string, logger *zap.Logger) error {
	fsys, path := migrationSource(command, *dir)
	goose.SetBaseFS(fsys)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	// create only touches files
	if command == "create" {
		return goose.RunContext(ctx, command, nil, path, args...)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	mgr, err := secrets.NewFromConfig(ctx, cfg.Secrets, logger)
	if err != nil {
		return err
	}
	if cfg.Database.Password, err = secrets.Resolve(ctx, mgr, cfg.Secrets.DBPasswordPath, cfg.Database.Password); err != nil {
		return fmt.Errorf("database password: %w", err)
	}

	conn, err := sql.Open("pgx", cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Running migrations",
		zap.String("command", command),
		zap.String("database", cfg.Database.Database),
		zap.Bool("embedded", fsys != nil),
	)
	return goose.RunContext(ctx, command, conn, path, args...)
}

// migrationSource picks the embedded migrations unless a directory is given.
// A nil FS makes goose read the OS filesystem.
func migrationSource(command, dir string) (fs.FS, string) {
	switch {
	case dir != "":
		return nil, dir
	case command == "create":
		return nil, sourceMigrationsDir
	default:
		return db.Migrations, db.MigrationsDir
	}
}

func usage() {
	fmt.Print(`Usage: migrate [-dir DIR] COMMAND

Reads DB_* settings (and DB_PASSWORD_SECRET_PATH via SECRET_MANAGER) like the server.
Migrations are embedded in the binary unless -dir is set.

Commands:
    up                   Migrate the DB to the most recent version available
    up-by-one            Migrate the DB up by 1
    up-to VERSION        Migrate the DB to a specific VERSION
    down                 Roll back the version by 1
    down-to VERSION      Roll back to a specific VERSION
    redo                 Re-run the latest migration
    reset                Roll back all migrations
    status               Dump the migration status for the current DB
    version              Print the current version of the database
    create NAME [sql|go] Creates new migration file in internal/db/migrations

Examples:
    migrate up
    migrate status
    migrate create add_settlement_holds sql
`)
}
