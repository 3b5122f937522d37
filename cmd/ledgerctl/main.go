// Command ledgerctl is a small operational CLI for the schema this module
// owns: it applies, inspects, and reverts migrations against a sync database
// connection. Grounded on the teacher's runDatabaseMigrations
// (cmd/mma_backend/main.go), which performs the same sql.Open/postgres.
// WithInstance/migrate.NewWithDatabaseInstance sequence inline at server
// startup; split out here into a standalone binary because this repo is a
// library with no server of its own to start migrations from.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/ledger/internal/apperrors"
	"github.com/SscSPs/ledger/internal/config"
	"github.com/SscSPs/ledger/internal/migrations"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	settings, err := config.Load()
	if err != nil {
		logger.Error("failed to load settings", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if settings.DB.URL == "" {
		logger.Error("DATABASE_URL is not set")
		os.Exit(1)
	}

	runner, err := migrations.NewRunner(settings.DB.URL)
	if err != nil {
		logger.Error("failed to open migration runner", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := runner.Close(); err != nil {
			logger.Warn("error closing migration runner", slog.String("error", err.Error()))
		}
	}()

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "up":
		err = runner.UpgradeToHead()
	case "to":
		fs := flag.NewFlagSet("to", flag.ExitOnError)
		version := fs.Uint("version", 0, "target schema version")
		_ = fs.Parse(args)
		err = runner.UpgradeTo(*version)
	case "down":
		fs := flag.NewFlagSet("down", flag.ExitOnError)
		steps := fs.Int("steps", 1, "number of migrations to revert")
		_ = fs.Parse(args)
		err = runner.Downgrade(*steps)
	case "status":
		err = printStatus(logger, runner)
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ExitOnError)
		version := fs.Uint("version", 0, "expected schema version")
		_ = fs.Parse(args)
		err = runner.ValidateVersion(*version)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		if errors.Is(err, apperrors.ErrVersionMismatch) {
			logger.Error("schema version mismatch", slog.String("error", err.Error()))
		} else {
			logger.Error("command failed", slog.String("command", cmd), slog.String("error", err.Error()))
		}
		os.Exit(1)
	}
}

func printStatus(logger *slog.Logger, runner *migrations.Runner) error {
	version, dirty, err := runner.CurrentVersion()
	if err != nil {
		return err
	}
	pending, err := runner.PendingMigrations()
	if err != nil {
		return err
	}
	logger.Info("schema status",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
		slog.Int("pending_count", len(pending)),
	)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `ledgerctl: manage the ledger's database schema

usage:
  ledgerctl up                  apply every pending migration
  ledgerctl to -version=N       migrate forward or backward to exactly N
  ledgerctl down -steps=N       revert N migrations (default 1)
  ledgerctl status              print current version, dirty flag, pending count
  ledgerctl validate -version=N fail unless the schema is exactly at version N

DATABASE_URL (or PYACC__DATABASE_URL) selects the target database.`)
}
