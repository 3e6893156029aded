// Package main is the entry point for the FleetRent database migration tool.
// It applies the embedded schema to the configured SQLite or PostgreSQL
// database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/fleetrent/fleetrent/internal/config"
	"github.com/fleetrent/fleetrent/internal/repository/postgres"
	"github.com/fleetrent/fleetrent/internal/repository/sqlite"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version":
		fmt.Printf("FleetRent Migration Tool\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "up", "status":
		if err := runMigrateCommand(command, os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runMigrateCommand(command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if cfg.Database.IsEmbedded() {
		return runSQLite(ctx, command, cfg, logger)
	}
	return runPostgres(ctx, command, cfg, logger)
}

func runSQLite(ctx context.Context, command string, cfg *config.Config, logger zerolog.Logger) error {
	dbCfg := sqlite.DefaultConfig(cfg.Database.Path)
	dbCfg.JournalMode = cfg.Database.JournalMode
	dbCfg.BusyTimeout = cfg.Database.BusyTimeout

	db, err := sqlite.NewDB(ctx, dbCfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	switch command {
	case "up":
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		fmt.Println("migrations applied")
	case "status":
		var version int
		err := db.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
		if err != nil {
			fmt.Println("schema version: none (schema_migrations missing)")
			return nil
		}
		fmt.Printf("schema version: %d\n", version)
	}
	return nil
}

func runPostgres(ctx context.Context, command string, cfg *config.Config, logger zerolog.Logger) error {
	db, err := postgres.NewDB(ctx, postgres.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Database:     cfg.Database.Database,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	}, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	switch command {
	case "up":
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		fmt.Println("migrations applied")
	case "status":
		var version int
		err := db.Pool.QueryRow(ctx,
			`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
		if err != nil {
			fmt.Println("schema version: none (schema_migrations missing)")
			return nil
		}
		fmt.Printf("schema version: %d\n", version)
	}
	return nil
}

func printUsage() {
	fmt.Println(`FleetRent Migration Tool

Usage:
  fleetrent-migrate <command> [arguments]

Commands:
  up          Apply all pending migrations
  status      Show current schema version
  version     Print version information
  help        Show this help message

Configuration:
  The database connection is read from the same config file and
  FLEETRENT_* environment variables as the server.

Examples:
  fleetrent-migrate up --config configs/config.yaml
  fleetrent-migrate status`)
}
