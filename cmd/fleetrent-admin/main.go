// Package main is the entry point for the FleetRent admin CLI.
// It manages user accounts directly against the database and is meant
// for operators, not API clients.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/fleetrent/fleetrent/internal/config"
	"github.com/fleetrent/fleetrent/internal/repository"
	"github.com/fleetrent/fleetrent/internal/repository/postgres"
	"github.com/fleetrent/fleetrent/internal/repository/sqlite"
	"github.com/fleetrent/fleetrent/internal/service"
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

	switch os.Args[1] {
	case "version":
		fmt.Printf("FleetRent Admin CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "user":
		if err := runUserCommand(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runUserCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("user subcommand required: create, create-superuser, list, delete")
	}

	ctx := context.Background()

	switch args[0] {
	case "create", "create-superuser":
		fs := flag.NewFlagSet("user "+args[0], flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		email := fs.String("email", "", "email address (required)")
		name := fs.String("name", "", "display name")
		password := fs.String("password", "", "password (required)")
		fs.Parse(args[1:])

		users, cleanup, err := openUserService(ctx, *configPath)
		if err != nil {
			return err
		}
		defer cleanup()

		input := service.CreateUserInput{Email: *email, Name: *name, Password: *password}

		var out *service.CreateUserOutput
		if args[0] == "create-superuser" {
			out, err = users.CreateSuperuser(ctx, input)
		} else {
			out, err = users.Create(ctx, input)
		}
		if err != nil {
			return err
		}

		fmt.Printf("created user %d (%s)\n", out.User.ID, out.User.Email)
		return nil

	case "list":
		fs := flag.NewFlagSet("user list", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		fs.Parse(args[1:])

		users, cleanup, err := openUserService(ctx, *configPath)
		if err != nil {
			return err
		}
		defer cleanup()

		list, err := users.List(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("%-6s %-30s %-20s %-8s %-10s\n", "ID", "EMAIL", "NAME", "ACTIVE", "SUPERUSER")
		for _, u := range list {
			fmt.Printf("%-6d %-30s %-20s %-8t %-10t\n", u.ID, u.Email, u.Name, u.IsActive, u.IsSuperuser)
		}
		return nil

	case "delete":
		fs := flag.NewFlagSet("user delete", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		id := fs.Int64("id", 0, "user ID (required)")
		fs.Parse(args[1:])

		if *id == 0 {
			return fmt.Errorf("--id is required")
		}

		users, cleanup, err := openUserService(ctx, *configPath)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := users.Delete(ctx, *id); err != nil {
			return err
		}

		fmt.Printf("deleted user %d\n", *id)
		return nil

	default:
		return fmt.Errorf("unknown user subcommand: %s", args[0])
	}
}

// openUserService connects to the configured database and returns a
// user service plus a cleanup func.
func openUserService(ctx context.Context, configPath string) (*service.UserService, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	// CLI output goes to stdout; keep log noise down.
	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)

	var repos *repository.Repositories
	var cleanup func()

	if cfg.Database.IsEmbedded() {
		dbCfg := sqlite.DefaultConfig(cfg.Database.Path)
		dbCfg.JournalMode = cfg.Database.JournalMode
		dbCfg.BusyTimeout = cfg.Database.BusyTimeout

		db, err := sqlite.NewDB(ctx, dbCfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		repos = sqlite.NewRepositories(db)
		cleanup = func() { db.Close() }
	} else {
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
			return nil, nil, err
		}
		repos = postgres.NewRepositories(db)
		cleanup = func() { db.Close() }
	}

	return service.NewUserService(repos.User, logger), cleanup, nil
}

func printUsage() {
	fmt.Println(`FleetRent Admin CLI

Usage:
  fleetrent-admin <command> [arguments]

Commands:
  user        Manage users (create, create-superuser, list, delete)
  version     Print version information
  help        Show this help message

Examples:
  fleetrent-admin user create --email owner@example.com --name "Owner" --password secret
  fleetrent-admin user create-superuser --email admin@example.com --password secret
  fleetrent-admin user list
  fleetrent-admin user delete --id 3

Use "fleetrent-admin user <subcommand> --help" for flag details.`)
}
