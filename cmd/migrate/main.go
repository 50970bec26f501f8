package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/kirana/internal/config"
	"github.com/MrJamesThe3rd/kirana/internal/database"
	"github.com/MrJamesThe3rd/kirana/internal/database/migrations"
)

var errUsage = errors.New("usage")

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if err := run(flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			printUsage()
			os.Exit(2)
		}

		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := migrations.New(db)
	if err != nil {
		return err
	}
	defer m.Close()

	switch args[0] {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "steps":
		n, err := intArg(args)
		if err != nil {
			return err
		}

		return m.Steps(n)
	case "force":
		v, err := intArg(args)
		if err != nil {
			return err
		}

		return m.Force(v)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}

		fmt.Printf("version %d (dirty: %t)\n", version, dirty)

		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

func intArg(args []string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s needs a number: %w", args[0], errUsage)
	}

	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number: %w", args[0], args[1], errUsage)
	}

	return n, nil
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Usage: migrate <command> [arg]

Commands:
  up           apply all pending migrations
  down         roll back every migration
  steps N      apply N migrations (negative N rolls back)
  version      print the current schema version
  force V      set the version without running migrations
`)
}
