package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sakif/starwars-api/internal/config"
	"github.com/sakif/starwars-api/internal/repository/sqlstore"
	"github.com/sakif/starwars-api/internal/server"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "server",
		Short: "Star Wars API - users, people, planets and favorites over HTTP",
		Long: `A JSON REST API storing users, Star Wars people and planets, and each
user's favorite people and planets.

Storage is SQLite by default (DB_PATH). Set DATABASE_URL to a postgres://
URL to use PostgreSQL instead. Every flag can also be set through the
environment or a .env file.`,
		SilenceUsage: true,
		RunE:         runServe,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE:  runServe,
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema and exit",
		Long: `Create any missing tables and exit. The server does the same on start,
so this is only needed to prepare a database ahead of a deploy.`,
		RunE: runMigrate,
	})

	return root
}

// setup loads configuration, installs the logger as the slog default and
// makes sure a SQLite file's directory exists.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	dsn := cfg.DSN()
	if sqlstore.DialectFor(dsn) == sqlstore.SQLite && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		// os.MkdirAll is a no-op when the directory already exists.
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	}

	return cfg, logger, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port: cfg.Port,
		DSN:  cfg.DSN(),
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Start blocks until SIGINT/SIGTERM.
	return srv.Start()
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	db, err := sqlstore.New(cfg.DSN())
	if err != nil {
		return fmt.Errorf("migrating: %w", err)
	}
	defer db.Close()

	logger.Info("schema up to date", slog.String("dialect", db.Dialect().String()))
	return nil
}
