package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	config "github.com/mwantia/pathways/internal/config/server"
	"github.com/mwantia/pathways/pkg/db/migrations"
	"github.com/mwantia/pathways/pkg/db/store"
	"github.com/mwantia/pathways/pkg/log"
)

func NewMigrationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrations",
		Short: "Inspect and apply schema migrations",
		Long: `Inspect and apply the schema migrations of the sqlite or postgres metadata store.
The agent applies pending migrations on start; these commands exist for
operators who need to check or revert a schema change by hand.`,
	}

	cmd.AddCommand(newMigrationsStatusCommand())
	cmd.AddCommand(newMigrationsUpCommand())
	cmd.AddCommand(newMigrationsDownCommand())

	return cmd
}

// schemaStore is a metadata store with a versioned schema.
type schemaStore interface {
	Connect(ctx context.Context) error
	Close() error
	Migrator() *migrations.Migrator
}

// withMigrator opens the configured store without migrating it.
func withMigrator(cmd *cobra.Command, fn func(*migrations.Migrator) error) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}

	logger := log.NewWriterLogger("pathways", cfg.Log, cmd.ErrOrStderr()).Named("db")

	var st schemaStore
	switch cfg.Metadata.Type {
	case "sqlite":
		st, err = store.NewSQLiteStore(store.SQLiteConfig{
			Path:   cfg.Metadata.SQLite.Path,
			Logger: logger,
		})
	case "postgres":
		st, err = store.NewPostgresStore(store.PostgresConfig{
			DSN:          cfg.Metadata.Postgres.DSN,
			MaxOpenConns: cfg.Metadata.Postgres.MaxOpenConns,
			Logger:       logger,
		})
	default:
		return fmt.Errorf("no schema to migrate (metadata.type is '%s')", cfg.Metadata.Type)
	}
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Connect(cmd.Context()); err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", cfg.Metadata.Type, err)
	}
	return fn(st.Migrator())
}

func newMigrationsStatusCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "List migrations and when they were applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m *migrations.Migrator) error {
				statuses, err := m.Status(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(statuses)
				}
				return printMigrations(cmd.OutOrStdout(), statuses)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")

	return cmd
}

func printMigrations(w io.Writer, statuses []migrations.MigrationStatus) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tAPPLIED\tDESCRIPTION")
	for _, s := range statuses {
		applied := "pending"
		if s.Applied() {
			applied = s.AppliedAt.Local().Format(time.DateTime)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Version, applied, s.Description)
	}
	return tw.Flush()
}

func newMigrationsUpCommand() *cobra.Command {
	var target int

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m *migrations.Migrator) error {
				if target <= 0 {
					target = m.Latest()
				}
				if err := m.MigrateTo(cmd.Context(), target); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Schema is at version %d\n", target)
				return err
			})
		},
	}

	cmd.Flags().IntVar(&target, "to", 0, "Stop after this version (default: latest)")

	return cmd
}

func newMigrationsDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Revert the most recently applied migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m *migrations.Migrator) error {
				reverted, err := m.Rollback(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Reverted %d (%s)\n", reverted.Version, reverted.Description)
				return err
			})
		},
	}
}
