package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"foodshare/internal/pkg/config"
	"foodshare/internal/pkg/dotenv"
	"foodshare/internal/pkg/migrator"
	"foodshare/internal/pkg/postgres"
	"foodshare/pkg/logger"
	"foodshare/pkg/logger/zap_adapter"

	"github.com/spf13/cobra"
)

func main() {
	if err := dotenv.LoadFile(".env"); err != nil {
		stdlog.Fatalf("failed to load environment: %v", err)
	}

	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"), "foodshare-migrate")
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}

	err = run(zapLogger)
	_ = zapLogger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := newRootCmd(log).ExecuteContext(ctx); err != nil {
		log.Error("migrate failed", logger.NewField("error", err))
		return err
	}
	return nil
}

func newRootCmd(log logger.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply foodshare Postgres schema migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		migrationCmd(log, "up", "Apply all pending migrations", func(ctx context.Context, m *migrator.Migrator) error {
			return m.Up(ctx)
		}),
		migrationCmd(log, "down", "Roll back the latest migration", func(ctx context.Context, m *migrator.Migrator) error {
			return m.Down(ctx)
		}),
		migrationCmd(log, "reset", "Roll back all migrations", func(ctx context.Context, m *migrator.Migrator) error {
			return m.Reset(ctx)
		}),
		migrationCmd(log, "status", "Print migration status", func(ctx context.Context, m *migrator.Migrator) error {
			return m.Status(ctx)
		}),
		migrationCmd(log, "version", "Print current schema version", func(ctx context.Context, m *migrator.Migrator) error {
			version, err := m.Version(ctx)
			if err != nil {
				return err
			}
			log.Info("schema version", logger.NewField("version", version))
			return nil
		}),
	)

	return root
}

func migrationCmd(
	log logger.Logger,
	use, short string,
	action func(ctx context.Context, m *migrator.Migrator) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd.Context(), log, action)
		},
	}
}

func withMigrator(ctx context.Context, log logger.Logger, action func(ctx context.Context, m *migrator.Migrator) error) error {
	dbCfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("load database config: %w", err)
	}

	pool, err := postgres.NewConnPool(ctx, log, dbCfg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	m, err := migrator.New(pool, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Error("failed to close migrator", logger.NewField("error", err))
		}
	}()

	return action(ctx, m)
}
