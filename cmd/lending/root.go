package main

import (
	"context"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/lending-service/lending/app"
	"github.com/Astemirdum/lending-service/lending/config"
	"github.com/Astemirdum/lending-service/lending/migrations"
	"github.com/Astemirdum/lending-service/pkg/logger"
	"github.com/Astemirdum/lending-service/pkg/postgres"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type rootFlags struct {
	debug   bool
	storage string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:          "lending",
		Short:        "Loan lifecycle and audit trail service",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&f.debug, "debug", false, "debug log level")
	root.PersistentFlags().StringVar(&f.storage, "storage", "", "store driver override: postgres|memory")

	root.AddCommand(
		newServeCmd(f),
		newMigrateCmd(f),
		newSequenceCmd(f),
		newAuditCmd(f),
	)
	return root
}

func (f *rootFlags) config() *config.Config {
	ops := []config.Option{
		config.WithWriteTimeout(time.Minute),
		config.WithStorage(f.storage),
	}
	if f.debug {
		ops = append(ops, config.WithLogLevel(zapcore.DebugLevel))
	}
	return config.NewConfig(ops...)
}

// services wires the service layer for a one-shot command.
func (f *rootFlags) services(ctx context.Context) (*app.Services, *zap.Logger, error) {
	cfg := f.config()
	log := logger.NewLogger(cfg.Log, "lending-cli")
	svc, err := app.NewServices(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return svc, log, nil
}

func newServeCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			app.Run(f.config())
		},
	}
}

func newMigrateCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := f.config()
			db, err := postgres.Connect(cmd.Context(), cfg.Database.DSN(), 1)
			if err != nil {
				return err
			}
			defer db.Close()
			return postgres.Migrate(db, migrations.MigrationFiles)
		},
	}
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func printJSON(w io.Writer, v any) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encode output")
}
