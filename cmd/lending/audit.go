package main

import (
	"context"

	"github.com/Astemirdum/lending-service/lending/app"
	"github.com/Astemirdum/lending-service/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAuditCmd(f *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit trail maintenance",
	}

	var keepDays int
	prune := &cobra.Command{
		Use:   "prune",
		Short: "Delete audit entries older than the retention window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, log, err := f.services(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close(log)

			if keepDays == 0 {
				keepDays = f.config().Lending.AuditRetentionDays
			}
			n, err := svc.Audit.Prune(cmd.Context(), keepDays)
			if err != nil {
				return err
			}
			log.Info("audit pruned", zap.Int("keepDays", keepDays), zap.Int64("removed", n))
			return printJSON(cmd.OutOrStdout(), map[string]int64{"removed": n})
		},
	}
	prune.Flags().IntVar(&keepDays, "keep-days", 0, "retention window in days (default LENDING_AUDIT_RETENTION_DAYS)")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Print audit statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, log, err := f.services(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close(log)

			st, err := svc.Audit.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), st)
		},
	}

	tail := &cobra.Command{
		Use:   "tail",
		Short: "Follow audit events published to Kafka",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := f.config()
			log := logger.NewLogger(cfg.Log, "lending-tail")
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			out := cmd.OutOrStdout()
			return app.TailAudit(ctx, cfg, log, func(_ context.Context, ev app.AuditEvent) error {
				return printJSON(out, ev)
			})
		},
	}

	cmd.AddCommand(prune, stats, tail)
	return cmd
}
