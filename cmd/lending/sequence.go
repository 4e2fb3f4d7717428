package main

import (
	"github.com/spf13/cobra"
)

func newSequenceCmd(f *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sequence",
		Short: "Inspect and configure id sequences",
	}

	preview := &cobra.Command{
		Use:   "preview NAME",
		Short: "Show the next id of a sequence without consuming it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, log, err := f.services(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close(log)

			p, err := svc.Sequences.Preview(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}

	var format string
	configure := &cobra.Command{
		Use:   "configure NAME",
		Short: "Set the id template of a sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, log, err := f.services(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close(log)

			c, err := svc.Sequences.Configure(cmd.Context(), args[0], format)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), c)
		},
	}
	configure.Flags().StringVar(&format, "format", "", "template with {number} and optional {year}")
	_ = configure.MarkFlagRequired("format")

	cmd.AddCommand(preview, configure)
	return cmd
}
