package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gradetl/internal/loader"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the latest load report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			report, err := loader.ReadReport(cfg.Paths.ReportPath)
			if err != nil {
				return fmt.Errorf("no load report available (%s): %w", cfg.Paths.ReportPath, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderReportTable(report))
			return nil
		},
	}
}
