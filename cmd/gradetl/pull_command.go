package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPullCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Run the ingestion pipeline once",
		Long: `Fetch raw admissions records from the configured source file, diff them
against the persisted table, standardize the new delta, and load the merged
set. Rejected immediately when another run holds the pipeline lock.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, st, _, err := ctx.buildRunner()
			if err != nil {
				return err
			}
			defer st.Close()

			outcome := runner.Run(cmd.Context())
			switch {
			case outcome.Busy:
				return fmt.Errorf("a pipeline run is already in progress; try again later or run 'gradetl status'")
			case outcome.Err != nil:
				return fmt.Errorf("pipeline failed in %s stage: %w", outcome.Stage, outcome.Err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderReportTable(outcome.Report))
			return nil
		},
	}
}
