package main

import (
	"github.com/spf13/cobra"

	"gradetl/internal/api"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline HTTP API",
		Long: `Expose the pipeline over HTTP: POST /pull triggers a run (409 when one
is active), GET /status reports busy state and row count, GET /report
returns the latest load report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, st, logger, err := ctx.buildRunner()
			if err != nil {
				return err
			}
			defer st.Close()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			server := api.NewServer(cfg, runner, st, logger)
			return server.ListenAndServe(cmd.Context())
		},
	}
}
