package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pipeline and database status",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, st, _, err := ctx.buildRunner()
			if err != nil {
				return err
			}
			defer st.Close()

			rows, err := st.Count(cmd.Context())
			if err != nil {
				return fmt.Errorf("count applicants: %w", err)
			}

			busy := "no"
			holder := "-"
			heldFor := "-"
			if state, held, stateErr := runner.LockState(); held {
				busy = "yes"
				if stateErr == nil {
					holder = fmt.Sprintf("%s (pid %d)", state.RunID, state.PID)
					heldFor = time.Since(state.CreatedAt).Round(time.Second).String()
				} else {
					holder = "unreadable lock token"
				}
			}

			out := renderTable(
				[]string{"Field", "Value"},
				[][]string{
					{"Applicant rows", strconv.FormatInt(rows, 10)},
					{"Run in progress", busy},
					{"Lock holder", holder},
					{"Lock held for", heldFor},
					{"Database", st.Path()},
				},
				[]columnAlignment{alignLeft, alignLeft},
			)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
