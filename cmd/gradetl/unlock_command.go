package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gradetl/internal/busylock"
)

func newUnlockCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Remove a leftover pipeline lock token",
		Long: `Remove the durable lock token a crashed run left behind. There is no
automatic staleness detection, so this is the manual remedy: check
'gradetl status' first and make sure no run is actually in progress.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			lock := busylock.New(cfg.Paths.LockPath)
			state, held, stateErr := lock.Current()
			if !held {
				fmt.Fprintln(cmd.OutOrStdout(), "No lock token present.")
				return nil
			}
			if stateErr == nil && !force {
				age := time.Since(state.CreatedAt).Round(time.Second)
				if age < time.Minute {
					return fmt.Errorf("lock token is only %s old and may belong to a live run (pid %d); pass --force to remove anyway", age, state.PID)
				}
			}

			if err := lock.Release(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Lock token removed.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Remove the token even if it looks fresh")
	return cmd
}
