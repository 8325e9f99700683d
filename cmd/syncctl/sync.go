package main

import (
	"github.com/spf13/cobra"
)

func newSyncCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sync [resource]",
		Short: "Drain the queue and reload one resource, or every resource",
		Long: `Submit queued mutations in order and reload the collection from the API.

A rejected mutation stays queued with status error and blocks the rest of
its resource. The command succeeds anyway; check the summary.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := c.openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			svc := app.Services().SyncService
			if len(args) == 1 {
				err = svc.Sync(ctx, args[0])
			} else {
				err = svc.SyncAll(ctx)
			}
			if err != nil {
				return err
			}

			if c.json {
				return writeJSON(cmd.OutOrStdout(), svc.Summaries())
			}
			printSummaries(cmd.OutOrStdout(), svc.Summaries())
			return nil
		},
	}
}
