package main

import (
	"github.com/spf13/cobra"
)

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show per-resource counts of items, pending mutations and errors",
		Long: `Start every resource once and print its summary.

Each resource drains its queue and reloads when the API is reachable, and
serves the local cache otherwise. With --offline only the cache and the
queue are read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			app, err := c.openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			registry := app.Services().Registry
			registry.StartAll(ctx)
			registry.WaitAll()

			if c.json {
				return writeJSON(cmd.OutOrStdout(), registry.Summaries())
			}
			printSummaries(cmd.OutOrStdout(), registry.Summaries())
			return nil
		},
	}
}
