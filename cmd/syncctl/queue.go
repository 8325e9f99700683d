package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newQueueCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect or clear the durable mutation queue",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List queued mutations in submission order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			items := app.Services().SyncService.QueueItems(cmd.Context())
			if c.json {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			printQueue(cmd.OutOrStdout(), items)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear [resource]",
		Short: "Drop queued mutations of one resource, or of all resources",
		Long: `Drop queued mutations without sending them.

Optimistic entities backed by the dropped mutations disappear on the next
load. Use this to unblock a resource whose head item the server keeps
rejecting.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resource string
			if len(args) == 1 {
				resource = args[0]
			}

			app, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			dropped, err := app.Services().SyncService.ClearQueue(cmd.Context(), resource)
			if err != nil {
				return err
			}

			if resource == "" {
				resource = "all resources"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dropped %d queued mutation(s) of %s\n", dropped, resource)
			return nil
		},
	})

	return cmd
}
