package main

import (
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-bizsync/internal/config"
)

func newServeCmd(c *cli) *cobra.Command {
	var diagAddress string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the sync engine headless until interrupted",
		Long: `Run the engine with its background workers: the periodic sync job, the
connectivity probe and, when an address is given, the diagnostics HTTP API.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if diagAddress != "" {
				if _, _, err := net.SplitHostPort(diagAddress); err != nil {
					return fmt.Errorf("%w: --diag %q", config.ErrInvalidDiagnosticsConfigs, diagAddress)
				}
				c.cfg.Diagnostics.HTTPAddress = diagAddress
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
			defer stop()

			app, err := c.openApp(ctx)
			if err != nil {
				return err
			}

			return app.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&diagAddress, "diag", "", "diagnostics API listen address host:port")

	return cmd
}
