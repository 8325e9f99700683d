package server

import "context"

// Server defines the lifecycle contract of the diagnostics listener.
type Server interface {
	// RunServer serves until SIGTERM, SIGINT or SIGQUIT, then shuts down
	// gracefully.
	RunServer()

	// Run starts serving in the background until ctx is cancelled or Stop
	// is called. It does not block.
	Run(ctx context.Context)

	// Stop shuts the listener down and waits for it to exit.
	Stop()
}
