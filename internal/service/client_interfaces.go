package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-bizsync/internal/engine"
	"github.com/MKhiriev/go-bizsync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// SyncService is the operator view of the sync engine shared by the
// diagnostics API, the CLI and the terminal viewer. Resource arguments are
// table names (e.g. "clients").
type SyncService interface {
	// SyncAll drains every queue and reloads every collection. Per-resource
	// failures are reported through queue state, not through the error,
	// which is only set when ctx is cancelled.
	SyncAll(ctx context.Context) error

	// Sync drains and reloads one resource. Returns ErrUnknownResource for
	// an unregistered name.
	Sync(ctx context.Context, resource string) error

	// QueueItems re-reads the queue of every resource, ordered by id.
	QueueItems(ctx context.Context) []models.QueueItem

	// ClearQueue drops the queued mutations of resource, or of every
	// resource when resource is empty, and returns how many were dropped.
	ClearQueue(ctx context.Context, resource string) (int64, error)

	// Summaries returns one overview per resource.
	Summaries() []engine.Summary

	// Items returns the exposed entities of resource as a JSON-encodable
	// slice.
	Items(resource string) (any, error)

	// Resources lists the registered resource names.
	Resources() []string
}

// ClientSyncJob is a background worker that periodically calls SyncAll.
type ClientSyncJob interface {
	// Start launches the background goroutine. It syncs every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}

// AppInfoService reports build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
