package engine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/go-bizsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/engine_mock.go -package=mock

// QueueStore is the durable mutation queue.
type QueueStore interface {
	Enqueue(ctx context.Context, item models.QueueItem) (models.QueueItem, error)
	ListByTable(ctx context.Context, table string) ([]models.QueueItem, error)
	MarkError(ctx context.Context, id int64, message string) error
	Remove(ctx context.Context, id int64) error
	Retarget(ctx context.Context, table string, from, to int64) error
	ClearTable(ctx context.Context, table string) (int64, error)
}

// CacheStore is the last known server state of a resource.
type CacheStore interface {
	ReplaceAll(ctx context.Context, table string, rows []models.CachedRow) error
	ListAll(ctx context.Context, table string) ([]models.CachedRow, error)
	Upsert(ctx context.Context, table string, row models.CachedRow) error
	Delete(ctx context.Context, table string, id int64) error
}

// RemoteAPI is the per-resource REST contract.
type RemoteAPI interface {
	List(ctx context.Context, endpoint, listKey string) ([]json.RawMessage, error)
	Create(ctx context.Context, endpoint string, payload json.RawMessage, requestID string) (map[string]json.RawMessage, error)
	Update(ctx context.Context, endpoint string, id int64, payload json.RawMessage, requestID string) error
	Delete(ctx context.Context, endpoint string, id int64, requestID string) error
}

// Connectivity reports reachability of the remote API.
type Connectivity interface {
	Status(ctx context.Context) bool
	Subscribe(fn func(online bool)) (unsubscribe func())
}

// Session reports whether requests can be authenticated.
type Session interface {
	Authenticated() bool
}

// IDGenerator produces idempotency keys for queue items.
type IDGenerator interface {
	Generate() string
}

// Timer is a pending retry. It matches *time.Timer.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. It matches time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer
