package store

import (
	"context"

	"github.com/MKhiriev/go-bizsync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// QueueRepository is the durable FIFO of pending mutations. Items of one
// table are returned in ascending id order.
type QueueRepository interface {
	Enqueue(ctx context.Context, item models.QueueItem) (models.QueueItem, error)
	List(ctx context.Context) ([]models.QueueItem, error)
	ListByTable(ctx context.Context, table string) ([]models.QueueItem, error)
	MarkError(ctx context.Context, id int64, message string) error
	Remove(ctx context.Context, id int64) error
	Retarget(ctx context.Context, table string, from, to int64) error
	Clear(ctx context.Context) (int64, error)
	ClearTable(ctx context.Context, table string) (int64, error)
}

// CacheRepository stores the last known server state of every resource, one
// sqlite table per resource.
type CacheRepository interface {
	ReplaceAll(ctx context.Context, table string, rows []models.CachedRow) error
	ListAll(ctx context.Context, table string) ([]models.CachedRow, error)
	Upsert(ctx context.Context, table string, row models.CachedRow) error
	Delete(ctx context.Context, table string, id int64) error
}
