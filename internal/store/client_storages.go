package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-bizsync/internal/config"
	"github.com/MKhiriev/go-bizsync/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the engine and service layers.
type ClientStorages struct {
	// Queue is the durable mutation queue shared by every resource.
	Queue QueueRepository

	// Cache is the per-resource record cache.
	Cache CacheRepository

	db *DB
}

// NewClientStorages opens (creating if needed) the sqlite database named by
// cfg.DB.DSN, applies pending migrations and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Queue: NewQueueRepository(db, logger),
		Cache: NewCacheRepository(db, logger),
		db:    db,
	}, nil
}

// Close releases the database connection.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
