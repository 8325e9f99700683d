package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-bizsync/internal/engine"
	"github.com/MKhiriev/go-bizsync/internal/logger"
	"github.com/MKhiriev/go-bizsync/models"
)

type syncService struct {
	registry *engine.Registry

	logger *logger.Logger
}

// NewSyncService exposes registry as a [SyncService].
func NewSyncService(registry *engine.Registry, logger *logger.Logger) SyncService {
	return &syncService{registry: registry, logger: logger}
}

func (s *syncService) SyncAll(ctx context.Context) error {
	s.logger.Debug().Msg("syncing all resources")
	if err := s.registry.SyncAll(ctx); err != nil {
		return fmt.Errorf("sync all: %w", err)
	}
	return nil
}

func (s *syncService) Sync(ctx context.Context, resource string) error {
	s.logger.Debug().Str("resource", resource).Msg("syncing resource")
	if err := s.registry.Sync(ctx, resource); err != nil {
		return fmt.Errorf("sync %s: %w", resource, err)
	}
	return nil
}

func (s *syncService) QueueItems(ctx context.Context) []models.QueueItem {
	items := s.registry.QueueItems(ctx)
	if items == nil {
		items = make([]models.QueueItem, 0)
	}
	return items
}

func (s *syncService) ClearQueue(ctx context.Context, resource string) (int64, error) {
	if resource == "" {
		n, err := s.registry.ClearAll(ctx)
		s.logger.Info().Int64("dropped", n).Msg("queue cleared")
		return n, err
	}

	syncer, err := s.registry.Get(resource)
	if err != nil {
		return 0, err
	}
	n, err := syncer.ClearQueue(ctx)
	if err != nil {
		return n, fmt.Errorf("clear %s queue: %w", resource, err)
	}
	s.logger.Info().Str("resource", resource).Int64("dropped", n).Msg("queue cleared")
	return n, nil
}

func (s *syncService) Summaries() []engine.Summary {
	return s.registry.Summaries()
}

func (s *syncService) Items(resource string) (any, error) {
	syncer, err := s.registry.Get(resource)
	if err != nil {
		return nil, err
	}
	return syncer.ExposedItems(), nil
}

func (s *syncService) Resources() []string {
	return s.registry.Tables()
}
