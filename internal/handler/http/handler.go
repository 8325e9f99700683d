package http

import (
	"github.com/MKhiriev/go-bizsync/internal/logger"
	"github.com/MKhiriev/go-bizsync/internal/service"
)

// Handler serves the diagnostics API on top of the sync service.
type Handler struct {
	sync    service.SyncService
	appInfo service.AppInfoService

	logger *logger.Logger
}

// NewHandler constructs a Handler. appInfo may be nil, in which case the
// version route is not registered.
func NewHandler(sync service.SyncService, appInfo service.AppInfoService, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		sync:    sync,
		appInfo: appInfo,
		logger:  logger,
	}
}
