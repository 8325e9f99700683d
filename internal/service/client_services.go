package service

import (
	"github.com/MKhiriev/go-bizsync/internal/engine"
	"github.com/MKhiriev/go-bizsync/internal/logger"
	"github.com/MKhiriev/go-bizsync/models"
)

// ClientServices holds one sync manager per resource and the services built
// on top of them.
type ClientServices struct {
	Clients      *engine.Manager[models.Client]
	Jobs         *engine.Manager[models.Job]
	Payments     *engine.Manager[models.Payment]
	Invoices     *engine.Manager[models.Invoice]
	Categories   *engine.Manager[models.Category]
	Appointments *engine.Manager[models.Appointment]
	Folders      *engine.Manager[models.Folder]

	Registry    *engine.Registry
	SyncService SyncService
	SyncJob     ClientSyncJob
}

// NewClientServices builds the managers of every resource over the shared
// collaborators in deps. All managers share one temp id source.
func NewClientServices(deps engine.Deps, opts engine.Options, logger *logger.Logger) *ClientServices {
	if deps.Logger == nil {
		deps.Logger = logger
	}
	if opts.TempIDs == nil {
		opts.TempIDs = engine.NewTempIDSource(opts.Now)
	}

	s := &ClientServices{
		Clients:      engine.NewManager(ClientsResource(), deps, opts),
		Jobs:         engine.NewManager(JobsResource(), deps, opts),
		Payments:     engine.NewManager(PaymentsResource(), deps, opts),
		Invoices:     engine.NewManager(InvoicesResource(), deps, opts),
		Categories:   engine.NewManager(CategoriesResource(), deps, opts),
		Appointments: engine.NewManager(AppointmentsResource(), deps, opts),
		Folders:      engine.NewManager(FoldersResource(), deps, opts),
	}

	s.Registry = engine.NewRegistry(
		s.Clients,
		s.Jobs,
		s.Payments,
		s.Invoices,
		s.Categories,
		s.Appointments,
		s.Folders,
	)
	s.SyncService = NewSyncService(s.Registry, logger)
	s.SyncJob = NewClientSyncJob(s.SyncService, logger)

	return s
}

// Close stops the periodic job and every manager.
func (s *ClientServices) Close() {
	s.SyncJob.Stop()
	s.Registry.CloseAll()
}
