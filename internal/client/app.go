package client

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-bizsync/internal/adapter"
	"github.com/MKhiriev/go-bizsync/internal/config"
	"github.com/MKhiriev/go-bizsync/internal/connectivity"
	"github.com/MKhiriev/go-bizsync/internal/engine"
	"github.com/MKhiriev/go-bizsync/internal/handler"
	"github.com/MKhiriev/go-bizsync/internal/logger"
	"github.com/MKhiriev/go-bizsync/internal/server"
	"github.com/MKhiriev/go-bizsync/internal/service"
	"github.com/MKhiriev/go-bizsync/internal/session"
	"github.com/MKhiriev/go-bizsync/internal/store"
	"github.com/MKhiriev/go-bizsync/internal/tui"
	"github.com/MKhiriev/go-bizsync/internal/utils"
	"github.com/MKhiriev/go-bizsync/internal/workers"
	"github.com/MKhiriev/go-bizsync/models"
)

// Options tune how the runtime is assembled.
type Options struct {
	BuildInfo models.AppBuildInfo

	// Offline replaces the connectivity probe with a monitor that always
	// reports offline. Mutations are queued and reads come from the cache.
	Offline bool
}

// App owns the storage, the sync engine and the background workers of one
// process.
type App struct {
	cfg      *config.ClientConfig
	storages *store.ClientStorages
	session  *session.Session
	services *service.ClientServices
	appInfo  service.AppInfoService
	workers  *workers.Workers
	opts     Options

	logger *logger.Logger
}

// NewApp opens the local database and wires every component described by
// cfg. Nothing runs until Start.
func NewApp(ctx context.Context, cfg *config.ClientConfig, opts Options, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	sess := session.New(cfg.App, log)

	api, err := adapter.NewHTTPResourceAdapter(cfg.Adapter, sess, log)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("create remote adapter: %w", err)
	}

	var (
		conn       engine.Connectivity
		background []workers.Worker
	)
	if opts.Offline {
		conn = connectivity.NewManual(false)
	} else {
		probe, err := connectivity.NewProbeMonitor(cfg.Adapter, cfg.Workers.ProbeInterval, log)
		if err != nil {
			storages.Close()
			return nil, fmt.Errorf("create connectivity probe: %w", err)
		}
		conn = probe
		background = append(background, probe)
	}

	services := service.NewClientServices(engine.Deps{
		Queue:        storages.Queue,
		Cache:        storages.Cache,
		API:          api,
		Connectivity: conn,
		Session:      sess,
		RequestIDs:   utils.NewUUIDGenerator(),
		Logger:       log,
	}, engine.Options{
		MaxRetries: cfg.Workers.MaxRetries,
		Backoff:    engine.Backoff{Base: cfg.Workers.RetryBase, Max: cfg.Workers.RetryMax},
	}, log)

	appInfo, err := service.NewAppInfoService(opts.BuildInfo, log)
	if err != nil {
		log.Debug().Err(err).Msg("build info unavailable")
	}

	background = append(background, workers.NewSyncJobWorker(services.SyncJob, cfg.Workers.SyncInterval))

	if cfg.Diagnostics.HTTPAddress != "" {
		handlers, err := handler.NewHandlers(services, appInfo, cfg.Diagnostics, log)
		if err != nil {
			return nil, closeOnError(storages, services, fmt.Errorf("create diagnostics handlers: %w", err))
		}
		srv, err := server.NewServer(handlers, cfg.Diagnostics, log)
		if err != nil {
			return nil, closeOnError(storages, services, fmt.Errorf("create diagnostics server: %w", err))
		}
		background = append(background, srv)
	}

	return &App{
		cfg:      cfg,
		storages: storages,
		session:  sess,
		services: services,
		appInfo:  appInfo,
		workers:  workers.NewWorkers(background...),
		opts:     opts,
		logger:   log,
	}, nil
}

func closeOnError(storages *store.ClientStorages, services *service.ClientServices, err error) error {
	services.Close()
	return errors.Join(err, storages.Close())
}

// Services exposes the sync engine for one-shot operator commands.
func (a *App) Services() *service.ClientServices {
	return a.services
}

// Start runs the initial drain and load of every resource and launches the
// background workers.
func (a *App) Start(ctx context.Context) {
	a.logger.Info().
		Strs("resources", a.services.Registry.Tables()).
		Bool("offline", a.opts.Offline).
		Bool("authenticated", a.session.Authenticated()).
		Msg("starting sync engine")

	a.services.Registry.StartAll(ctx)
	a.workers.Run(ctx)
}

// Run implements [Client]. It starts the engine and shows the queue viewer
// until the operator quits or a termination signal arrives.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	a.Start(ctx)
	defer a.Close()

	ui := tui.New(a.services.SyncService, a.services.Registry, a.opts.BuildInfo, a.logger)
	return ui.Run(ctx)
}

// Serve starts the engine without a terminal and blocks until ctx is done.
func (a *App) Serve(ctx context.Context) error {
	a.Start(ctx)
	defer a.Close()

	<-ctx.Done()
	a.logger.Info().Msg("shutting down")
	return nil
}

// Close stops the workers and the managers, then closes the database. It is
// safe to call more than once.
func (a *App) Close() {
	a.workers.Stop()
	a.services.Close()

	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Msg("close local storage")
	}
}
