package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-bizsync/internal/engine"
	"github.com/MKhiriev/go-bizsync/internal/logger"
	"github.com/MKhiriev/go-bizsync/internal/service"
	"github.com/MKhiriev/go-bizsync/models"
)

// EventSource delivers engine notifications. [engine.Registry] implements it.
type EventSource interface {
	Subscribe(fn func(engine.Event)) (unsubscribe func())
}

type TUI struct {
	sync      service.SyncService
	events    EventSource
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

// New builds the queue viewer. events may be nil, in which case the view
// only refreshes after operator actions.
func New(sync service.SyncService, events EventSource, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{sync: sync, events: events, buildInfo: buildInfo, logger: logger}
}

// Run shows the viewer until the operator quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	var events <-chan engine.Event
	if t.events != nil {
		ch, unsubscribe := coalesce(t.events)
		defer unsubscribe()
		events = ch
	}

	model := newViewerModel(ctx, t.sync, events, t.buildInfo)
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() != nil {
		t.logger.Debug().Err(err).Msg("viewer stopped by context")
		return nil
	}
	return err
}

// coalesce forwards events into a channel of capacity one. Bursts collapse
// into a single pending notification.
func coalesce(src EventSource) (<-chan engine.Event, func()) {
	ch := make(chan engine.Event, 1)
	unsubscribe := src.Subscribe(func(ev engine.Event) {
		select {
		case ch <- ev:
		default:
		}
	})
	return ch, unsubscribe
}
