package engine

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-bizsync/models"
)

//go:generate mockgen -source=registry.go -destination=../mock/syncer_mock.go -package=mock

// Syncer is the type-erased view of a Manager used for fan-out.
type Syncer interface {
	Table() string
	Start(ctx context.Context)
	Refresh(ctx context.Context)
	ProcessQueue(ctx context.Context)
	ClearQueue(ctx context.Context) (int64, error)
	ReadQueue(ctx context.Context) []models.QueueItem
	Queue() []models.QueueItem
	Summary() Summary
	ExposedItems() any
	LastLoadError() error
	Subscribe(fn func(Event)) (unsubscribe func())
	Close()
	Wait()
}

// Summary is a point-in-time overview of one resource.
type Summary struct {
	Resource      string `json:"resource"`
	Items         int    `json:"items"`
	Pending       int    `json:"pending"`
	PendingDelete int    `json:"pending_delete"`
	Errors        int    `json:"errors"`
	QueueLength   int    `json:"queue_length"`
	LastLoadError string `json:"last_load_error,omitempty"`
}

// Summary counts the exposed entities by sync state.
func (m *Manager[T]) Summary() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Summary{Resource: m.res.Table, Items: len(m.items), QueueLength: len(m.queue)}
	for _, e := range m.items {
		switch e.SyncStatus {
		case SyncPending:
			s.Pending++
		case SyncError:
			s.Errors++
		}
		if e.PendingDelete {
			s.PendingDelete++
		}
	}
	if m.lastLoadErr != nil {
		s.LastLoadError = m.lastLoadErr.Error()
	}
	return s
}

// ExposedItems returns Items as []Entity[T].
func (m *Manager[T]) ExposedItems() any {
	return m.Items()
}

// Registry holds one Syncer per resource table.
type Registry struct {
	syncers map[string]Syncer
	order   []string
}

// NewRegistry indexes syncers by table. A later syncer replaces an earlier
// one for the same table.
func NewRegistry(syncers ...Syncer) *Registry {
	r := &Registry{syncers: make(map[string]Syncer, len(syncers))}
	for _, s := range syncers {
		if _, dup := r.syncers[s.Table()]; !dup {
			r.order = append(r.order, s.Table())
		}
		r.syncers[s.Table()] = s
	}
	return r
}

// Get returns the syncer of table.
func (r *Registry) Get(table string) (Syncer, error) {
	s, ok := r.syncers[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, table)
	}
	return s, nil
}

// All returns the syncers in registration order.
func (r *Registry) All() []Syncer {
	out := make([]Syncer, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.syncers[t])
	}
	return out
}

// Tables returns the registered table names in registration order.
func (r *Registry) Tables() []string {
	return append([]string(nil), r.order...)
}

// SyncAll drains and reloads every resource concurrently. It only fails
// when ctx is cancelled; per-resource failures stay in queue state.
func (r *Registry) SyncAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range r.All() {
		g.Go(func() error {
			s.Refresh(gctx)
			return gctx.Err()
		})
	}
	return g.Wait()
}

// Sync drains and reloads one resource.
func (r *Registry) Sync(ctx context.Context, table string) error {
	s, err := r.Get(table)
	if err != nil {
		return err
	}
	s.Refresh(ctx)
	return ctx.Err()
}

// ProcessAll drains every queue concurrently without reloading.
func (r *Registry) ProcessAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range r.All() {
		g.Go(func() error {
			s.ProcessQueue(gctx)
			return gctx.Err()
		})
	}
	return g.Wait()
}

// StartAll starts every syncer.
func (r *Registry) StartAll(ctx context.Context) {
	for _, s := range r.All() {
		s.Start(ctx)
	}
}

// WaitAll waits for the background work of every syncer.
func (r *Registry) WaitAll() {
	for _, s := range r.All() {
		s.Wait()
	}
}

// CloseAll closes every syncer.
func (r *Registry) CloseAll() {
	for _, s := range r.All() {
		s.Close()
	}
}

// Summaries returns one Summary per resource in registration order.
func (r *Registry) Summaries() []Summary {
	out := make([]Summary, 0, len(r.order))
	for _, s := range r.All() {
		out = append(out, s.Summary())
	}
	return out
}

// ClearAll clears every queue and returns the number of dropped items. It
// stops at the first storage error.
func (r *Registry) ClearAll(ctx context.Context) (int64, error) {
	var total int64
	for _, s := range r.All() {
		n, err := s.ClearQueue(ctx)
		total += n
		if err != nil {
			return total, fmt.Errorf("clear %s queue: %w", s.Table(), err)
		}
	}
	return total, nil
}

// QueueItems re-reads every queue and returns the items ordered by id.
func (r *Registry) QueueItems(ctx context.Context) []models.QueueItem {
	var out []models.QueueItem
	for _, s := range r.All() {
		out = append(out, s.ReadQueue(ctx)...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Subscribe registers fn with every syncer.
func (r *Registry) Subscribe(fn func(Event)) (unsubscribe func()) {
	unsubs := make([]func(), 0, len(r.order))
	for _, s := range r.All() {
		unsubs = append(unsubs, s.Subscribe(fn))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
var _ Syncer = (*Manager[struct{}])(nil)
