package engine

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-bizsync/internal/logger"
	"github.com/MKhiriev/go-bizsync/models"
)

// Deps are the collaborators of a Manager. Every field is required except
// Logger.
type Deps struct {
	Queue        QueueStore
	Cache        CacheStore
	API          RemoteAPI
	Connectivity Connectivity
	Session      Session
	RequestIDs   IDGenerator
	Logger       *logger.Logger
}

// Options tune a Manager. Zero values select the defaults.
type Options struct {
	// MaxRetries is the number of load retries after a failed load.
	MaxRetries int
	// Backoff computes retry delays.
	Backoff Backoff
	// Now is the clock used for queue timestamps.
	Now func() time.Time
	// AfterFunc schedules retries. Default: time.AfterFunc.
	AfterFunc AfterFunc
	// TempIDs is the temp id source. Default: one source per process.
	TempIDs *TempIDSource
}

func (o Options) withDefaults() Options {
	if o.MaxRetries <= 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.AfterFunc == nil {
		o.AfterFunc = func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
	}
	if o.TempIDs == nil {
		o.TempIDs = processTempIDs
	}
	return o
}

// Manager synchronizes one resource. It is safe for concurrent use.
type Manager[T any] struct {
	res  Resource[T]
	deps Deps
	opts Options
	log  *logger.Logger

	// mutations is held while memory and the durable queue change together.
	// Lock order: mutations before mu.
	mutations sync.Mutex

	mu          sync.Mutex
	items       []Entity[T]
	queue       []models.QueueItem
	resolved    map[int64]int64 // confirmed temp id -> server id
	detached    map[RecordID]struct{}
	lastLoadErr error
	retryTimer  Timer
	draining    bool
	dirty       bool
	closed      bool
	unsubscribe func()

	loads  singleflight.Group
	events subscribers

	// ctx bounds background work; cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager builds an idle manager. Call Start to hook it to connectivity
// changes and run the startup drain and load.
func NewManager[T any](res Resource[T], deps Deps, opts Options) *Manager[T] {
	res = res.withDefaults()
	opts = opts.withDefaults()

	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithResource(res.Table)

	ctx, cancel := context.WithCancel(log.WithContext(context.Background()))

	return &Manager[T]{
		res:      res,
		deps:     deps,
		opts:     opts,
		log:      log,
		items:    make([]Entity[T], 0),
		queue:    make([]models.QueueItem, 0),
		resolved: make(map[int64]int64),
		detached: make(map[RecordID]struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Table returns the resource table name.
func (m *Manager[T]) Table() string { return m.res.Table }

// Start subscribes to connectivity changes and runs ProcessQueue followed
// by Load in the background. Every offline to online transition repeats
// that chain.
func (m *Manager[T]) Start(ctx context.Context) {
	m.mu.Lock()
	if m.closed || m.unsubscribe != nil {
		m.mu.Unlock()
		return
	}
	m.unsubscribe = m.deps.Connectivity.Subscribe(func(online bool) {
		if online {
			m.log.Debug().Msg("connectivity regained")
			m.goBackground(m.Refresh)
		}
	})
	m.mu.Unlock()

	m.goBackground(func(bgCtx context.Context) {
		m.Refresh(mergeCancel(bgCtx, ctx))
	})
}

// Refresh drains the queue and then reloads the collection.
func (m *Manager[T]) Refresh(ctx context.Context) {
	m.ProcessQueue(ctx)
	m.Load(ctx)
}

// Close unsubscribes from connectivity, stops a pending retry, cancels
// background work and waits for it to finish. It is idempotent.
func (m *Manager[T]) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	if m.retryTimer != nil {
		m.retryTimer.Stop()
		m.retryTimer = nil
	}
	m.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	m.cancel()
	m.wg.Wait()
}

// Wait blocks until the background work started so far has finished.
func (m *Manager[T]) Wait() {
	m.wg.Wait()
}

// Subscribe registers fn for manager events. fn runs on the goroutine that
// caused the event and must not block.
func (m *Manager[T]) Subscribe(fn func(Event)) (unsubscribe func()) {
	return m.events.add(fn)
}

// Items returns a copy of the exposed entities, including optimistic ones
// and those pending deletion.
func (m *Manager[T]) Items() []Entity[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append(make([]Entity[T], 0, len(m.items)), m.items...)
}

// Get returns the entity with the given id.
func (m *Manager[T]) Get(id RecordID) (Entity[T], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := indexOf(m.items, id); i >= 0 {
		return m.items[i], true
	}
	return Entity[T]{}, false
}

// Queue returns the last queue snapshot of this resource.
func (m *Manager[T]) Queue() []models.QueueItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append(make([]models.QueueItem, 0, len(m.queue)), m.queue...)
}

// LastLoadError returns the error of the most recent failed load, or nil
// after a successful one.
func (m *Manager[T]) LastLoadError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastLoadErr
}

// Add creates an optimistic entity with a fresh temp id, queues its
// creation and starts a background drain. It never fails: storage errors
// are logged and the optimistic entity stays.
func (m *Manager[T]) Add(ctx context.Context, data T) Entity[T] {
	ctx = m.withLogger(ctx)
	temp := m.opts.TempIDs.Next()
	ent := Entity[T]{ID: LocalID(temp), Data: data, SyncStatus: SyncPending}

	m.mutations.Lock()
	m.mu.Lock()
	m.items = append(m.items, ent)
	m.mu.Unlock()
	m.persist(ctx, ent.ID, models.QueueItem{
		Op:          models.OpCreate,
		LocalTempID: &temp,
		Payload:     m.marshal(data),
	})
	m.mutations.Unlock()

	m.emit(EventItemsChanged, nil)
	m.queued(ctx)
	return ent
}

// Update overlays the non-zero fields of patch onto the entity, queues the
// update and starts a background drain. A temp id whose create has been
// confirmed addresses the server record.
func (m *Manager[T]) Update(ctx context.Context, id RecordID, patch T) (Entity[T], error) {
	ctx = m.withLogger(ctx)

	ent, err := m.stageUpdate(ctx, id, patch)
	if err != nil {
		return Entity[T]{}, err
	}

	m.emit(EventItemsChanged, nil)
	m.queued(ctx)
	return ent, nil
}

func (m *Manager[T]) stageUpdate(ctx context.Context, id RecordID, patch T) (Entity[T], error) {
	m.mutations.Lock()
	defer m.mutations.Unlock()

	m.mu.Lock()
	id = m.resolve(id)
	i := indexOf(m.items, id)
	if i < 0 {
		m.mu.Unlock()
		return Entity[T]{}, ErrNotFound
	}
	if m.items[i].PendingDelete {
		m.mu.Unlock()
		return Entity[T]{}, ErrPendingDelete
	}
	ent := m.items[i]
	ent.Data = m.applyPatch(ent.Data, patch)
	ent.SyncStatus = SyncPending
	m.items[i] = ent
	m.mu.Unlock()

	target := id.Wire()
	m.persist(ctx, id, models.QueueItem{
		Op:       models.OpUpdate,
		RecordID: &target,
		Payload:  m.marshal(patch),
	})
	return ent, nil
}

// Remove marks the entity pending deletion, queues the delete and starts a
// background drain. The entity stays visible until the server confirms.
func (m *Manager[T]) Remove(ctx context.Context, id RecordID) error {
	ctx = m.withLogger(ctx)

	if err := m.stageRemove(ctx, id); err != nil {
		return err
	}

	m.emit(EventItemsChanged, nil)
	m.queued(ctx)
	return nil
}

func (m *Manager[T]) stageRemove(ctx context.Context, id RecordID) error {
	m.mutations.Lock()
	defer m.mutations.Unlock()

	m.mu.Lock()
	id = m.resolve(id)
	i := indexOf(m.items, id)
	if i < 0 {
		m.mu.Unlock()
		return ErrNotFound
	}
	if m.items[i].PendingDelete {
		m.mu.Unlock()
		return ErrPendingDelete
	}
	m.items[i].PendingDelete = true
	m.items[i].SyncStatus = SyncPending
	m.mu.Unlock()

	target := id.Wire()
	m.persist(ctx, id, models.QueueItem{
		Op:       models.OpDelete,
		RecordID: &target,
		Payload:  json.RawMessage("{}"),
	})
	return nil
}

// ClearQueue drops every queued mutation of this resource. Entities are left
// as they are; the next load no longer finds their mutations queued and
// replaces them with the fetched or cached version.
func (m *Manager[T]) ClearQueue(ctx context.Context) (int64, error) {
	ctx = m.withLogger(ctx)

	m.mutations.Lock()
	n, err := m.deps.Queue.ClearTable(ctx, m.res.Table)
	if err != nil {
		m.log.Err(err).Msg("failed to clear queue")
	} else {
		m.mu.Lock()
		m.detached = make(map[RecordID]struct{})
		m.mu.Unlock()
	}
	m.mutations.Unlock()

	m.refreshQueue(ctx)
	return n, err
}

// ReadQueue refreshes the queue snapshot from storage and returns it.
func (m *Manager[T]) ReadQueue(ctx context.Context) []models.QueueItem {
	m.refreshQueue(m.withLogger(ctx))
	return m.Queue()
}

// persist stores item for the entity id. The caller holds m.mutations. An
// entity whose mutation could not be stored is kept by later loads until
// the queue is cleared.
func (m *Manager[T]) persist(ctx context.Context, id RecordID, item models.QueueItem) {
	item.TableName = m.res.Table
	item.RequestID = m.deps.RequestIDs.Generate()
	item.Status = models.QueueStatusPending
	item.Timestamp = m.opts.Now()

	stored, err := m.deps.Queue.Enqueue(ctx, item)
	if err != nil {
		m.log.Err(err).Str("op", string(item.Op)).Msg("failed to enqueue mutation")
		m.mu.Lock()
		m.detached[id] = struct{}{}
		m.mu.Unlock()
		return
	}
	m.log.Debug().Int64("queue_item_id", stored.ID).Str("op", string(item.Op)).Msg("mutation queued")
}

// queued publishes the new queue and starts a background drain.
func (m *Manager[T]) queued(ctx context.Context) {
	m.refreshQueue(ctx)
	m.goBackground(m.ProcessQueue)
}

// resolve maps a temp id whose create was confirmed to its server id. The
// caller holds m.mu.
func (m *Manager[T]) resolve(id RecordID) RecordID {
	if !id.IsLocal() {
		return id
	}
	if server, ok := m.resolved[id.Wire()]; ok {
		return RemoteID(server)
	}
	return id
}

// refreshQueue reloads the queue snapshot. A read failure keeps the previous
// snapshot.
func (m *Manager[T]) refreshQueue(ctx context.Context) {
	items, err := m.deps.Queue.ListByTable(ctx, m.res.Table)
	if err != nil {
		m.log.Err(err).Msg("failed to read queue")
		return
	}

	m.mu.Lock()
	m.queue = items
	m.mu.Unlock()
	m.emit(EventQueueChanged, nil)
}

// goBackground runs fn on the manager lifecycle context unless the manager
// is closed.
func (m *Manager[T]) goBackground(fn func(ctx context.Context)) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		fn(m.ctx)
	}()
}

func (m *Manager[T]) emit(kind EventKind, err error) {
	m.events.emit(Event{Kind: kind, Resource: m.res.Table, Err: err})
}

// withLogger attaches the resource logger unless ctx already carries one.
func (m *Manager[T]) withLogger(ctx context.Context) context.Context {
	if ctx == nil {
		return m.ctx
	}
	if l := logger.FromContext(ctx); l.GetLevel() != zerolog.Disabled {
		return ctx
	}
	return m.log.WithContext(ctx)
}

func (m *Manager[T]) marshal(v T) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		m.log.Err(err).Msg("failed to encode payload")
		return json.RawMessage("{}")
	}
	return b
}

// applyPatch overlays the non-zero fields of patch onto dst. Types mergo
// cannot merge are replaced wholesale.
func (m *Manager[T]) applyPatch(dst, patch T) T {
	if err := mergo.Merge(&dst, patch, mergo.WithOverride); err != nil {
		m.log.Debug().Err(err).Msg("patch replaces the record")
		return patch
	}
	return dst
}

// mergeCancel returns a context cancelled when either parent is done. Values
// come from primary.
func mergeCancel(primary, secondary context.Context) context.Context {
	if secondary == nil {
		return primary
	}
	ctx, cancel := context.WithCancel(primary)
	stop := context.AfterFunc(secondary, cancel)
	context.AfterFunc(ctx, func() { stop() })
	return ctx
}
