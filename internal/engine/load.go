package engine

import (
	"context"
	"encoding/json"
	"maps"

	"github.com/MKhiriev/go-bizsync/models"
)

const loadKey = "load"

// Load refreshes the exposed entities and returns them. It never fails.
//
// While offline (or without a session) the cache is served, overlaid with
// the queued mutations and merged with memory, and a retry is scheduled.
// Online, the collection is fetched; on success it replaces the cache and
// is merged the same way. A failed fetch serves the cache and schedules a
// retry. After MaxRetries failed retries EventLoadFailed is emitted.
// Concurrent calls share one execution.
func (m *Manager[T]) Load(ctx context.Context) []Entity[T] {
	m.stopRetry()
	m.runLoad(m.withLogger(ctx), 0)
	return m.Items()
}

func (m *Manager[T]) runLoad(ctx context.Context, attempt int) {
	_, _, _ = m.loads.Do(loadKey, func() (any, error) {
		m.load(ctx, attempt)
		return nil, nil
	})
}

func (m *Manager[T]) load(ctx context.Context, attempt int) {
	log := m.log.With().Int("attempt", attempt).Logger()

	if !m.deps.Session.Authenticated() {
		log.Debug().Msg("no session, serving cache")
		m.loadFromCache(ctx)
		m.setLoadError(errUnauthenticated)
		return
	}

	if !m.deps.Connectivity.Status(ctx) {
		log.Debug().Msg("offline, serving cache")
		m.loadFromCache(ctx)
		m.loadFailed(ctx, attempt, errOffline)
		return
	}

	records, err := m.deps.API.List(ctx, m.res.Endpoint, m.res.ListKey)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Warn().Err(err).Msg("failed to fetch collection")
		m.loadFromCache(ctx)
		m.loadFailed(ctx, attempt, err)
		return
	}

	fresh, rows := m.parseRecords(records)
	if err = m.deps.Cache.ReplaceAll(ctx, m.res.Table, rows); err != nil {
		log.Err(err).Msg("failed to replace cache")
	}

	m.apply(ctx, fresh)

	m.mu.Lock()
	m.lastLoadErr = nil
	if m.retryTimer != nil {
		m.retryTimer.Stop()
		m.retryTimer = nil
	}
	m.mu.Unlock()

	log.Debug().Int("records", len(fresh)).Msg("collection loaded")
	m.emit(EventLoaded, nil)
}

// loadFromCache serves the cached collection. A read failure is treated as
// an empty cache.
func (m *Manager[T]) loadFromCache(ctx context.Context) {
	rows, err := m.deps.Cache.ListAll(ctx, m.res.Table)
	if err != nil {
		m.log.Err(err).Msg("failed to read cache")
		rows = nil
	}

	fresh := make([]Entity[T], 0, len(rows))
	for _, row := range rows {
		data, perr := m.res.Parse(row.Data)
		if perr != nil {
			m.log.Warn().Err(perr).Int64("id", row.ID).Msg("skipping unreadable cached row")
			continue
		}
		fresh = append(fresh, Entity[T]{ID: RecordIDFromWire(row.ID), Data: data})
	}

	m.apply(ctx, fresh)
}

// apply overlays the queue onto fresh, merges the result with memory and
// publishes it. Unsynced entities survive the merge only while a stored
// mutation still refers to them.
func (m *Manager[T]) apply(ctx context.Context, fresh []Entity[T]) {
	m.mutations.Lock()
	queue, err := m.deps.Queue.ListByTable(ctx, m.res.Table)
	if err != nil {
		m.log.Err(err).Msg("failed to read queue")
		queue = nil
	}
	overlaid := m.overlayQueue(fresh, queue)

	m.mu.Lock()
	var queued map[RecordID]struct{}
	if err == nil {
		queued = m.queuedIDs(queue)
		m.queue = queue
	}
	m.items = MergeQueued(overlaid, m.items, queued)
	m.mu.Unlock()
	m.mutations.Unlock()

	if err == nil {
		m.emit(EventQueueChanged, nil)
	}
	m.emit(EventItemsChanged, nil)
}

// queuedIDs returns the ids referenced by queue plus the entities whose
// mutation could not be stored. The caller holds m.mu.
func (m *Manager[T]) queuedIDs(queue []models.QueueItem) map[RecordID]struct{} {
	ids := make(map[RecordID]struct{}, len(queue)+len(m.detached))
	for _, item := range queue {
		if target, ok := item.Target(); ok {
			ids[m.resolve(RecordIDFromWire(target))] = struct{}{}
		}
	}
	for id := range m.detached {
		ids[id] = struct{}{}
	}
	return ids
}

// overlayQueue replays queued mutations onto base so optimistic state
// survives a restart: creates add their entity, updates patch it and
// deletes flag it. Creates already confirmed in this process are skipped.
func (m *Manager[T]) overlayQueue(base []Entity[T], queue []models.QueueItem) []Entity[T] {
	items := append(make([]Entity[T], 0, len(base)+len(queue)), base...)

	m.mu.Lock()
	resolved := maps.Clone(m.resolved)
	m.mu.Unlock()

	for _, item := range queue {
		target, ok := item.Target()
		if !ok {
			continue
		}
		server, done := resolved[target]
		if done && item.Op == models.OpCreate {
			continue
		}
		id := RecordIDFromWire(target)
		if done {
			id = RemoteID(server)
		}
		status := SyncPending
		if item.Status == models.QueueStatusError {
			status = SyncError
		}

		switch item.Op {
		case models.OpCreate:
			if indexOf(items, id) >= 0 {
				continue
			}
			data, err := m.res.Parse(item.Payload)
			if err != nil {
				m.log.Warn().Err(err).Int64("queue_item_id", item.ID).Msg("skipping unreadable create payload")
				continue
			}
			items = append(items, Entity[T]{ID: id, Data: data, SyncStatus: status})

		case models.OpUpdate:
			i := indexOf(items, id)
			if i < 0 {
				continue
			}
			patch, err := m.res.Parse(item.Payload)
			if err != nil {
				m.log.Warn().Err(err).Int64("queue_item_id", item.ID).Msg("skipping unreadable update payload")
				continue
			}
			items[i].Data = m.applyPatch(items[i].Data, patch)
			items[i].SyncStatus = worse(items[i].SyncStatus, status)

		case models.OpDelete:
			i := indexOf(items, id)
			if i < 0 {
				continue
			}
			items[i].PendingDelete = true
			items[i].SyncStatus = worse(items[i].SyncStatus, status)
		}
	}

	return items
}

// worse returns the status that signals more trouble.
func worse(a, b SyncStatus) SyncStatus {
	if a == SyncError || b == SyncError {
		return SyncError
	}
	if a == SyncPending || b == SyncPending {
		return SyncPending
	}
	return SyncNone
}

func (m *Manager[T]) parseRecords(records []json.RawMessage) ([]Entity[T], []models.CachedRow) {
	now := m.opts.Now()
	fresh := make([]Entity[T], 0, len(records))
	rows := make([]models.CachedRow, 0, len(records))

	for _, raw := range records {
		id, err := m.res.ExtractID(raw)
		if err != nil {
			m.log.Warn().Err(err).Msg("skipping server record without id")
			continue
		}
		data, err := m.res.Parse(raw)
		if err != nil {
			m.log.Warn().Err(err).Int64("id", id).Msg("skipping unreadable server record")
			continue
		}
		fresh = append(fresh, Entity[T]{ID: RemoteID(id), Data: data})
		rows = append(rows, models.CachedRow{ID: id, Data: raw, UpdatedAt: now})
	}

	return fresh, rows
}

// loadFailed records cause and schedules the next retry, or emits
// EventLoadFailed once the retries are used up.
func (m *Manager[T]) loadFailed(ctx context.Context, attempt int, cause error) {
	m.setLoadError(cause)

	if attempt >= m.opts.MaxRetries {
		m.log.Warn().Err(cause).Int("attempt", attempt).Msg("load retries exhausted")
		m.emit(EventLoadFailed, cause)
		return
	}

	delay := m.opts.Backoff.Delay(attempt)
	next := attempt + 1

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	if m.retryTimer != nil {
		m.retryTimer.Stop()
	}
	m.retryTimer = m.opts.AfterFunc(delay, func() {
		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			return
		}
		m.retryTimer = nil
		m.wg.Add(1)
		m.mu.Unlock()

		defer m.wg.Done()
		m.runLoad(m.ctx, next)
	})
	m.log.Debug().Dur("delay", delay).Int("attempt", next).Msg("load retry scheduled")
}

func (m *Manager[T]) setLoadError(err error) {
	m.mu.Lock()
	m.lastLoadErr = err
	m.mu.Unlock()
}

func (m *Manager[T]) stopRetry() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.retryTimer != nil {
		m.retryTimer.Stop()
		m.retryTimer = nil
	}
}
