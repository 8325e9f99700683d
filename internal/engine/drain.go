package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-bizsync/models"
)

// ProcessQueue replays this resource's queued mutations against the remote
// API in insertion order, stopping at the first failure. It is a no-op
// without a session or connectivity. A call arriving while a drain runs
// makes that drain read the queue once more and returns immediately.
// The queue snapshot is refreshed afterwards whatever the outcome.
func (m *Manager[T]) ProcessQueue(ctx context.Context) {
	ctx = m.withLogger(ctx)

	if !m.deps.Session.Authenticated() {
		m.log.Debug().Msg("no session, queue left for later")
		return
	}
	if !m.deps.Connectivity.Status(ctx) {
		m.log.Debug().Msg("offline, queue left for later")
		return
	}

	m.mu.Lock()
	if m.draining {
		m.dirty = true
		m.mu.Unlock()
		return
	}
	m.draining = true
	m.mu.Unlock()

	for {
		m.drain(ctx)

		m.mu.Lock()
		again := m.dirty && ctx.Err() == nil
		m.dirty = false
		if !again {
			m.draining = false
		}
		m.mu.Unlock()

		if !again {
			break
		}
	}

	m.refreshQueue(ctx)
}

// drain makes one pass over the queue.
func (m *Manager[T]) drain(ctx context.Context) {
	items, err := m.deps.Queue.ListByTable(ctx, m.res.Table)
	if err != nil {
		m.log.Err(err).Msg("failed to read queue")
		return
	}

	for i := range items {
		if ctx.Err() != nil {
			return
		}
		if !m.submit(ctx, items[i], items[i+1:]) {
			return
		}
	}
}

// submit sends one item. rest holds the items queued after it; a confirmed
// create rewrites their target in place. A confirmed item is removed from
// the queue by its op handler. It reports whether the drain may continue.
func (m *Manager[T]) submit(ctx context.Context, item models.QueueItem, rest []models.QueueItem) bool {
	log := m.log.With().Int64("queue_item_id", item.ID).Str("op", string(item.Op)).Logger()

	target, ok := item.Target()
	if !ok {
		m.fail(ctx, item, errors.New("queue item has no target id"))
		return false
	}

	var err error
	switch item.Op {
	case models.OpCreate:
		err = m.submitCreate(ctx, item, target, rest)
	case models.OpUpdate:
		err = m.submitUpdate(ctx, item, target, rest)
	case models.OpDelete:
		err = m.submitDelete(ctx, item, target)
	default:
		err = fmt.Errorf("unknown op %q", item.Op)
	}

	if err != nil {
		if ctx.Err() != nil {
			log.Debug().Err(err).Msg("drain cancelled")
			return false
		}
		log.Warn().Err(err).Msg("mutation rejected")
		m.fail(ctx, item, err)
		return false
	}

	log.Debug().Msg("mutation confirmed")
	m.emit(EventItemsChanged, nil)
	return true
}

func (m *Manager[T]) submitCreate(ctx context.Context, item models.QueueItem, temp int64, rest []models.QueueItem) error {
	resp, err := m.deps.API.Create(ctx, m.res.Endpoint, item.Payload, item.RequestID)
	if err != nil {
		return err
	}

	raw, ok := resp[m.res.IDKey]
	if !ok || m.res.IDKey == "" {
		raw, ok = resp["id"]
	}
	if !ok {
		return fmt.Errorf("create response has no %q", m.res.IDKey)
	}
	server, err := ParseServerID(raw)
	if err != nil {
		return fmt.Errorf("create response: %w", err)
	}

	from, to := LocalID(temp), RemoteID(server)

	m.mutations.Lock()
	m.removeConfirmed(ctx, item)
	if err = m.deps.Queue.Retarget(ctx, m.res.Table, temp, server); err != nil {
		m.log.Err(err).Int64("temp_id", temp).Int64("id", server).Msg("failed to retarget queued mutations")
	}
	pending := m.stillTargeted(ctx, server, temp, rest)

	m.mu.Lock()
	m.resolved[temp] = server
	for i := range m.items {
		if m.items[i].ID != from {
			continue
		}
		m.items[i].ID = to
		m.items[i].SyncStatus = SyncNone
		if pending {
			m.items[i].SyncStatus = SyncPending
		}
	}
	if _, ok := m.detached[from]; ok {
		delete(m.detached, from)
		m.detached[to] = struct{}{}
	}
	m.mu.Unlock()
	m.mutations.Unlock()

	for i := range rest {
		if rest[i].Op != models.OpCreate && rest[i].RecordID != nil && *rest[i].RecordID == temp {
			id := server
			rest[i].RecordID = &id
		}
	}

	m.cacheUpsert(ctx, server, item.Payload)
	return nil
}

func (m *Manager[T]) submitUpdate(ctx context.Context, item models.QueueItem, id int64, rest []models.QueueItem) error {
	id, err := m.serverID(id)
	if err != nil {
		return err
	}
	if err = m.deps.API.Update(ctx, m.res.Endpoint, id, item.Payload, item.RequestID); err != nil {
		return err
	}

	rid := RemoteID(id)
	var data json.RawMessage

	// memory already holds this patch and possibly later ones
	m.mutations.Lock()
	m.removeConfirmed(ctx, item)
	pending := m.stillTargeted(ctx, id, id, rest)

	m.mu.Lock()
	if i := indexOf(m.items, rid); i >= 0 && !pending {
		if !m.items[i].PendingDelete {
			m.items[i].SyncStatus = SyncNone
		}
		data = m.marshal(m.items[i].Data)
	}
	m.mu.Unlock()
	m.mutations.Unlock()

	if data == nil {
		data = m.confirmedRow(ctx, id, item.Payload)
	}
	m.cacheUpsert(ctx, id, data)
	return nil
}

func (m *Manager[T]) submitDelete(ctx context.Context, item models.QueueItem, id int64) error {
	id, err := m.serverID(id)
	if err != nil {
		return err
	}
	if err = m.deps.API.Delete(ctx, m.res.Endpoint, id, item.RequestID); err != nil {
		return err
	}

	rid := RemoteID(id)
	m.mutations.Lock()
	m.removeConfirmed(ctx, item)
	m.mu.Lock()
	if i := indexOf(m.items, rid); i >= 0 {
		m.items = append(m.items[:i], m.items[i+1:]...)
	}
	delete(m.detached, rid)
	m.mu.Unlock()
	m.mutations.Unlock()

	if err = m.deps.Cache.Delete(ctx, m.res.Table, id); err != nil {
		m.log.Err(err).Int64("id", id).Msg("failed to delete cached record")
	}
	return nil
}

// serverID maps a target that still holds a temp id to the server id its
// create was confirmed with.
func (m *Manager[T]) serverID(id int64) (int64, error) {
	if id >= 0 {
		return id, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if server, ok := m.resolved[id]; ok {
		return server, nil
	}
	return 0, fmt.Errorf("record %s has not been created yet", LocalID(id))
}

// removeConfirmed drops a confirmed item from the queue. The caller holds
// m.mutations.
func (m *Manager[T]) removeConfirmed(ctx context.Context, item models.QueueItem) {
	if err := m.deps.Queue.Remove(ctx, item.ID); err != nil {
		m.log.Err(err).Int64("queue_item_id", item.ID).Msg("failed to remove confirmed queue item")
	}
}

// stillTargeted reports whether a queued update or delete still targets the
// server id or the temp id it replaced. It reads the stored queue so that
// mutations queued during the drain count; rest is the fallback when the
// read fails. The caller holds m.mutations.
func (m *Manager[T]) stillTargeted(ctx context.Context, id, temp int64, rest []models.QueueItem) bool {
	items, err := m.deps.Queue.ListByTable(ctx, m.res.Table)
	if err != nil {
		m.log.Err(err).Msg("failed to read queue")
		items = rest
	}
	return targets(items, id) || targets(items, temp)
}

// confirmedRow applies a confirmed patch to the cached row of id. Memory may
// hold later optimistic edits and is not used.
func (m *Manager[T]) confirmedRow(ctx context.Context, id int64, payload json.RawMessage) json.RawMessage {
	patch, err := m.res.Parse(payload)
	if err != nil {
		return payload
	}
	rows, err := m.deps.Cache.ListAll(ctx, m.res.Table)
	if err != nil {
		m.log.Err(err).Msg("failed to read cache")
		return payload
	}
	for _, row := range rows {
		if row.ID != id {
			continue
		}
		base, perr := m.res.Parse(row.Data)
		if perr != nil {
			return payload
		}
		return m.marshal(m.applyPatch(base, patch))
	}
	return payload
}

// fail records the rejection on the item and flags the entity it targets.
func (m *Manager[T]) fail(ctx context.Context, item models.QueueItem, cause error) {
	msg := failureMessage(cause)
	if err := m.deps.Queue.MarkError(ctx, item.ID, msg); err != nil {
		m.log.Err(err).Int64("queue_item_id", item.ID).Msg("failed to mark queue item")
	}

	if target, ok := item.Target(); ok {
		id := RecordIDFromWire(target)
		m.mu.Lock()
		if i := indexOf(m.items, id); i >= 0 {
			m.items[i].SyncStatus = SyncError
		}
		m.mu.Unlock()
		m.emit(EventItemsChanged, nil)
	}
}

func (m *Manager[T]) cacheUpsert(ctx context.Context, id int64, data json.RawMessage) {
	row := models.CachedRow{ID: id, Data: data, UpdatedAt: m.opts.Now()}
	if err := m.deps.Cache.Upsert(ctx, m.res.Table, row); err != nil {
		m.log.Err(err).Int64("id", id).Msg("failed to cache confirmed record")
	}
}

// targets reports whether an update or delete in items still targets id.
func targets(items []models.QueueItem, id int64) bool {
	for _, it := range items {
		if it.Op != models.OpCreate && it.RecordID != nil && *it.RecordID == id {
			return true
		}
	}
	return false
}
