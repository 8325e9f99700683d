package engine_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-bizsync/internal/engine"
	"github.com/MKhiriev/go-bizsync/models"
)

// memQueue is an in-memory QueueStore with sqlite ordering semantics.
type memQueue struct {
	mu     sync.Mutex
	nextID int64
	items  []models.QueueItem
	err    error

	// beforeEnqueue runs ahead of every Enqueue, outside the lock.
	beforeEnqueue func(item models.QueueItem)
}

func (q *memQueue) Enqueue(_ context.Context, item models.QueueItem) (models.QueueItem, error) {
	q.mu.Lock()
	hook := q.beforeEnqueue
	q.mu.Unlock()
	if hook != nil {
		hook(item)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return models.QueueItem{}, q.err
	}
	q.nextID++
	item.ID = q.nextID
	q.items = append(q.items, item)
	return item, nil
}

func (q *memQueue) ListByTable(_ context.Context, table string) ([]models.QueueItem, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return nil, q.err
	}
	out := make([]models.QueueItem, 0)
	for _, it := range q.items {
		if it.TableName == table {
			out = append(out, clone(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (q *memQueue) MarkError(_ context.Context, id int64, message string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.items {
		if q.items[i].ID == id {
			q.items[i].Status = models.QueueStatusError
			msg := message
			q.items[i].LastError = &msg
			q.items[i].Attempts++
			return nil
		}
	}
	return fmt.Errorf("queue item %d not found", id)
}

func (q *memQueue) Remove(_ context.Context, id int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.items {
		if q.items[i].ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("queue item %d not found", id)
}

func (q *memQueue) Retarget(_ context.Context, table string, from, to int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.items {
		it := &q.items[i]
		if it.TableName == table && it.Op != models.OpCreate && it.RecordID != nil && *it.RecordID == from {
			v := to
			it.RecordID = &v
		}
	}
	return nil
}

func (q *memQueue) ClearTable(_ context.Context, table string) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.items[:0]
	var n int64
	for _, it := range q.items {
		if it.TableName == table {
			n++
			continue
		}
		kept = append(kept, it)
	}
	q.items = kept
	return n, nil
}

func (q *memQueue) setBeforeEnqueue(fn func(models.QueueItem)) {
	q.mu.Lock()
	q.beforeEnqueue = fn
	q.mu.Unlock()
}

func (q *memQueue) snapshot() []models.QueueItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]models.QueueItem, 0, len(q.items))
	for _, it := range q.items {
		out = append(out, clone(it))
	}
	return out
}

func clone(it models.QueueItem) models.QueueItem {
	if it.RecordID != nil {
		v := *it.RecordID
		it.RecordID = &v
	}
	if it.LocalTempID != nil {
		v := *it.LocalTempID
		it.LocalTempID = &v
	}
	return it
}

// memCache is an in-memory CacheStore.
type memCache struct {
	mu   sync.Mutex
	rows map[string]map[int64]json.RawMessage

	// beforeUpsert runs ahead of every Upsert, outside the lock.
	beforeUpsert func(row models.CachedRow)
}

func newMemCache() *memCache {
	return &memCache{rows: make(map[string]map[int64]json.RawMessage)}
}

func (c *memCache) ReplaceAll(_ context.Context, table string, rows []models.CachedRow) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := make(map[int64]json.RawMessage, len(rows))
	for _, r := range rows {
		m[r.ID] = r.Data
	}
	c.rows[table] = m
	return nil
}

func (c *memCache) ListAll(_ context.Context, table string) ([]models.CachedRow, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CachedRow, 0, len(c.rows[table]))
	for id, data := range c.rows[table] {
		out = append(out, models.CachedRow{ID: id, Data: data})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *memCache) Upsert(_ context.Context, table string, row models.CachedRow) error {
	c.mu.Lock()
	hook := c.beforeUpsert
	c.mu.Unlock()
	if hook != nil {
		hook(row)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rows[table] == nil {
		c.rows[table] = make(map[int64]json.RawMessage)
	}
	c.rows[table][row.ID] = row.Data
	return nil
}

func (c *memCache) Delete(_ context.Context, table string, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rows[table], id)
	return nil
}

func (c *memCache) setBeforeUpsert(fn func(models.CachedRow)) {
	c.mu.Lock()
	c.beforeUpsert = fn
	c.mu.Unlock()
}

func (c *memCache) get(table string, id int64) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.rows[table][id]
	return data, ok
}

// fakeAPI is a RemoteAPI with per-method hooks. Unset hooks succeed.
type fakeAPI struct {
	mu      sync.Mutex
	calls   []string
	creates atomic.Int64

	list   func(endpoint, listKey string) ([]json.RawMessage, error)
	create func(payload json.RawMessage) (map[string]json.RawMessage, error)
	update func(id int64, payload json.RawMessage) error
	delete func(id int64) error
}

func (a *fakeAPI) record(call string) {
	a.mu.Lock()
	a.calls = append(a.calls, call)
	a.mu.Unlock()
}

func (a *fakeAPI) Calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.calls...)
}

func (a *fakeAPI) List(_ context.Context, endpoint, listKey string) ([]json.RawMessage, error) {
	a.record("GET " + endpoint)
	if a.list == nil {
		return []json.RawMessage{}, nil
	}
	return a.list(endpoint, listKey)
}

func (a *fakeAPI) Create(_ context.Context, endpoint string, payload json.RawMessage, _ string) (map[string]json.RawMessage, error) {
	a.record("POST " + endpoint)
	n := a.creates.Add(1)
	if a.create == nil {
		return map[string]json.RawMessage{"id": json.RawMessage(fmt.Sprint(n))}, nil
	}
	return a.create(payload)
}

func (a *fakeAPI) Update(_ context.Context, endpoint string, id int64, payload json.RawMessage, _ string) error {
	a.record(fmt.Sprintf("PUT %s/%d", endpoint, id))
	if a.update == nil {
		return nil
	}
	return a.update(id, payload)
}

func (a *fakeAPI) Delete(_ context.Context, endpoint string, id int64, _ string) error {
	a.record(fmt.Sprintf("DELETE %s/%d", endpoint, id))
	if a.delete == nil {
		return nil
	}
	return a.delete(id)
}

type fakeSession struct{ ok atomic.Bool }

func newSession(ok bool) *fakeSession {
	s := &fakeSession{}
	s.ok.Store(ok)
	return s
}

func (s *fakeSession) Authenticated() bool { return s.ok.Load() }

type seqIDs struct{ n atomic.Int64 }

func (g *seqIDs) Generate() string { return fmt.Sprintf("req-%d", g.n.Add(1)) }

// fakeTimers records scheduled retries instead of running them.
type fakeTimers struct {
	mu      sync.Mutex
	delays  []time.Duration
	pending []*fakeTimer
}

type fakeTimer struct {
	f       func()
	stopped atomic.Bool
}

func (t *fakeTimer) Stop() bool { return !t.stopped.Swap(true) }

func (ft *fakeTimers) AfterFunc(d time.Duration, f func()) engine.Timer {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	t := &fakeTimer{f: f}
	ft.delays = append(ft.delays, d)
	ft.pending = append(ft.pending, t)
	return t
}

// fire runs the oldest timer that has not been stopped. It reports false
// when there is none.
func (ft *fakeTimers) fire() bool {
	ft.mu.Lock()
	var next *fakeTimer
	for len(ft.pending) > 0 {
		t := ft.pending[0]
		ft.pending = ft.pending[1:]
		if !t.stopped.Load() {
			next = t
			break
		}
	}
	ft.mu.Unlock()

	if next == nil {
		return false
	}
	next.stopped.Store(true)
	next.f()
	return true
}

func (ft *fakeTimers) Delays() []time.Duration {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return append([]time.Duration(nil), ft.delays...)
}

// eventLog collects manager events.
type eventLog struct {
	mu     sync.Mutex
	events []engine.Event
}

func (l *eventLog) add(ev engine.Event) {
	l.mu.Lock()
	l.events = append(l.events, ev)
	l.mu.Unlock()
}

func (l *eventLog) count(kind engine.EventKind) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, ev := range l.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
