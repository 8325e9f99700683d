package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type rec struct {
	Name string `json:"name,omitempty"`
}

func ent(id int64, name string) Entity[rec] {
	return Entity[rec]{ID: RecordIDFromWire(id), Data: rec{Name: name}}
}

func pending(e Entity[rec]) Entity[rec] {
	e.SyncStatus = SyncPending
	return e
}

func deleting(e Entity[rec]) Entity[rec] {
	e.PendingDelete = true
	return e
}

// ── Merge ────────────────────────────────────────────────────────────────────

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		fresh   []Entity[rec]
		current []Entity[rec]
		want    []Entity[rec]
	}{
		{
			name:  "empty current takes fresh",
			fresh: []Entity[rec]{ent(1, "a"), ent(2, "b")},
			want:  []Entity[rec]{ent(1, "a"), ent(2, "b")},
		},
		{
			name:    "synced current is replaced",
			fresh:   []Entity[rec]{ent(1, "server")},
			current: []Entity[rec]{ent(1, "stale")},
			want:    []Entity[rec]{ent(1, "server")},
		},
		{
			name:    "synced current missing from fresh is dropped",
			fresh:   []Entity[rec]{ent(1, "a")},
			current: []Entity[rec]{ent(1, "a"), ent(2, "gone")},
			want:    []Entity[rec]{ent(1, "a")},
		},
		{
			name:    "optimistic create survives",
			fresh:   []Entity[rec]{ent(1, "a")},
			current: []Entity[rec]{pending(ent(-1700000000000, "acme"))},
			want:    []Entity[rec]{ent(1, "a"), pending(ent(-1700000000000, "acme"))},
		},
		{
			name:    "pending update keeps current version",
			fresh:   []Entity[rec]{ent(1, "server")},
			current: []Entity[rec]{pending(ent(1, "local"))},
			want:    []Entity[rec]{pending(ent(1, "local"))},
		},
		{
			name:    "pending delete stays visible",
			fresh:   []Entity[rec]{ent(1, "a")},
			current: []Entity[rec]{deleting(ent(1, "a"))},
			want:    []Entity[rec]{deleting(ent(1, "a"))},
		},
		{
			name:  "duplicate fresh ids collapse",
			fresh: []Entity[rec]{ent(1, "a"), ent(1, "b")},
			want:  []Entity[rec]{ent(1, "a")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(tt.fresh, tt.current))
		})
	}
}

func TestMerge_Idempotent(t *testing.T) {
	fresh := []Entity[rec]{ent(1, "a"), ent(2, "b")}
	current := []Entity[rec]{
		pending(ent(2, "local")),
		ent(3, "gone"),
		pending(ent(-5, "new")),
		deleting(ent(1, "a")),
	}

	once := Merge(fresh, current)
	twice := Merge(fresh, once)

	assert.Equal(t, once, twice)
	assert.Len(t, once, 3)
}

func TestMergeQueued(t *testing.T) {
	queued := func(ids ...int64) map[RecordID]struct{} {
		out := make(map[RecordID]struct{}, len(ids))
		for _, id := range ids {
			out[RecordIDFromWire(id)] = struct{}{}
		}
		return out
	}

	tests := []struct {
		name    string
		fresh   []Entity[rec]
		current []Entity[rec]
		queued  map[RecordID]struct{}
		want    []Entity[rec]
	}{
		{
			name:    "queued edit keeps current version",
			fresh:   []Entity[rec]{ent(7, "Server")},
			current: []Entity[rec]{pending(ent(7, "Mine"))},
			queued:  queued(7),
			want:    []Entity[rec]{pending(ent(7, "Mine"))},
		},
		{
			name:    "edit no longer queued loses to fresh",
			fresh:   []Entity[rec]{ent(7, "Server")},
			current: []Entity[rec]{pending(ent(7, "Mine"))},
			queued:  queued(),
			want:    []Entity[rec]{ent(7, "Server")},
		},
		{
			name:    "resolved temp record is dropped",
			fresh:   []Entity[rec]{ent(42, "acme")},
			current: []Entity[rec]{ent(42, "acme"), pending(ent(-9, "acme"))},
			queued:  queued(),
			want:    []Entity[rec]{ent(42, "acme")},
		},
		{
			name:    "queued create survives",
			fresh:   []Entity[rec]{ent(1, "a")},
			current: []Entity[rec]{pending(ent(-9, "acme"))},
			queued:  queued(-9),
			want:    []Entity[rec]{ent(1, "a"), pending(ent(-9, "acme"))},
		},
		{
			name:    "unknown queue behaves like Merge",
			fresh:   []Entity[rec]{ent(7, "Server")},
			current: []Entity[rec]{pending(ent(7, "Mine")), pending(ent(-9, "acme"))},
			want:    []Entity[rec]{pending(ent(7, "Mine")), pending(ent(-9, "acme"))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeQueued(tt.fresh, tt.current, tt.queued))
		})
	}
}

func TestMergeQueued_Idempotent(t *testing.T) {
	fresh := []Entity[rec]{ent(1, "a"), ent(2, "b")}
	current := []Entity[rec]{
		pending(ent(2, "local")),
		pending(ent(-5, "new")),
		pending(ent(-6, "resolved")),
		deleting(ent(1, "a")),
	}
	queued := map[RecordID]struct{}{RecordIDFromWire(2): {}, RecordIDFromWire(-5): {}}

	once := MergeQueued(fresh, current, queued)
	twice := MergeQueued(fresh, once, queued)

	assert.Equal(t, once, twice)
	assert.Equal(t, []Entity[rec]{ent(1, "a"), pending(ent(2, "local")), pending(ent(-5, "new"))}, once)
}
