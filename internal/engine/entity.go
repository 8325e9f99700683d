package engine

import (
	"encoding/json"
	"strconv"
)

// RecordID identifies a record either by the temporary id assigned when it
// was created locally or by the id the server assigned.
//
// On the wire and in storage a local id is the negative temp id and a remote
// id is positive. The zero RecordID is invalid.
type RecordID struct {
	value int64
}

// LocalID wraps a temp id. temp must be negative.
func LocalID(temp int64) RecordID {
	if temp > 0 {
		temp = -temp
	}
	return RecordID{value: temp}
}

// RemoteID wraps a server id.
func RemoteID(id int64) RecordID {
	return RecordID{value: id}
}

// RecordIDFromWire maps a stored id back to its tagged form.
func RecordIDFromWire(v int64) RecordID {
	return RecordID{value: v}
}

// IsLocal reports whether the record has not been confirmed by the server.
func (r RecordID) IsLocal() bool { return r.value < 0 }

// Wire returns the stored representation.
func (r RecordID) Wire() int64 { return r.value }

// Valid reports whether r is a non-zero id.
func (r RecordID) Valid() bool { return r.value != 0 }

func (r RecordID) String() string {
	if r.IsLocal() {
		return "local:" + strconv.FormatInt(-r.value, 10)
	}
	return strconv.FormatInt(r.value, 10)
}

func (r RecordID) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value)
}

func (r *RecordID) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &r.value)
}

// SyncStatus is the replication state of an entity.
type SyncStatus string

const (
	// SyncNone means the entity matches the last confirmed server state.
	SyncNone SyncStatus = ""
	// SyncPending means a queued mutation for the entity has not been
	// confirmed yet.
	SyncPending SyncStatus = "pending"
	// SyncError means the server rejected the entity's oldest queued
	// mutation. The mutation stays queued.
	SyncError SyncStatus = "error"
)

// Entity is a record as exposed to the UI: server fields plus sync flags.
// Sync flags are never persisted to the cache.
type Entity[T any] struct {
	ID            RecordID   `json:"id"`
	Data          T          `json:"data"`
	SyncStatus    SyncStatus `json:"sync_status,omitempty"`
	PendingDelete bool       `json:"pending_delete,omitempty"`
}

// Unsynced reports whether the entity carries local changes the server has
// not confirmed.
func (e Entity[T]) Unsynced() bool {
	return e.SyncStatus != SyncNone || e.PendingDelete
}

func indexOf[T any](items []Entity[T], id RecordID) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
