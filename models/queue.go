// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models contains the data types shared between the storage,
// transport and sync layers of go-bizsync.
package models

import (
	"encoding/json"
	"time"
)

// Op is the kind of mutation recorded in the sync queue.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Valid reports whether o is one of the known mutation kinds.
func (o Op) Valid() bool {
	switch o {
	case OpCreate, OpUpdate, OpDelete:
		return true
	default:
		return false
	}
}

// QueueStatus is the processing state of a queued mutation.
type QueueStatus string

const (
	// QueueStatusPending marks an item that has not been rejected yet.
	QueueStatusPending QueueStatus = "pending"
	// QueueStatusError marks an item whose last submission failed. The item
	// stays queued and blocks every later item of the same table.
	QueueStatusError QueueStatus = "error"
)

// QueueItem is one pending mutation in the durable sync queue.
//
// For OpCreate LocalTempID holds the negative placeholder id of the
// optimistic record and RecordID is nil. For OpUpdate and OpDelete RecordID
// holds the target id and LocalTempID is nil.
type QueueItem struct {
	// ID is the local auto-increment primary key. It defines FIFO order.
	ID int64 `json:"id"`

	// TableName is the resource discriminator (e.g. "clients").
	TableName string `json:"table_name"`

	// Op is the mutation kind.
	Op Op `json:"op"`

	// RecordID is the server id targeted by update and delete items.
	RecordID *int64 `json:"record_id,omitempty"`

	// LocalTempID is the placeholder id assigned to a record created offline.
	LocalTempID *int64 `json:"local_temp_id,omitempty"`

	// Payload is the serialized mutation body sent to the server.
	Payload json.RawMessage `json:"payload"`

	// RequestID is the idempotency key sent with every submission attempt.
	RequestID string `json:"request_id"`

	// Status is pending until a submission fails.
	Status QueueStatus `json:"status"`

	// LastError holds the diagnostic message of the last failed submission.
	LastError *string `json:"last_error,omitempty"`

	// Attempts counts failed submissions.
	Attempts int `json:"attempts"`

	// Timestamp is the moment the mutation was recorded.
	Timestamp time.Time `json:"timestamp"`
}

// Target returns the id the item operates on: LocalTempID for creates,
// RecordID otherwise. ok is false when the required id is missing.
func (q QueueItem) Target() (id int64, ok bool) {
	if q.Op == OpCreate {
		if q.LocalTempID == nil {
			return 0, false
		}
		return *q.LocalTempID, true
	}
	if q.RecordID == nil {
		return 0, false
	}
	return *q.RecordID, true
}

// CachedRow is the storage shape of a cached record: its server id and the
// server fields as a JSON document. Sync flags are never persisted.
type CachedRow struct {
	ID        int64           `json:"id"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}
