// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bizsync/models"
)

func Test_cacheTableName(t *testing.T) {
	for _, table := range models.ResourceTables {
		name, err := cacheTableName(table)
		require.NoError(t, err)
		assert.Equal(t, "cache_"+table, name)
	}

	for _, bad := range []string{"", "users", "clients; DROP TABLE sync_queue", "CLIENTS"} {
		_, err := cacheTableName(bad)
		assert.ErrorIs(t, err, ErrUnknownTable, bad)
	}
}

func Test_buildInsertQueueItemQuery(t *testing.T) {
	ts := time.UnixMilli(1700000000000)
	item := models.QueueItem{
		TableName:   models.TableClients,
		Op:          models.OpCreate,
		LocalTempID: int64Ptr(-1700000000000),
		Payload:     json.RawMessage(`{"business_name":"Acme"}`),
		RequestID:   "req-1",
		Status:      models.QueueStatusPending,
		Timestamp:   ts,
	}

	query, args, err := buildInsertQueueItemQuery(item)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "insert into sync_queue")
	for _, col := range queueColumns[1:] {
		require.Contains(t, q, col)
	}
	require.Contains(t, query, "?")
	require.NotContains(t, query, "$1")

	require.Len(t, args, len(queueColumns)-1)
	assert.Equal(t, "clients", args[0])
	assert.Equal(t, "create", args[1])
	assert.Nil(t, args[2])
	assert.Equal(t, `{"business_name":"Acme"}`, args[4])
	assert.Equal(t, int64(1700000000000), args[9])
}

func Test_buildSelectQueueQuery(t *testing.T) {
	tests := []struct {
		name     string
		table    string
		wantArgs []any
		wantWhre bool
	}{
		{name: "all tables", table: "", wantArgs: nil},
		{name: "one table", table: "jobs", wantArgs: []any{"jobs"}, wantWhre: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildSelectQueueQuery(tt.table)
			require.NoError(t, err)

			q := strings.ToLower(query)
			require.Contains(t, q, "from sync_queue")
			require.Contains(t, q, "order by id asc")
			assert.Equal(t, tt.wantWhre, strings.Contains(q, "where table_name = ?"))
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func Test_buildMarkErrorQuery(t *testing.T) {
	query, args, err := buildMarkErrorQuery(7, "HTTP 500")
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "update sync_queue")
	require.Contains(t, q, "attempts = attempts + 1")
	require.Contains(t, q, "where id = ?")
	assert.Equal(t, []any{"error", "HTTP 500", int64(7)}, args)
}

func Test_buildRetargetQuery(t *testing.T) {
	query, args, err := buildRetargetQuery("clients", -5, 42)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "update sync_queue set record_id = ?")
	require.Contains(t, q, "op in (?,?)")
	// sq.Eq sorts its keys: op, record_id, table_name
	assert.Equal(t, []any{int64(42), "update", "delete", int64(-5), "clients"}, args)
}

func Test_buildClearQueueQuery(t *testing.T) {
	query, args, err := buildClearQueueQuery("")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM sync_queue", query)
	assert.Empty(t, args)

	query, args, err = buildClearQueueQuery("folders")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM sync_queue WHERE table_name = ?", query)
	assert.Equal(t, []any{"folders"}, args)
}

func Test_buildUpsertCacheQuery(t *testing.T) {
	ts := time.UnixMilli(1000)
	query, args, err := buildUpsertCacheQuery("clients",
		models.CachedRow{ID: 1, Data: json.RawMessage(`{"a":1}`), UpdatedAt: ts},
		models.CachedRow{ID: 2, Data: json.RawMessage(`{"a":2}`), UpdatedAt: ts},
	)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "insert into cache_clients (id,data,updated_at)")
	require.Contains(t, q, "values (?,?,?),(?,?,?)")
	require.Contains(t, q, "on conflict(id) do update")
	assert.Equal(t, []any{int64(1), `{"a":1}`, int64(1000), int64(2), `{"a":2}`, int64(1000)}, args)

	_, _, err = buildUpsertCacheQuery("clients")
	assert.ErrorIs(t, err, ErrBuildingSQLQuery)

	_, _, err = buildUpsertCacheQuery("nope", models.CachedRow{ID: 1})
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func Test_buildCacheQueries_RejectUnknownTable(t *testing.T) {
	_, _, err := buildSelectCacheQuery("users")
	assert.ErrorIs(t, err, ErrUnknownTable)
	_, _, err = buildDeleteCacheRowQuery("users", 1)
	assert.ErrorIs(t, err, ErrUnknownTable)
	_, _, err = buildClearCacheQuery("users")
	assert.ErrorIs(t, err, ErrUnknownTable)
}
