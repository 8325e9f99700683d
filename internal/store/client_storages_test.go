package store

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bizsync/internal/config"
	"github.com/MKhiriev/go-bizsync/internal/logger"
	"github.com/MKhiriev/go-bizsync/models"
)

func newSQLiteStorages(t *testing.T) *ClientStorages {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "nested", "bizsync.db")

	s, err := NewClientStorages(testContext(), config.ClientStorage{DB: config.ClientDB{DSN: dsn}}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestClientStorages_QueueRoundTrip(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	create, err := s.Queue.Enqueue(ctx, models.QueueItem{
		TableName: "clients", Op: models.OpCreate, LocalTempID: int64Ptr(-100),
		Payload: json.RawMessage(`{"business_name":"Acme"}`), RequestID: "a",
	})
	require.NoError(t, err)
	update, err := s.Queue.Enqueue(ctx, models.QueueItem{
		TableName: "clients", Op: models.OpUpdate, RecordID: int64Ptr(-100),
		Payload: json.RawMessage(`{"phone":"1"}`), RequestID: "b",
	})
	require.NoError(t, err)
	_, err = s.Queue.Enqueue(ctx, models.QueueItem{
		TableName: "jobs", Op: models.OpDelete, RecordID: int64Ptr(7), RequestID: "c",
	})
	require.NoError(t, err)
	assert.Less(t, create.ID, update.ID)

	require.NoError(t, s.Queue.Retarget(ctx, "clients", -100, 42))
	require.NoError(t, s.Queue.MarkError(ctx, create.ID, "HTTP 500"))

	items, err := s.Queue.ListByTable(ctx, "clients")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.QueueStatusError, items[0].Status)
	assert.Equal(t, 1, items[0].Attempts)
	assert.Nil(t, items[0].RecordID, "create items are not retargeted")
	require.NotNil(t, items[1].RecordID)
	assert.Equal(t, int64(42), *items[1].RecordID)

	require.NoError(t, s.Queue.Remove(ctx, create.ID))
	assert.ErrorIs(t, s.Queue.Remove(ctx, create.ID), ErrQueueItemNotFound)

	n, err := s.Queue.ClearTable(ctx, "clients")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	all, err := s.Queue.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "jobs", all[0].TableName)
}

func TestClientStorages_CacheRoundTrip(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	require.NoError(t, s.Cache.ReplaceAll(ctx, "clients", []models.CachedRow{
		{ID: 2, Data: json.RawMessage(`{"business_name":"B"}`)},
		{ID: 1, Data: json.RawMessage(`{"business_name":"A"}`)},
	}))
	require.NoError(t, s.Cache.Upsert(ctx, "clients", models.CachedRow{ID: 2, Data: json.RawMessage(`{"business_name":"B2"}`)}))
	require.NoError(t, s.Cache.Upsert(ctx, "clients", models.CachedRow{ID: 3, Data: json.RawMessage(`{"business_name":"C"}`)}))
	require.NoError(t, s.Cache.Delete(ctx, "clients", 1))

	rows, err := s.Cache.ListAll(ctx, "clients")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[0].ID)
	assert.JSONEq(t, `{"business_name":"B2"}`, string(rows[0].Data))
	assert.Equal(t, int64(3), rows[1].ID)

	require.NoError(t, s.Cache.ReplaceAll(ctx, "clients", nil))
	rows, err = s.Cache.ListAll(ctx, "clients")
	require.NoError(t, err)
	assert.Empty(t, rows)

	other, err := s.Cache.ListAll(ctx, "jobs")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestClientStorages_SurvivesReopen(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "bizsync.db")
	cfg := config.ClientStorage{DB: config.ClientDB{DSN: dsn}}
	ctx := testContext()

	s, err := NewClientStorages(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	_, err = s.Queue.Enqueue(ctx, models.QueueItem{
		TableName: "folders", Op: models.OpCreate, LocalTempID: int64Ptr(-1), RequestID: "x",
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := NewClientStorages(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	items, err := reopened.Queue.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "x", items[0].RequestID)
}

func Test_dbFilePath(t *testing.T) {
	assert.Equal(t, "a.db", dbFilePath("a.db"))
	assert.Equal(t, "a.db", dbFilePath("file:a.db?_busy_timeout=5000"))
}
