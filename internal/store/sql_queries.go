// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-bizsync/models"
)

const (
	queueTable = "sync_queue"

	cacheTablePrefix = "cache_"

	// replaceBatchSize keeps a multi-row INSERT below sqlite's host
	// parameter limit (3 columns per row).
	replaceBatchSize = 300
)

var queueColumns = []string{
	"id",
	"table_name",
	"op",
	"record_id",
	"local_temp_id",
	"payload",
	"request_id",
	"status",
	"last_error",
	"attempts",
	"created_at",
}

var cacheColumns = []string{"id", "data", "updated_at"}

// sqlb is the statement builder for sqlite ("?" placeholders).
var sqlb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// cacheTableName maps a resource table to its cache table, rejecting names
// that are not registered.
func cacheTableName(table string) (string, error) {
	if !models.IsResourceTable(table) {
		return "", fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return cacheTablePrefix + table, nil
}

// ── queue ─────────────────────────────────────────────────────────────────────

func buildInsertQueueItemQuery(item models.QueueItem) (string, []any, error) {
	return sqlb.Insert(queueTable).
		Columns(queueColumns[1:]...).
		Values(
			item.TableName,
			string(item.Op),
			item.RecordID,
			item.LocalTempID,
			string(item.Payload),
			item.RequestID,
			string(item.Status),
			item.LastError,
			item.Attempts,
			item.Timestamp.UnixMilli(),
		).
		ToSql()
}

// buildSelectQueueQuery selects queue items in FIFO order. An empty table
// selects every resource.
func buildSelectQueueQuery(table string) (string, []any, error) {
	q := sqlb.Select(queueColumns...).From(queueTable)
	if table != "" {
		q = q.Where(sq.Eq{"table_name": table})
	}
	return q.OrderBy("id ASC").ToSql()
}

func buildMarkErrorQuery(id int64, message string) (string, []any, error) {
	return sqlb.Update(queueTable).
		Set("status", string(models.QueueStatusError)).
		Set("last_error", message).
		Set("attempts", sq.Expr("attempts + 1")).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildDeleteQueueItemQuery(id int64) (string, []any, error) {
	return sqlb.Delete(queueTable).Where(sq.Eq{"id": id}).ToSql()
}

func buildRetargetQuery(table string, from, to int64) (string, []any, error) {
	return sqlb.Update(queueTable).
		Set("record_id", to).
		Where(sq.Eq{
			"table_name": table,
			"record_id":  from,
			"op":         []string{string(models.OpUpdate), string(models.OpDelete)},
		}).
		ToSql()
}

// buildClearQueueQuery deletes queue items of one table, or all items when
// table is empty.
func buildClearQueueQuery(table string) (string, []any, error) {
	q := sqlb.Delete(queueTable)
	if table != "" {
		q = q.Where(sq.Eq{"table_name": table})
	}
	return q.ToSql()
}

// ── cache ─────────────────────────────────────────────────────────────────────

func buildSelectCacheQuery(table string) (string, []any, error) {
	name, err := cacheTableName(table)
	if err != nil {
		return "", nil, err
	}
	return sqlb.Select(cacheColumns...).From(name).OrderBy("id ASC").ToSql()
}

func buildUpsertCacheQuery(table string, rows ...models.CachedRow) (string, []any, error) {
	name, err := cacheTableName(table)
	if err != nil {
		return "", nil, err
	}
	if len(rows) == 0 {
		return "", nil, fmt.Errorf("%w: no rows to insert", ErrBuildingSQLQuery)
	}

	q := sqlb.Insert(name).Columns(cacheColumns...)
	for _, row := range rows {
		q = q.Values(row.ID, string(row.Data), row.UpdatedAt.UnixMilli())
	}

	return q.Suffix("ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at").
		ToSql()
}

func buildDeleteCacheRowQuery(table string, id int64) (string, []any, error) {
	name, err := cacheTableName(table)
	if err != nil {
		return "", nil, err
	}
	return sqlb.Delete(name).Where(sq.Eq{"id": id}).ToSql()
}

func buildClearCacheQuery(table string) (string, []any, error) {
	name, err := cacheTableName(table)
	if err != nil {
		return "", nil, err
	}
	return sqlb.Delete(name).ToSql()
}
