package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-bizsync/internal/logger"
	"github.com/MKhiriev/go-bizsync/models"
)

type queueRepository struct {
	*DB
	logger *logger.Logger
}

// NewQueueRepository returns the sqlite-backed durable mutation queue.
func NewQueueRepository(db *DB, logger *logger.Logger) QueueRepository {
	return &queueRepository{
		DB:     db,
		logger: logger,
	}
}

func (q *queueRepository) Enqueue(ctx context.Context, item models.QueueItem) (models.QueueItem, error) {
	log := logger.FromContext(ctx)

	if !item.Op.Valid() || !models.IsResourceTable(item.TableName) {
		return models.QueueItem{}, fmt.Errorf("%w: op=%q table=%q", ErrInvalidQueueItem, item.Op, item.TableName)
	}
	if _, ok := item.Target(); !ok {
		return models.QueueItem{}, fmt.Errorf("%w: missing target id for %s", ErrInvalidQueueItem, item.Op)
	}

	if item.Status == "" {
		item.Status = models.QueueStatusPending
	}
	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now()
	}
	if len(item.Payload) == 0 {
		item.Payload = json.RawMessage("{}")
	}

	query, args, err := buildInsertQueueItemQuery(item)
	if err != nil {
		return models.QueueItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var res sql.Result
	err = q.withRetry(ctx, func() error {
		var execErr error
		res, execErr = q.DB.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Enqueue").
			Str("table", item.TableName).
			Str("op", string(item.Op)).
			Msg("failed to insert queue item")
		return models.QueueItem{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.QueueItem{}, fmt.Errorf("failed to read queue item id: %w", err)
	}
	item.ID = id

	return item, nil
}

func (q *queueRepository) List(ctx context.Context) ([]models.QueueItem, error) {
	return q.list(ctx, "")
}

func (q *queueRepository) ListByTable(ctx context.Context, table string) ([]models.QueueItem, error) {
	return q.list(ctx, table)
}

func (q *queueRepository) list(ctx context.Context, table string) ([]models.QueueItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectQueueQuery(table)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.list").
			Str("table", table).
			Msg("failed to query queue items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.QueueItem, 0)
	for rows.Next() {
		item, scanErr := scanQueueItem(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "queueRepository.list").
				Str("table", table).
				Msg("failed to scan queue item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "queueRepository.list").
			Str("table", table).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}

func scanQueueItem(rows *sql.Rows) (models.QueueItem, error) {
	var (
		item        models.QueueItem
		op, status  string
		payload     string
		recordID    sql.NullInt64
		localTempID sql.NullInt64
		lastError   sql.NullString
		createdAt   int64
	)

	err := rows.Scan(
		&item.ID,
		&item.TableName,
		&op,
		&recordID,
		&localTempID,
		&payload,
		&item.RequestID,
		&status,
		&lastError,
		&item.Attempts,
		&createdAt,
	)
	if err != nil {
		return models.QueueItem{}, err
	}

	item.Op = models.Op(op)
	item.Status = models.QueueStatus(status)
	item.Payload = json.RawMessage(payload)
	item.Timestamp = time.UnixMilli(createdAt)
	if recordID.Valid {
		item.RecordID = &recordID.Int64
	}
	if localTempID.Valid {
		item.LocalTempID = &localTempID.Int64
	}
	if lastError.Valid {
		item.LastError = &lastError.String
	}

	return item, nil
}

func (q *queueRepository) MarkError(ctx context.Context, id int64, message string) error {
	query, args, err := buildMarkErrorQuery(id, message)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return q.execAffectingItem(ctx, "queueRepository.MarkError", id, query, args)
}

func (q *queueRepository) Remove(ctx context.Context, id int64) error {
	query, args, err := buildDeleteQueueItemQuery(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return q.execAffectingItem(ctx, "queueRepository.Remove", id, query, args)
}

func (q *queueRepository) execAffectingItem(ctx context.Context, funcName string, id int64, query string, args []any) error {
	log := logger.FromContext(ctx)

	var res sql.Result
	err := q.withRetry(ctx, func() error {
		var execErr error
		res, execErr = q.DB.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Int64("queue_item_id", id).
			Msg("failed to execute queue statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id=%d", ErrQueueItemNotFound, id)
	}

	return nil
}

func (q *queueRepository) Retarget(ctx context.Context, table string, from, to int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildRetargetQuery(table, from, to)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = q.withRetry(ctx, func() error {
		_, execErr := q.DB.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Retarget").
			Str("table", table).
			Int64("from", from).
			Int64("to", to).
			Msg("failed to retarget queue items")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (q *queueRepository) Clear(ctx context.Context) (int64, error) {
	return q.clear(ctx, "")
}

func (q *queueRepository) ClearTable(ctx context.Context, table string) (int64, error) {
	return q.clear(ctx, table)
}

func (q *queueRepository) clear(ctx context.Context, table string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildClearQueueQuery(table)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var res sql.Result
	err = q.withRetry(ctx, func() error {
		var execErr error
		res, execErr = q.DB.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.clear").
			Str("table", table).
			Msg("failed to clear queue")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
