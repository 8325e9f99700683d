package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-bizsync/internal/logger"
	"github.com/MKhiriev/go-bizsync/models"
)

type cacheRepository struct {
	*DB
	logger *logger.Logger
}

// NewCacheRepository returns the sqlite-backed per-resource record cache.
func NewCacheRepository(db *DB, logger *logger.Logger) CacheRepository {
	return &cacheRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *cacheRepository) ListAll(ctx context.Context, table string) ([]models.CachedRow, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectCacheQuery(table)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.ListAll").
			Str("table", table).
			Msg("failed to query cached rows")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make([]models.CachedRow, 0)
	for rows.Next() {
		var (
			row       models.CachedRow
			data      string
			updatedAt int64
		)
		if scanErr := rows.Scan(&row.ID, &data, &updatedAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "cacheRepository.ListAll").
				Str("table", table).
				Msg("failed to scan cached row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		row.Data = json.RawMessage(data)
		row.UpdatedAt = time.UnixMilli(updatedAt)
		result = append(result, row)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "cacheRepository.ListAll").
			Str("table", table).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return result, nil
}

// ReplaceAll swaps the whole cached collection in one transaction. On any
// failure the previous contents are kept.
func (c *cacheRepository) ReplaceAll(ctx context.Context, table string, rows []models.CachedRow) error {
	log := logger.FromContext(ctx)

	clearQuery, clearArgs, err := buildClearCacheQuery(table)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	inserts := make([]string, 0, len(rows)/replaceBatchSize+1)
	insertArgs := make([][]any, 0, len(rows)/replaceBatchSize+1)
	for start := 0; start < len(rows); start += replaceBatchSize {
		end := min(start+replaceBatchSize, len(rows))
		query, args, buildErr := buildUpsertCacheQuery(table, stampRows(rows[start:end])...)
		if buildErr != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}
		inserts = append(inserts, query)
		insertArgs = append(insertArgs, args)
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "cacheRepository.ReplaceAll").Str("table", table).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		log.Err(err).Str("func", "cacheRepository.ReplaceAll").Str("table", table).Msg("failed to clear cache table")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	for i, query := range inserts {
		if _, err = tx.ExecContext(ctx, query, insertArgs[i]...); err != nil {
			log.Err(err).Str("func", "cacheRepository.ReplaceAll").Str("table", table).Msg("failed to insert cached rows")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "cacheRepository.ReplaceAll").Str("table", table).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (c *cacheRepository) Upsert(ctx context.Context, table string, row models.CachedRow) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertCacheQuery(table, stampRows([]models.CachedRow{row})...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = c.withRetry(ctx, func() error {
		_, execErr := c.DB.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.Upsert").
			Str("table", table).
			Int64("id", row.ID).
			Msg("failed to upsert cached row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (c *cacheRepository) Delete(ctx context.Context, table string, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteCacheRowQuery(table, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = c.withRetry(ctx, func() error {
		_, execErr := c.DB.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.Delete").
			Str("table", table).
			Int64("id", id).
			Msg("failed to delete cached row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// stampRows fills a missing UpdatedAt and an empty Data document.
func stampRows(rows []models.CachedRow) []models.CachedRow {
	now := time.Now()
	out := make([]models.CachedRow, len(rows))
	for i, row := range rows {
		if row.UpdatedAt.IsZero() {
			row.UpdatedAt = now
		}
		if len(row.Data) == 0 {
			row.Data = json.RawMessage("{}")
		}
		out[i] = row
	}
	return out
}
