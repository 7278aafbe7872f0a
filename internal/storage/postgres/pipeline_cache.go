package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/backoffice/internal/domain/errors"
	"github.com/polkiloo/backoffice/internal/domain/model"
)

type pipelineCache struct {
	storage *Storage
}

const upsertPipeline = `INSERT INTO cached_pipelines (id, owner, status, created_at, payload, refreshed_at)
                        VALUES ($1, $2, $3, $4, $5, $6)
                        ON CONFLICT (id) DO UPDATE
                        SET owner = EXCLUDED.owner,
                            status = EXCLUDED.status,
                            created_at = EXCLUDED.created_at,
                            payload = EXCLUDED.payload,
                            refreshed_at = EXCLUDED.refreshed_at`

const upsertSnapshotPipeline = upsertPipeline + `
                        WHERE cached_pipelines.refreshed_at < EXCLUDED.refreshed_at`

func (r *pipelineCache) Get(ctx context.Context, id string) (*model.Pipeline, error) {
	const query = `SELECT payload FROM cached_pipelines WHERE id=$1`
	var payload []byte
	if err := r.storage.pool.QueryRow(ctx, query, id).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	var p model.Pipeline
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("decode cached pipeline %s: %w", id, err)
	}
	return &p, nil
}

func (r *pipelineCache) List(ctx context.Context) ([]model.Pipeline, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT payload FROM cached_pipelines ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Pipeline{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var p model.Pipeline
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode cached pipeline: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *pipelineCache) Put(ctx context.Context, p model.Pipeline) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = r.storage.pool.Exec(ctx, upsertPipeline, p.ID, p.Owner, int(p.Status), p.CreatedAt, payload, time.Now().UTC())
	return err
}

func (r *pipelineCache) ReplaceAll(ctx context.Context, pipelines []model.Pipeline, fetchedAt time.Time) error {
	fetchedAt = fetchedAt.UTC()
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, p := range pipelines {
			payload, err := json.Marshal(p)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, upsertSnapshotPipeline, p.ID, p.Owner, int(p.Status), p.CreatedAt, payload, fetchedAt); err != nil {
				return err
			}
		}
		_, err := tx.Exec(ctx, `DELETE FROM cached_pipelines WHERE refreshed_at < $1`, fetchedAt)
		return err
	})
	if err != nil {
		return err
	}
	r.storage.logger.Debug("pipeline cache replaced", slog.Int("count", len(pipelines)))
	return nil
}
