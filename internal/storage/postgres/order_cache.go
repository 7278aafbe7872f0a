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

type orderCache struct {
	storage *Storage
}

const upsertOrder = `INSERT INTO cached_orders (id, status, created_at, payload, refreshed_at)
                     VALUES ($1, $2, $3, $4, $5)
                     ON CONFLICT (id) DO UPDATE
                     SET status = EXCLUDED.status,
                         created_at = EXCLUDED.created_at,
                         payload = EXCLUDED.payload,
                         refreshed_at = EXCLUDED.refreshed_at`

// upsertSnapshotOrder leaves rows stored after the snapshot was fetched.
const upsertSnapshotOrder = upsertOrder + `
                     WHERE cached_orders.refreshed_at < EXCLUDED.refreshed_at`

func (r *orderCache) Get(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT payload FROM cached_orders WHERE id=$1`
	var payload []byte
	if err := r.storage.pool.QueryRow(ctx, query, id).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	var order model.Order
	if err := json.Unmarshal(payload, &order); err != nil {
		return nil, fmt.Errorf("decode cached order %s: %w", id, err)
	}
	return &order, nil
}

func (r *orderCache) List(ctx context.Context, statuses []model.OrderStatus) ([]model.Order, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if len(statuses) == 0 {
		rows, err = r.storage.pool.Query(ctx, `SELECT payload FROM cached_orders ORDER BY created_at DESC, id`)
	} else {
		filter := make([]string, 0, len(statuses))
		for _, s := range statuses {
			filter = append(filter, string(s))
		}
		rows, err = r.storage.pool.Query(ctx, `SELECT payload FROM cached_orders WHERE status = ANY($1) ORDER BY created_at DESC, id`, filter)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Order{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var o model.Order
		if err := json.Unmarshal(payload, &o); err != nil {
			return nil, fmt.Errorf("decode cached order: %w", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderCache) Put(ctx context.Context, order model.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return err
	}
	_, err = r.storage.pool.Exec(ctx, upsertOrder, order.ID, string(order.Status), order.CreatedAt, payload, time.Now().UTC())
	return err
}

func (r *orderCache) ReplaceAll(ctx context.Context, orders []model.Order, fetchedAt time.Time) error {
	fetchedAt = fetchedAt.UTC()
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, order := range orders {
			payload, err := json.Marshal(order)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, upsertSnapshotOrder, order.ID, string(order.Status), order.CreatedAt, payload, fetchedAt); err != nil {
				return err
			}
		}
		_, err := tx.Exec(ctx, `DELETE FROM cached_orders WHERE refreshed_at < $1`, fetchedAt)
		return err
	})
	if err != nil {
		return err
	}
	r.storage.logger.Debug("order cache replaced", slog.Int("count", len(orders)))
	return nil
}

func (r *orderCache) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM cached_orders WHERE id = ANY($1)`, ids)
	return err
}
