package repository

import (
	"context"
	"time"

	"github.com/polkiloo/backoffice/internal/domain/model"
)

// OrderCache stores the local read model of upstream orders.
type OrderCache interface {
	Get(ctx context.Context, id string) (*model.Order, error)
	// List returns cached orders; an empty filter returns every order.
	List(ctx context.Context, statuses []model.OrderStatus) ([]model.Order, error)
	Put(ctx context.Context, order model.Order) error
	// ReplaceAll installs a snapshot fetched at fetchedAt. Entries stored
	// after fetchedAt are kept as they are.
	ReplaceAll(ctx context.Context, orders []model.Order, fetchedAt time.Time) error
	Delete(ctx context.Context, ids []string) error
}
