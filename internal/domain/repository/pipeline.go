package repository

import (
	"context"
	"time"

	"github.com/polkiloo/backoffice/internal/domain/model"
)

// PipelineCache stores the local read model of upstream pipelines.
type PipelineCache interface {
	Get(ctx context.Context, id string) (*model.Pipeline, error)
	List(ctx context.Context) ([]model.Pipeline, error)
	Put(ctx context.Context, pipeline model.Pipeline) error
	// ReplaceAll installs a snapshot fetched at fetchedAt. Entries stored
	// after fetchedAt are kept as they are.
	ReplaceAll(ctx context.Context, pipelines []model.Pipeline, fetchedAt time.Time) error
}
