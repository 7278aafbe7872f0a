package usecase

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/polkiloo/backoffice/internal/domain/errors"
	"github.com/polkiloo/backoffice/internal/domain/model"
	"github.com/polkiloo/backoffice/internal/domain/repository"
)

// cachedOrder reads the order from cache, fetching and caching it on a miss.
func cachedOrder(ctx context.Context, cache repository.OrderCache, gateway OrderGateway, logger *slog.Logger, id string) (*model.Order, error) {
	order, err := cache.Get(ctx, id)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	order, err = gateway.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	storeOrder(ctx, cache, logger, *order)
	return order, nil
}

func cachedPipeline(ctx context.Context, cache repository.PipelineCache, gateway PipelineGateway, logger *slog.Logger, id string) (*model.Pipeline, error) {
	pipeline, err := cache.Get(ctx, id)
	if err == nil {
		return pipeline, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	pipeline, err = gateway.GetPipeline(ctx, id)
	if err != nil {
		return nil, err
	}
	storePipeline(ctx, cache, logger, *pipeline)
	return pipeline, nil
}

// storeOrder writes through to cache. The upstream API stays authoritative,
// so a failed write is logged rather than returned.
func storeOrder(ctx context.Context, cache repository.OrderCache, logger *slog.Logger, order model.Order) {
	if err := cache.Put(ctx, order); err != nil {
		logger.Warn("failed to cache order", slog.String("order", order.ID), slog.String("error", err.Error()))
	}
}

func storePipeline(ctx context.Context, cache repository.PipelineCache, logger *slog.Logger, pipeline model.Pipeline) {
	if err := cache.Put(ctx, pipeline); err != nil {
		logger.Warn("failed to cache pipeline", slog.String("pipeline", pipeline.ID), slog.String("error", err.Error()))
	}
}
