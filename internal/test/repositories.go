package test

import (
	"context"
	"slices"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/backoffice/internal/domain/errors"
	"github.com/polkiloo/backoffice/internal/domain/model"
	"github.com/polkiloo/backoffice/internal/domain/repository"
)

// OrderCacheStub keeps orders in memory for tests.
type OrderCacheStub struct {
	mu       sync.Mutex
	Orders   map[string]model.Order
	Err      error
	PutErr   error
	Puts     int
	Replaced int
	Deleted  []string

	stamps map[string]time.Time
}

// NewOrderCacheStub seeds the cache with orders.
func NewOrderCacheStub(orders ...model.Order) *OrderCacheStub {
	s := &OrderCacheStub{Orders: make(map[string]model.Order, len(orders))}
	for _, o := range orders {
		s.Orders[o.ID] = o
	}
	return s
}

// Get returns a copy of the cached order or not found.
func (s *OrderCacheStub) Get(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &order, nil
}

// List filters cached orders by status, sorted by id.
func (s *OrderCacheStub) List(ctx context.Context, statuses []model.OrderStatus) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		if len(statuses) == 0 || slices.Contains(statuses, o.Status) {
			out = append(out, o)
		}
	}
	slices.SortFunc(out, func(a, b model.Order) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

// Put stores order unless PutErr is configured.
func (s *OrderCacheStub) Put(ctx context.Context, order model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PutErr != nil {
		return s.PutErr
	}
	if s.Orders == nil {
		s.Orders = make(map[string]model.Order)
	}
	s.Orders[order.ID] = order
	s.stamp(order.ID, time.Now())
	s.Puts++
	return nil
}

// ReplaceAll installs the snapshot the way the postgres cache does: orders
// stored at or after fetchedAt survive, older ones are replaced or evicted.
func (s *OrderCacheStub) ReplaceAll(ctx context.Context, orders []model.Order, fetchedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.Orders == nil {
		s.Orders = make(map[string]model.Order, len(orders))
	}
	for _, o := range orders {
		if stamp, ok := s.stamps[o.ID]; ok && !stamp.Before(fetchedAt) {
			continue
		}
		s.Orders[o.ID] = o
		s.stamp(o.ID, fetchedAt)
	}
	for id := range s.Orders {
		if s.stamps[id].Before(fetchedAt) {
			delete(s.Orders, id)
			delete(s.stamps, id)
		}
	}
	s.Replaced++
	return nil
}

func (s *OrderCacheStub) stamp(id string, at time.Time) {
	if s.stamps == nil {
		s.stamps = make(map[string]time.Time)
	}
	s.stamps[id] = at
}

// Delete evicts orders and records ids.
func (s *OrderCacheStub) Delete(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, id := range ids {
		delete(s.Orders, id)
		delete(s.stamps, id)
	}
	s.Deleted = append(s.Deleted, ids...)
	return nil
}

// Order returns cached order for assertions.
func (s *OrderCacheStub) Order(id string) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.Orders[id]
	return o, ok
}

// PipelineCacheStub keeps pipelines in memory for tests.
type PipelineCacheStub struct {
	mu        sync.Mutex
	Pipelines map[string]model.Pipeline
	Err       error
	PutErr    error
	Puts      int
	Replaced  int

	stamps map[string]time.Time
}

// NewPipelineCacheStub seeds the cache with pipelines.
func NewPipelineCacheStub(pipelines ...model.Pipeline) *PipelineCacheStub {
	s := &PipelineCacheStub{Pipelines: make(map[string]model.Pipeline, len(pipelines))}
	for _, p := range pipelines {
		s.Pipelines[p.ID] = p
	}
	return s
}

func (s *PipelineCacheStub) Get(ctx context.Context, id string) (*model.Pipeline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.Pipelines[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

func (s *PipelineCacheStub) List(ctx context.Context) ([]model.Pipeline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Pipeline, 0, len(s.Pipelines))
	for _, p := range s.Pipelines {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b model.Pipeline) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

func (s *PipelineCacheStub) Put(ctx context.Context, pipeline model.Pipeline) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PutErr != nil {
		return s.PutErr
	}
	if s.Pipelines == nil {
		s.Pipelines = make(map[string]model.Pipeline)
	}
	s.Pipelines[pipeline.ID] = pipeline
	s.stamp(pipeline.ID, time.Now())
	s.Puts++
	return nil
}

func (s *PipelineCacheStub) ReplaceAll(ctx context.Context, pipelines []model.Pipeline, fetchedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.Pipelines == nil {
		s.Pipelines = make(map[string]model.Pipeline, len(pipelines))
	}
	for _, p := range pipelines {
		if stamp, ok := s.stamps[p.ID]; ok && !stamp.Before(fetchedAt) {
			continue
		}
		s.Pipelines[p.ID] = p
		s.stamp(p.ID, fetchedAt)
	}
	for id := range s.Pipelines {
		if s.stamps[id].Before(fetchedAt) {
			delete(s.Pipelines, id)
			delete(s.stamps, id)
		}
	}
	s.Replaced++
	return nil
}

func (s *PipelineCacheStub) stamp(id string, at time.Time) {
	if s.stamps == nil {
		s.stamps = make(map[string]time.Time)
	}
	s.stamps[id] = at
}

// Pipeline returns cached pipeline for assertions.
func (s *PipelineCacheStub) Pipeline(id string) (model.Pipeline, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Pipelines[id]
	return p, ok
}

var (
	_ repository.OrderCache    = (*OrderCacheStub)(nil)
	_ repository.PipelineCache = (*PipelineCacheStub)(nil)
)
