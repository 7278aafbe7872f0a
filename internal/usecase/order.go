package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/backoffice/internal/domain/errors"
	"github.com/polkiloo/backoffice/internal/domain/model"
	"github.com/polkiloo/backoffice/internal/domain/repository"
	"github.com/polkiloo/backoffice/internal/domain/workflow"
)

// StatusFilterAll disables status filtering on order lists.
const StatusFilterAll = "all"

// OrderUseCase encapsulates order management around the upstream API and the local cache.
type OrderUseCase struct {
	gateway OrderGateway
	cache   repository.OrderCache
	logger  *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(gateway OrderGateway, cache repository.OrderCache, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{gateway: gateway, cache: cache, logger: logger}
}

// List returns cached orders, newest first. An empty filter or "all" returns every order.
func (u *OrderUseCase) List(ctx context.Context, actor model.Actor, filter []string) ([]model.Order, error) {
	if !actor.Can(model.CapOrders) {
		return nil, domainErrors.ErrForbidden
	}
	statuses, err := ParseStatusFilter(filter)
	if err != nil {
		return nil, err
	}
	return u.cache.List(ctx, statuses)
}

// ParseStatusFilter converts raw status names into a filter. A nil result means no filtering.
func ParseStatusFilter(filter []string) ([]model.OrderStatus, error) {
	var statuses []model.OrderStatus
	for _, raw := range filter {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if part == StatusFilterAll {
				return nil, nil
			}
			status := model.OrderStatus(part)
			if !status.Valid() {
				return nil, domainErrors.NewValidationError("status", "unknown status "+part)
			}
			statuses = append(statuses, status)
		}
	}
	return statuses, nil
}

// Get fetches a fresh copy of the order and refreshes its cache entry.
func (u *OrderUseCase) Get(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	if !actor.Can(model.CapOrders) {
		return nil, domainErrors.ErrForbidden
	}
	order, err := u.gateway.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	storeOrder(ctx, u.cache, u.logger, *order)
	return order, nil
}

// Add creates an order in is_waiting.
func (u *OrderUseCase) Add(ctx context.Context, actor model.Actor, form model.OrderForm) (*model.Order, error) {
	if !actor.Can(model.CapOrdersAdd) {
		return nil, domainErrors.ErrForbidden
	}
	if form.Priority != "" && !actor.Can(model.CapOrdersChangePriority) {
		return nil, domainErrors.ErrForbidden
	}
	if err := ValidateOrderForm(form, model.OrderStatusWaiting); err != nil {
		return nil, err
	}

	order, err := u.gateway.CreateOrder(ctx, form)
	if err != nil {
		return nil, err
	}
	storeOrder(ctx, u.cache, u.logger, *order)
	return order, nil
}

// Update edits order fields in any status. Changing priority needs the
// change-priority capability.
func (u *OrderUseCase) Update(ctx context.Context, actor model.Actor, id string, form model.OrderForm) (*model.Order, error) {
	if !actor.Can(model.CapOrdersEdit) {
		return nil, domainErrors.ErrForbidden
	}

	current, err := cachedOrder(ctx, u.cache, u.gateway, u.logger, id)
	if err != nil {
		return nil, err
	}
	if form.Priority == "" {
		form.Priority = current.Priority
	}
	if form.Priority != current.Priority && !actor.Can(model.CapOrdersChangePriority) {
		return nil, domainErrors.ErrForbidden
	}
	if err := ValidateOrderForm(form, current.Status); err != nil {
		return nil, err
	}

	order, err := u.gateway.UpdateOrder(ctx, id, form)
	if err != nil {
		return nil, err
	}
	storeOrder(ctx, u.cache, u.logger, *order)
	return order, nil
}

// Delete removes orders in bulk and returns the ids the upstream API confirmed.
func (u *OrderUseCase) Delete(ctx context.Context, actor model.Actor, ids []string) ([]string, error) {
	if !actor.Can(model.CapOrdersDelete) {
		return nil, domainErrors.ErrForbidden
	}
	if len(ids) == 0 {
		return nil, domainErrors.NewValidationError("ids", "required")
	}

	deleted, err := u.gateway.DeleteOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	if err := u.cache.Delete(ctx, deleted); err != nil {
		u.logger.Warn("failed to evict deleted orders", slog.Int("count", len(deleted)), slog.String("error", err.Error()))
	}
	return deleted, nil
}

// Actions lists the transitions the actor may apply to the cached order.
func (u *OrderUseCase) Actions(ctx context.Context, actor model.Actor, id string) ([]workflow.OrderTransition, error) {
	if !actor.Can(model.CapOrders) {
		return nil, domainErrors.ErrForbidden
	}
	order, err := cachedOrder(ctx, u.cache, u.gateway, u.logger, id)
	if err != nil {
		return nil, err
	}
	return workflow.OrderTransitions(order.Status, actor.Capabilities), nil
}

func (u *OrderUseCase) Comments(ctx context.Context, actor model.Actor, id string) ([]model.Comment, error) {
	if !actor.Can(model.CapOrders) {
		return nil, domainErrors.ErrForbidden
	}
	return u.gateway.OrderComments(ctx, id)
}

func (u *OrderUseCase) AddComment(ctx context.Context, actor model.Actor, id, text string, private bool) (*model.Comment, error) {
	if !actor.Can(model.CapOrdersAddComment) {
		return nil, domainErrors.ErrForbidden
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domainErrors.NewValidationError("comment", "required")
	}
	return u.gateway.AddOrderComment(ctx, model.Comment{
		Order:   id,
		Owner:   actor.ID,
		Comment: text,
		Private: model.Flag(private),
	})
}

func (u *OrderUseCase) Files(ctx context.Context, actor model.Actor, id string) ([]model.File, error) {
	if !actor.Can(model.CapOrders) {
		return nil, domainErrors.ErrForbidden
	}
	return u.gateway.OrderFiles(ctx, id)
}

func (u *OrderUseCase) AddFile(ctx context.Context, actor model.Actor, id string, upload model.FileUpload) (*model.File, error) {
	if !actor.Can(model.CapOrdersAddFile) {
		return nil, domainErrors.ErrForbidden
	}
	if upload.Content == nil || upload.Filename == "" {
		return nil, domainErrors.NewValidationError("file", "required")
	}
	return u.gateway.AddOrderFile(ctx, id, upload)
}

// Refresh replaces the cached order list with the upstream one. Orders
// stored while the list was in flight are not overwritten.
func (u *OrderUseCase) Refresh(ctx context.Context) (int, error) {
	fetchedAt := time.Now()
	orders, err := u.gateway.ListOrders(ctx)
	if err != nil {
		return 0, err
	}
	if err := u.cache.ReplaceAll(ctx, orders, fetchedAt); err != nil {
		return 0, err
	}
	return len(orders), nil
}
