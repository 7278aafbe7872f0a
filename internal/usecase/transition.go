package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	domainErrors "github.com/polkiloo/backoffice/internal/domain/errors"
	"github.com/polkiloo/backoffice/internal/domain/model"
	"github.com/polkiloo/backoffice/internal/domain/repository"
	"github.com/polkiloo/backoffice/internal/domain/workflow"
)

const (
	msgOrderStatusChanged    = "orderManagement.notifications.statusChangeSuccess"
	msgPipelineStatusChanged = "pipelineManagement.notifications.changeStatusSuccess"
	msgUnexpectedError       = "common.errors.unexpected.subTitle"
)

// OrderTransitionRequest asks to move an order to Status. Priority is
// required when the transition accepts the order.
type OrderTransitionRequest struct {
	OrderID  string
	Status   model.OrderStatus
	Priority *int
}

// PipelineTransitionRequest asks to move a pipeline to Status. Company and
// Owner are required when signing the contract.
type PipelineTransitionRequest struct {
	PipelineID string
	Status     model.PipelineStatus
	Company    string
	Owner      string
}

// TransitionUseCase validates and submits status transitions.
type TransitionUseCase struct {
	orders        OrderGateway
	pipelines     PipelineGateway
	orderCache    repository.OrderCache
	pipelineCache repository.PipelineCache
	notifier      Notifier
	inflight      *inflight
	logger        *slog.Logger
}

// NewTransitionUseCase constructs TransitionUseCase.
func NewTransitionUseCase(
	orders OrderGateway,
	pipelines PipelineGateway,
	orderCache repository.OrderCache,
	pipelineCache repository.PipelineCache,
	notifier Notifier,
	logger *slog.Logger,
) *TransitionUseCase {
	return &TransitionUseCase{
		orders:        orders,
		pipelines:     pipelines,
		orderCache:    orderCache,
		pipelineCache: pipelineCache,
		notifier:      notifier,
		inflight:      newInflight(),
		logger:        logger,
	}
}

// ChangeOrderStatus applies an order transition and returns the entity the
// upstream API reports after the change.
func (u *TransitionUseCase) ChangeOrderStatus(ctx context.Context, actor model.Actor, req OrderTransitionRequest) (*model.Order, error) {
	if req.OrderID == "" {
		return nil, domainErrors.NewValidationError("id", "required")
	}

	release, ok := u.inflight.acquire(entityKey(model.EntityOrder, req.OrderID))
	if !ok {
		return nil, domainErrors.ErrTransitionInProgress
	}
	defer release()

	order, err := cachedOrder(ctx, u.orderCache, u.orders, u.logger, req.OrderID)
	if err != nil {
		return nil, err
	}

	transition, ok := workflow.Find(workflow.OrderTransitions(order.Status, actor.Capabilities), req.Status)
	if !ok {
		return nil, domainErrors.NewValidationError("status", fmt.Sprintf("transition from %s to %s is not allowed", order.Status, req.Status))
	}

	// Submission survives the caller going away; the cache is still updated.
	submitCtx := context.WithoutCancel(ctx)

	var updated *model.Order
	switch transition.Payload {
	case workflow.PayloadPriority:
		if req.Priority == nil {
			return nil, domainErrors.NewValidationError("priority", "required")
		}
		if err := checkPriority(*req.Priority); err != nil {
			return nil, err
		}
		accepted := *order
		accepted.Status = req.Status
		accepted.Priority = strconv.Itoa(*req.Priority)
		updated, err = u.orders.AcceptOrder(submitCtx, accepted)
	default:
		updated, err = u.orders.ChangeOrderStatus(submitCtx, order.ID, req.Status)
	}
	if err != nil {
		err = asRemote("change order status", err)
		u.publishFailure(model.EntityOrder, req.OrderID, string(req.Status), err)
		return nil, err
	}

	storeOrder(submitCtx, u.orderCache, u.logger, *updated)
	u.logger.Info("order status changed",
		slog.String("order", updated.ID),
		slog.String("from", string(order.Status)),
		slog.String("to", string(updated.Status)),
		slog.String("actor", actor.ID),
	)
	u.notifier.Publish(model.Notification{
		Entity:  model.EntityOrder,
		ID:      updated.ID,
		Outcome: model.OutcomeSuccess,
		Status:  string(updated.Status),
		Message: msgOrderStatusChanged,
	})
	return updated, nil
}

// ChangePipelineStatus applies a pipeline transition. The pipeline owner may
// change status without the status-change capability.
func (u *TransitionUseCase) ChangePipelineStatus(ctx context.Context, actor model.Actor, req PipelineTransitionRequest) (*model.Pipeline, error) {
	if req.PipelineID == "" {
		return nil, domainErrors.NewValidationError("id", "required")
	}

	release, ok := u.inflight.acquire(entityKey(model.EntityPipeline, req.PipelineID))
	if !ok {
		return nil, domainErrors.ErrTransitionInProgress
	}
	defer release()

	pipeline, err := cachedPipeline(ctx, u.pipelineCache, u.pipelines, u.logger, req.PipelineID)
	if err != nil {
		return nil, err
	}

	isOwner := actor.ID != "" && actor.ID == pipeline.Owner
	transition, ok := workflow.Find(workflow.PipelineTransitions(pipeline.Status, isOwner, actor.Capabilities), req.Status)
	if !ok {
		return nil, domainErrors.NewValidationError("status", fmt.Sprintf("transition from %s to %s is not allowed", pipeline.Status, req.Status))
	}

	change := model.PipelineStatusChange{PipelineID: pipeline.ID, Status: req.Status}
	if transition.Payload == workflow.PayloadContract {
		change.Company = strings.TrimSpace(req.Company)
		change.Owner = strings.TrimSpace(req.Owner)
		if change.Company == "" {
			return nil, domainErrors.NewValidationError("company", "required")
		}
		if change.Owner == "" {
			return nil, domainErrors.NewValidationError("owner", "required")
		}
	}

	submitCtx := context.WithoutCancel(ctx)

	updated, err := u.pipelines.ChangePipelineStatus(submitCtx, change)
	if err != nil {
		err = asRemote("change pipeline status", err)
		u.publishFailure(model.EntityPipeline, req.PipelineID, req.Status.String(), err)
		return nil, err
	}

	storePipeline(submitCtx, u.pipelineCache, u.logger, *updated)
	u.logger.Info("pipeline status changed",
		slog.String("pipeline", updated.ID),
		slog.String("from", pipeline.Status.String()),
		slog.String("to", updated.Status.String()),
		slog.String("actor", actor.ID),
	)
	u.notifier.Publish(model.Notification{
		Entity:  model.EntityPipeline,
		ID:      updated.ID,
		Outcome: model.OutcomeSuccess,
		Status:  updated.Status.String(),
		Message: msgPipelineStatusChanged,
	})
	return updated, nil
}

func (u *TransitionUseCase) publishFailure(entity, id, status string, err error) {
	u.logger.Error("status transition failed",
		slog.String("entity", entity),
		slog.String("id", id),
		slog.String("status", status),
		slog.String("error", err.Error()),
	)
	u.notifier.Publish(model.Notification{
		Entity:  entity,
		ID:      id,
		Outcome: model.OutcomeError,
		Status:  status,
		Message: msgUnexpectedError,
	})
}

// asRemote tags a submission failure as remote. Upstream statuses such as
// 404 stay in the chain but no longer decide the response on their own.
func asRemote(op string, err error) error {
	var remote *domainErrors.RemoteError
	if errors.As(err, &remote) {
		return &domainErrors.RemoteError{Op: op, StatusCode: remote.StatusCode, Err: fmt.Errorf("%w: %w", domainErrors.ErrSubmissionFailed, remote.Err)}
	}
	return &domainErrors.RemoteError{Op: op, Err: fmt.Errorf("%w: %w", domainErrors.ErrSubmissionFailed, err)}
}
