package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/polkiloo/backoffice/internal/domain/model"
	"github.com/polkiloo/backoffice/internal/domain/workflow"
	pkgAuth "github.com/polkiloo/backoffice/internal/pkg/auth"
	"github.com/polkiloo/backoffice/internal/usecase"
)

// HealthChecker reports readiness of a backing service.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// BackofficeFacade is the single entry point used by transport and worker layers.
type BackofficeFacade struct {
	orders      *usecase.OrderUseCase
	pipelines   *usecase.PipelineUseCase
	transitions *usecase.TransitionUseCase
	tokens      pkgAuth.Strategy
	health      HealthChecker
	logger      *slog.Logger
}

func NewBackofficeFacade(
	orders *usecase.OrderUseCase,
	pipelines *usecase.PipelineUseCase,
	transitions *usecase.TransitionUseCase,
	tokens pkgAuth.Strategy,
	health HealthChecker,
	logger *slog.Logger,
) *BackofficeFacade {
	return &BackofficeFacade{
		orders:      orders,
		pipelines:   pipelines,
		transitions: transitions,
		tokens:      tokens,
		health:      health,
		logger:      logger,
	}
}

func (f *BackofficeFacade) ParseToken(token string) (model.Actor, error) {
	return f.tokens.ParseToken(token)
}

func (f *BackofficeFacade) Ping(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

// RefreshCache reloads orders and pipelines. Both are attempted even when
// one of them fails.
func (f *BackofficeFacade) RefreshCache(ctx context.Context) error {
	orders, orderErr := f.orders.Refresh(ctx)
	if orderErr != nil {
		orderErr = fmt.Errorf("refresh orders: %w", orderErr)
	}
	pipelines, pipelineErr := f.pipelines.Refresh(ctx)
	if pipelineErr != nil {
		pipelineErr = fmt.Errorf("refresh pipelines: %w", pipelineErr)
	}
	if err := errors.Join(orderErr, pipelineErr); err != nil {
		return err
	}
	f.logger.Debug("entity cache refreshed", slog.Int("orders", orders), slog.Int("pipelines", pipelines))
	return nil
}

func (f *BackofficeFacade) Orders(ctx context.Context, actor model.Actor, statuses []string) ([]model.Order, error) {
	return f.orders.List(ctx, actor, statuses)
}

func (f *BackofficeFacade) Order(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	return f.orders.Get(ctx, actor, id)
}

func (f *BackofficeFacade) AddOrder(ctx context.Context, actor model.Actor, form model.OrderForm) (*model.Order, error) {
	return f.orders.Add(ctx, actor, form)
}

func (f *BackofficeFacade) UpdateOrder(ctx context.Context, actor model.Actor, id string, form model.OrderForm) (*model.Order, error) {
	return f.orders.Update(ctx, actor, id, form)
}

func (f *BackofficeFacade) DeleteOrders(ctx context.Context, actor model.Actor, ids []string) ([]string, error) {
	return f.orders.Delete(ctx, actor, ids)
}

func (f *BackofficeFacade) OrderActions(ctx context.Context, actor model.Actor, id string) ([]workflow.OrderTransition, error) {
	return f.orders.Actions(ctx, actor, id)
}

func (f *BackofficeFacade) ChangeOrderStatus(ctx context.Context, actor model.Actor, req usecase.OrderTransitionRequest) (*model.Order, error) {
	return f.transitions.ChangeOrderStatus(ctx, actor, req)
}

func (f *BackofficeFacade) OrderComments(ctx context.Context, actor model.Actor, id string) ([]model.Comment, error) {
	return f.orders.Comments(ctx, actor, id)
}

func (f *BackofficeFacade) AddOrderComment(ctx context.Context, actor model.Actor, id, text string, private bool) (*model.Comment, error) {
	return f.orders.AddComment(ctx, actor, id, text, private)
}

func (f *BackofficeFacade) OrderFiles(ctx context.Context, actor model.Actor, id string) ([]model.File, error) {
	return f.orders.Files(ctx, actor, id)
}

func (f *BackofficeFacade) AddOrderFile(ctx context.Context, actor model.Actor, id string, upload model.FileUpload) (*model.File, error) {
	return f.orders.AddFile(ctx, actor, id, upload)
}

func (f *BackofficeFacade) Pipelines(ctx context.Context, actor model.Actor) ([]model.Pipeline, error) {
	return f.pipelines.List(ctx, actor)
}

func (f *BackofficeFacade) Pipeline(ctx context.Context, actor model.Actor, id string) (*model.Pipeline, error) {
	return f.pipelines.Get(ctx, actor, id)
}

func (f *BackofficeFacade) AddPipeline(ctx context.Context, actor model.Actor, form model.PipelineForm) (*model.Pipeline, error) {
	return f.pipelines.Add(ctx, actor, form)
}

func (f *BackofficeFacade) UpdatePipeline(ctx context.Context, actor model.Actor, id string, form model.PipelineForm) (*model.Pipeline, error) {
	return f.pipelines.Update(ctx, actor, id, form)
}

func (f *BackofficeFacade) PipelineActions(ctx context.Context, actor model.Actor, id string) ([]workflow.PipelineTransition, error) {
	return f.pipelines.Actions(ctx, actor, id)
}

func (f *BackofficeFacade) ChangePipelineStatus(ctx context.Context, actor model.Actor, req usecase.PipelineTransitionRequest) (*model.Pipeline, error) {
	return f.transitions.ChangePipelineStatus(ctx, actor, req)
}

func (f *BackofficeFacade) AddPipelineComment(ctx context.Context, actor model.Actor, id, text string, private bool) (*model.Pipeline, error) {
	return f.pipelines.AddComment(ctx, actor, id, text, private)
}

func (f *BackofficeFacade) AddPipelineFile(ctx context.Context, actor model.Actor, id string, upload model.FileUpload) (*model.Pipeline, error) {
	return f.pipelines.AddFile(ctx, actor, id, upload)
}

func (f *BackofficeFacade) UpdatePipelineAdditionalInfo(ctx context.Context, actor model.Actor, id string, info model.AdditionalInfo) (*model.Pipeline, error) {
	return f.pipelines.UpdateAdditionalInfo(ctx, actor, id, info)
}
