package handlers

import (
	"context"

	"github.com/polkiloo/backoffice/internal/domain/model"
	"github.com/polkiloo/backoffice/internal/domain/workflow"
	"github.com/polkiloo/backoffice/internal/usecase"
)

// AuthFacade resolves bearer tokens into actors.
type AuthFacade interface {
	ParseToken(token string) (model.Actor, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Orders(ctx context.Context, actor model.Actor, statuses []string) ([]model.Order, error)
	Order(ctx context.Context, actor model.Actor, id string) (*model.Order, error)
	AddOrder(ctx context.Context, actor model.Actor, form model.OrderForm) (*model.Order, error)
	UpdateOrder(ctx context.Context, actor model.Actor, id string, form model.OrderForm) (*model.Order, error)
	DeleteOrders(ctx context.Context, actor model.Actor, ids []string) ([]string, error)
	OrderActions(ctx context.Context, actor model.Actor, id string) ([]workflow.OrderTransition, error)
	ChangeOrderStatus(ctx context.Context, actor model.Actor, req usecase.OrderTransitionRequest) (*model.Order, error)
	OrderComments(ctx context.Context, actor model.Actor, id string) ([]model.Comment, error)
	AddOrderComment(ctx context.Context, actor model.Actor, id, text string, private bool) (*model.Comment, error)
	OrderFiles(ctx context.Context, actor model.Actor, id string) ([]model.File, error)
	AddOrderFile(ctx context.Context, actor model.Actor, id string, upload model.FileUpload) (*model.File, error)
}

// PipelineFacade encapsulates pipeline operations exposed via HTTP.
type PipelineFacade interface {
	Pipelines(ctx context.Context, actor model.Actor) ([]model.Pipeline, error)
	Pipeline(ctx context.Context, actor model.Actor, id string) (*model.Pipeline, error)
	AddPipeline(ctx context.Context, actor model.Actor, form model.PipelineForm) (*model.Pipeline, error)
	UpdatePipeline(ctx context.Context, actor model.Actor, id string, form model.PipelineForm) (*model.Pipeline, error)
	PipelineActions(ctx context.Context, actor model.Actor, id string) ([]workflow.PipelineTransition, error)
	ChangePipelineStatus(ctx context.Context, actor model.Actor, req usecase.PipelineTransitionRequest) (*model.Pipeline, error)
	AddPipelineComment(ctx context.Context, actor model.Actor, id, text string, private bool) (*model.Pipeline, error)
	AddPipelineFile(ctx context.Context, actor model.Actor, id string, upload model.FileUpload) (*model.Pipeline, error)
	UpdatePipelineAdditionalInfo(ctx context.Context, actor model.Actor, id string, info model.AdditionalInfo) (*model.Pipeline, error)
}

// HealthFacade reports readiness of backing services.
type HealthFacade interface {
	Ping(ctx context.Context) error
}

// BackofficeFacade aggregates the full set of operations used across handlers.
type BackofficeFacade interface {
	AuthFacade
	OrderFacade
	PipelineFacade
	HealthFacade
}
