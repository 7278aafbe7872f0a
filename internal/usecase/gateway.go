package usecase

import (
	"context"

	"github.com/polkiloo/backoffice/internal/domain/model"
)

// OrderGateway is the upstream data-access contract for orders.
type OrderGateway interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	CreateOrder(ctx context.Context, form model.OrderForm) (*model.Order, error)
	UpdateOrder(ctx context.Context, id string, form model.OrderForm) (*model.Order, error)
	DeleteOrders(ctx context.Context, ids []string) ([]string, error)
	AcceptOrder(ctx context.Context, order model.Order) (*model.Order, error)
	ChangeOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	OrderComments(ctx context.Context, id string) ([]model.Comment, error)
	AddOrderComment(ctx context.Context, comment model.Comment) (*model.Comment, error)
	OrderFiles(ctx context.Context, id string) ([]model.File, error)
	AddOrderFile(ctx context.Context, orderID string, upload model.FileUpload) (*model.File, error)
}

// PipelineGateway is the upstream data-access contract for pipelines.
type PipelineGateway interface {
	ListPipelines(ctx context.Context) ([]model.Pipeline, error)
	GetPipeline(ctx context.Context, id string) (*model.Pipeline, error)
	CreatePipeline(ctx context.Context, form model.PipelineForm) (*model.Pipeline, error)
	UpdatePipeline(ctx context.Context, id string, form model.PipelineForm) (*model.Pipeline, error)
	ChangePipelineStatus(ctx context.Context, change model.PipelineStatusChange) (*model.Pipeline, error)
	AddPipelineComment(ctx context.Context, comment model.Comment) (*model.Pipeline, error)
	AddPipelineFile(ctx context.Context, pipelineID string, upload model.FileUpload) (*model.Pipeline, error)
	UpdatePipelineAdditionalInfo(ctx context.Context, info model.AdditionalInfo) (*model.Pipeline, error)
}

// Notifier receives transition outcomes. Publish must not block.
type Notifier interface {
	Publish(n model.Notification)
}
