package test

import (
	"context"
	"sync"

	"github.com/polkiloo/backoffice/internal/domain/model"
)

// GatewayStub mimics the upstream back-office API. Unset functions echo their
// input back; every call is recorded by method name.
type GatewayStub struct {
	mu    sync.Mutex
	calls map[string]int

	ListOrdersFn        func(context.Context) ([]model.Order, error)
	GetOrderFn          func(context.Context, string) (*model.Order, error)
	CreateOrderFn       func(context.Context, model.OrderForm) (*model.Order, error)
	UpdateOrderFn       func(context.Context, string, model.OrderForm) (*model.Order, error)
	DeleteOrdersFn      func(context.Context, []string) ([]string, error)
	AcceptOrderFn       func(context.Context, model.Order) (*model.Order, error)
	ChangeOrderStatusFn func(context.Context, string, model.OrderStatus) (*model.Order, error)
	OrderCommentsFn     func(context.Context, string) ([]model.Comment, error)
	AddOrderCommentFn   func(context.Context, model.Comment) (*model.Comment, error)
	OrderFilesFn        func(context.Context, string) ([]model.File, error)
	AddOrderFileFn      func(context.Context, string, model.FileUpload) (*model.File, error)

	ListPipelinesFn        func(context.Context) ([]model.Pipeline, error)
	GetPipelineFn          func(context.Context, string) (*model.Pipeline, error)
	CreatePipelineFn       func(context.Context, model.PipelineForm) (*model.Pipeline, error)
	UpdatePipelineFn       func(context.Context, string, model.PipelineForm) (*model.Pipeline, error)
	ChangePipelineStatusFn func(context.Context, model.PipelineStatusChange) (*model.Pipeline, error)
	AddPipelineCommentFn   func(context.Context, model.Comment) (*model.Pipeline, error)
	AddPipelineFileFn      func(context.Context, string, model.FileUpload) (*model.Pipeline, error)
	UpdateAdditionalInfoFn func(context.Context, model.AdditionalInfo) (*model.Pipeline, error)
}

func (s *GatewayStub) record(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[method]++
}

// Calls returns how many times method was invoked.
func (s *GatewayStub) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// TotalCalls returns the number of upstream calls of any kind.
func (s *GatewayStub) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *GatewayStub) ListOrders(ctx context.Context) ([]model.Order, error) {
	s.record("ListOrders")
	if s.ListOrdersFn != nil {
		return s.ListOrdersFn(ctx)
	}
	return nil, nil
}

func (s *GatewayStub) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	s.record("GetOrder")
	if s.GetOrderFn != nil {
		return s.GetOrderFn(ctx, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusWaiting}, nil
}

func (s *GatewayStub) CreateOrder(ctx context.Context, form model.OrderForm) (*model.Order, error) {
	s.record("CreateOrder")
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, form)
	}
	return &model.Order{ID: "created", Name: form.Name, Price: form.Price, Status: model.OrderStatusWaiting}, nil
}

func (s *GatewayStub) UpdateOrder(ctx context.Context, id string, form model.OrderForm) (*model.Order, error) {
	s.record("UpdateOrder")
	if s.UpdateOrderFn != nil {
		return s.UpdateOrderFn(ctx, id, form)
	}
	return &model.Order{
		ID:            id,
		Name:          form.Name,
		Description:   form.Description,
		Price:         form.Price,
		Currency:      form.Currency,
		Priority:      form.Priority,
		Project:       form.Project,
		OrderCategory: form.OrderCategory,
		Email:         form.Email,
		Status:        model.OrderStatusWaiting,
	}, nil
}

func (s *GatewayStub) DeleteOrders(ctx context.Context, ids []string) ([]string, error) {
	s.record("DeleteOrders")
	if s.DeleteOrdersFn != nil {
		return s.DeleteOrdersFn(ctx, ids)
	}
	return ids, nil
}

func (s *GatewayStub) AcceptOrder(ctx context.Context, order model.Order) (*model.Order, error) {
	s.record("AcceptOrder")
	if s.AcceptOrderFn != nil {
		return s.AcceptOrderFn(ctx, order)
	}
	return &order, nil
}

func (s *GatewayStub) ChangeOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	s.record("ChangeOrderStatus")
	if s.ChangeOrderStatusFn != nil {
		return s.ChangeOrderStatusFn(ctx, id, status)
	}
	return &model.Order{ID: id, Status: status}, nil
}

func (s *GatewayStub) OrderComments(ctx context.Context, id string) ([]model.Comment, error) {
	s.record("OrderComments")
	if s.OrderCommentsFn != nil {
		return s.OrderCommentsFn(ctx, id)
	}
	return []model.Comment{}, nil
}

func (s *GatewayStub) AddOrderComment(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	s.record("AddOrderComment")
	if s.AddOrderCommentFn != nil {
		return s.AddOrderCommentFn(ctx, comment)
	}
	return &comment, nil
}

func (s *GatewayStub) OrderFiles(ctx context.Context, id string) ([]model.File, error) {
	s.record("OrderFiles")
	if s.OrderFilesFn != nil {
		return s.OrderFilesFn(ctx, id)
	}
	return []model.File{}, nil
}

func (s *GatewayStub) AddOrderFile(ctx context.Context, orderID string, upload model.FileUpload) (*model.File, error) {
	s.record("AddOrderFile")
	if s.AddOrderFileFn != nil {
		return s.AddOrderFileFn(ctx, orderID, upload)
	}
	return &model.File{Order: orderID, File: upload.Filename, FileDescription: upload.Description}, nil
}

func (s *GatewayStub) ListPipelines(ctx context.Context) ([]model.Pipeline, error) {
	s.record("ListPipelines")
	if s.ListPipelinesFn != nil {
		return s.ListPipelinesFn(ctx)
	}
	return nil, nil
}

func (s *GatewayStub) GetPipeline(ctx context.Context, id string) (*model.Pipeline, error) {
	s.record("GetPipeline")
	if s.GetPipelineFn != nil {
		return s.GetPipelineFn(ctx, id)
	}
	return &model.Pipeline{ID: id, Status: model.PipelineStatusNew}, nil
}

func (s *GatewayStub) CreatePipeline(ctx context.Context, form model.PipelineForm) (*model.Pipeline, error) {
	s.record("CreatePipeline")
	if s.CreatePipelineFn != nil {
		return s.CreatePipelineFn(ctx, form)
	}
	return &model.Pipeline{ID: "created", Name: form.Name, NIP: form.NIP, Status: model.PipelineStatusNew}, nil
}

func (s *GatewayStub) UpdatePipeline(ctx context.Context, id string, form model.PipelineForm) (*model.Pipeline, error) {
	s.record("UpdatePipeline")
	if s.UpdatePipelineFn != nil {
		return s.UpdatePipelineFn(ctx, id, form)
	}
	return &model.Pipeline{ID: id, Name: form.Name, NIP: form.NIP, Status: model.PipelineStatusNew}, nil
}

func (s *GatewayStub) ChangePipelineStatus(ctx context.Context, change model.PipelineStatusChange) (*model.Pipeline, error) {
	s.record("ChangePipelineStatus")
	if s.ChangePipelineStatusFn != nil {
		return s.ChangePipelineStatusFn(ctx, change)
	}
	return &model.Pipeline{ID: change.PipelineID, Status: change.Status}, nil
}

func (s *GatewayStub) AddPipelineComment(ctx context.Context, comment model.Comment) (*model.Pipeline, error) {
	s.record("AddPipelineComment")
	if s.AddPipelineCommentFn != nil {
		return s.AddPipelineCommentFn(ctx, comment)
	}
	return &model.Pipeline{ID: comment.Pipeline, Comments: []model.Comment{comment}}, nil
}

func (s *GatewayStub) AddPipelineFile(ctx context.Context, pipelineID string, upload model.FileUpload) (*model.Pipeline, error) {
	s.record("AddPipelineFile")
	if s.AddPipelineFileFn != nil {
		return s.AddPipelineFileFn(ctx, pipelineID, upload)
	}
	return &model.Pipeline{ID: pipelineID, Files: []model.File{{Pipeline: pipelineID, File: upload.Filename}}}, nil
}

func (s *GatewayStub) UpdatePipelineAdditionalInfo(ctx context.Context, info model.AdditionalInfo) (*model.Pipeline, error) {
	s.record("UpdatePipelineAdditionalInfo")
	if s.UpdateAdditionalInfoFn != nil {
		return s.UpdateAdditionalInfoFn(ctx, info)
	}
	return &model.Pipeline{ID: info.Pipeline, AdditionalInfo: &info}, nil
}

// NotifierStub collects published notifications.
type NotifierStub struct {
	mu   sync.Mutex
	sent []model.Notification
}

// Publish records notification.
func (n *NotifierStub) Publish(msg model.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

// Sent returns a copy of published notifications.
func (n *NotifierStub) Sent() []model.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.Notification(nil), n.sent...)
}
