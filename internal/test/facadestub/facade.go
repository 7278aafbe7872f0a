// Package facadestub provides a controllable back-office facade for HTTP and
// worker tests.
package facadestub

import (
	"context"
	"sync/atomic"

	"github.com/polkiloo/backoffice/internal/domain/model"
	"github.com/polkiloo/backoffice/internal/domain/workflow"
	"github.com/polkiloo/backoffice/internal/usecase"
)

// Stub delegates to the configured functions or returns minimal entities.
type Stub struct {
	ParseTokenFn func(string) (model.Actor, error)
	PingFn       func(context.Context) error
	RefreshFn    func(context.Context) error

	OrdersFn            func(context.Context, model.Actor, []string) ([]model.Order, error)
	OrderFn             func(context.Context, model.Actor, string) (*model.Order, error)
	AddOrderFn          func(context.Context, model.Actor, model.OrderForm) (*model.Order, error)
	UpdateOrderFn       func(context.Context, model.Actor, string, model.OrderForm) (*model.Order, error)
	DeleteOrdersFn      func(context.Context, model.Actor, []string) ([]string, error)
	OrderActionsFn      func(context.Context, model.Actor, string) ([]workflow.OrderTransition, error)
	ChangeOrderStatusFn func(context.Context, model.Actor, usecase.OrderTransitionRequest) (*model.Order, error)
	OrderCommentsFn     func(context.Context, model.Actor, string) ([]model.Comment, error)
	AddOrderCommentFn   func(context.Context, model.Actor, string, string, bool) (*model.Comment, error)
	OrderFilesFn        func(context.Context, model.Actor, string) ([]model.File, error)
	AddOrderFileFn      func(context.Context, model.Actor, string, model.FileUpload) (*model.File, error)

	PipelinesFn            func(context.Context, model.Actor) ([]model.Pipeline, error)
	PipelineFn             func(context.Context, model.Actor, string) (*model.Pipeline, error)
	AddPipelineFn          func(context.Context, model.Actor, model.PipelineForm) (*model.Pipeline, error)
	UpdatePipelineFn       func(context.Context, model.Actor, string, model.PipelineForm) (*model.Pipeline, error)
	PipelineActionsFn      func(context.Context, model.Actor, string) ([]workflow.PipelineTransition, error)
	ChangePipelineStatusFn func(context.Context, model.Actor, usecase.PipelineTransitionRequest) (*model.Pipeline, error)
	AddPipelineCommentFn   func(context.Context, model.Actor, string, string, bool) (*model.Pipeline, error)
	AddPipelineFileFn      func(context.Context, model.Actor, string, model.FileUpload) (*model.Pipeline, error)
	UpdateAdditionalInfoFn func(context.Context, model.Actor, string, model.AdditionalInfo) (*model.Pipeline, error)

	refreshes atomic.Int32
}

// ParseToken accepts any token as an actor holding every capability.
func (s *Stub) ParseToken(token string) (model.Actor, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return model.Actor{ID: "admin", Capabilities: model.NewCapabilitySet(
		model.CapOrders, model.CapOrdersAdd, model.CapOrdersEdit, model.CapOrdersDelete,
		model.CapOrdersAccept, model.CapOrdersChangeStatus, model.CapOrdersChangePriority,
		model.CapPipelines, model.CapPipelinesChangeStatus,
	)}, nil
}

// Ping reports readiness.
func (s *Stub) Ping(ctx context.Context) error {
	if s.PingFn != nil {
		return s.PingFn(ctx)
	}
	return nil
}

// RefreshCache counts refresh invocations.
func (s *Stub) RefreshCache(ctx context.Context) error {
	s.refreshes.Add(1)
	if s.RefreshFn != nil {
		return s.RefreshFn(ctx)
	}
	return nil
}

// Refreshes returns how many times RefreshCache ran.
func (s *Stub) Refreshes() int {
	return int(s.refreshes.Load())
}

func (s *Stub) Orders(ctx context.Context, actor model.Actor, statuses []string) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, actor, statuses)
	}
	return []model.Order{{ID: "o1", Status: model.OrderStatusWaiting}}, nil
}

func (s *Stub) Order(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, actor, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusWaiting}, nil
}

func (s *Stub) AddOrder(ctx context.Context, actor model.Actor, form model.OrderForm) (*model.Order, error) {
	if s.AddOrderFn != nil {
		return s.AddOrderFn(ctx, actor, form)
	}
	return &model.Order{ID: "new", Name: form.Name, Status: model.OrderStatusWaiting}, nil
}

func (s *Stub) UpdateOrder(ctx context.Context, actor model.Actor, id string, form model.OrderForm) (*model.Order, error) {
	if s.UpdateOrderFn != nil {
		return s.UpdateOrderFn(ctx, actor, id, form)
	}
	return &model.Order{ID: id, Name: form.Name}, nil
}

func (s *Stub) DeleteOrders(ctx context.Context, actor model.Actor, ids []string) ([]string, error) {
	if s.DeleteOrdersFn != nil {
		return s.DeleteOrdersFn(ctx, actor, ids)
	}
	return ids, nil
}

func (s *Stub) OrderActions(ctx context.Context, actor model.Actor, id string) ([]workflow.OrderTransition, error) {
	if s.OrderActionsFn != nil {
		return s.OrderActionsFn(ctx, actor, id)
	}
	return workflow.OrderTransitions(model.OrderStatusWaiting, actor.Capabilities), nil
}

func (s *Stub) ChangeOrderStatus(ctx context.Context, actor model.Actor, req usecase.OrderTransitionRequest) (*model.Order, error) {
	if s.ChangeOrderStatusFn != nil {
		return s.ChangeOrderStatusFn(ctx, actor, req)
	}
	return &model.Order{ID: req.OrderID, Status: req.Status}, nil
}

func (s *Stub) OrderComments(ctx context.Context, actor model.Actor, id string) ([]model.Comment, error) {
	if s.OrderCommentsFn != nil {
		return s.OrderCommentsFn(ctx, actor, id)
	}
	return nil, nil
}

func (s *Stub) AddOrderComment(ctx context.Context, actor model.Actor, id, text string, private bool) (*model.Comment, error) {
	if s.AddOrderCommentFn != nil {
		return s.AddOrderCommentFn(ctx, actor, id, text, private)
	}
	return &model.Comment{Order: id, Owner: actor.ID, Comment: text, Private: model.Flag(private)}, nil
}

func (s *Stub) OrderFiles(ctx context.Context, actor model.Actor, id string) ([]model.File, error) {
	if s.OrderFilesFn != nil {
		return s.OrderFilesFn(ctx, actor, id)
	}
	return nil, nil
}

func (s *Stub) AddOrderFile(ctx context.Context, actor model.Actor, id string, upload model.FileUpload) (*model.File, error) {
	if s.AddOrderFileFn != nil {
		return s.AddOrderFileFn(ctx, actor, id, upload)
	}
	return &model.File{Order: id, File: upload.Filename, FileDescription: upload.Description}, nil
}

func (s *Stub) Pipelines(ctx context.Context, actor model.Actor) ([]model.Pipeline, error) {
	if s.PipelinesFn != nil {
		return s.PipelinesFn(ctx, actor)
	}
	return []model.Pipeline{{ID: "p1", Status: model.PipelineStatusNew}}, nil
}

func (s *Stub) Pipeline(ctx context.Context, actor model.Actor, id string) (*model.Pipeline, error) {
	if s.PipelineFn != nil {
		return s.PipelineFn(ctx, actor, id)
	}
	return &model.Pipeline{ID: id, Status: model.PipelineStatusNew}, nil
}

func (s *Stub) AddPipeline(ctx context.Context, actor model.Actor, form model.PipelineForm) (*model.Pipeline, error) {
	if s.AddPipelineFn != nil {
		return s.AddPipelineFn(ctx, actor, form)
	}
	return &model.Pipeline{ID: "new", Name: form.Name, NIP: form.NIP, Status: model.PipelineStatusNew}, nil
}

func (s *Stub) UpdatePipeline(ctx context.Context, actor model.Actor, id string, form model.PipelineForm) (*model.Pipeline, error) {
	if s.UpdatePipelineFn != nil {
		return s.UpdatePipelineFn(ctx, actor, id, form)
	}
	return &model.Pipeline{ID: id, Name: form.Name, NIP: form.NIP}, nil
}

func (s *Stub) PipelineActions(ctx context.Context, actor model.Actor, id string) ([]workflow.PipelineTransition, error) {
	if s.PipelineActionsFn != nil {
		return s.PipelineActionsFn(ctx, actor, id)
	}
	return workflow.PipelineTransitions(model.PipelineStatusNew, true, actor.Capabilities), nil
}

func (s *Stub) ChangePipelineStatus(ctx context.Context, actor model.Actor, req usecase.PipelineTransitionRequest) (*model.Pipeline, error) {
	if s.ChangePipelineStatusFn != nil {
		return s.ChangePipelineStatusFn(ctx, actor, req)
	}
	return &model.Pipeline{ID: req.PipelineID, Status: req.Status}, nil
}

func (s *Stub) AddPipelineComment(ctx context.Context, actor model.Actor, id, text string, private bool) (*model.Pipeline, error) {
	if s.AddPipelineCommentFn != nil {
		return s.AddPipelineCommentFn(ctx, actor, id, text, private)
	}
	return &model.Pipeline{ID: id, Comments: []model.Comment{{Pipeline: id, Comment: text, Private: model.Flag(private)}}}, nil
}

func (s *Stub) AddPipelineFile(ctx context.Context, actor model.Actor, id string, upload model.FileUpload) (*model.Pipeline, error) {
	if s.AddPipelineFileFn != nil {
		return s.AddPipelineFileFn(ctx, actor, id, upload)
	}
	return &model.Pipeline{ID: id, Files: []model.File{{Pipeline: id, File: upload.Filename}}}, nil
}

func (s *Stub) UpdatePipelineAdditionalInfo(ctx context.Context, actor model.Actor, id string, info model.AdditionalInfo) (*model.Pipeline, error) {
	if s.UpdateAdditionalInfoFn != nil {
		return s.UpdateAdditionalInfoFn(ctx, actor, id, info)
	}
	info.Pipeline = id
	return &model.Pipeline{ID: id, AdditionalInfo: &info}, nil
}
