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

// PipelineUseCase encapsulates sales pipeline management.
type PipelineUseCase struct {
	gateway PipelineGateway
	cache   repository.PipelineCache
	logger  *slog.Logger
}

// NewPipelineUseCase constructs PipelineUseCase.
func NewPipelineUseCase(gateway PipelineGateway, cache repository.PipelineCache, logger *slog.Logger) *PipelineUseCase {
	return &PipelineUseCase{gateway: gateway, cache: cache, logger: logger}
}

func (u *PipelineUseCase) List(ctx context.Context, actor model.Actor) ([]model.Pipeline, error) {
	if !actor.Can(model.CapPipelines) {
		return nil, domainErrors.ErrForbidden
	}
	return u.cache.List(ctx)
}

// Get fetches a fresh copy of the pipeline with its comments and files.
func (u *PipelineUseCase) Get(ctx context.Context, actor model.Actor, id string) (*model.Pipeline, error) {
	if !actor.Can(model.CapPipelines) {
		return nil, domainErrors.ErrForbidden
	}
	return u.refreshed(ctx, func() (*model.Pipeline, error) {
		return u.gateway.GetPipeline(ctx, id)
	})
}

func (u *PipelineUseCase) Add(ctx context.Context, actor model.Actor, form model.PipelineForm) (*model.Pipeline, error) {
	if !actor.Can(model.CapPipelinesAdd) {
		return nil, domainErrors.ErrForbidden
	}
	if err := ValidatePipelineForm(form); err != nil {
		return nil, err
	}
	return u.refreshed(ctx, func() (*model.Pipeline, error) {
		return u.gateway.CreatePipeline(ctx, form)
	})
}

func (u *PipelineUseCase) Update(ctx context.Context, actor model.Actor, id string, form model.PipelineForm) (*model.Pipeline, error) {
	if !actor.Can(model.CapPipelinesEdit) {
		return nil, domainErrors.ErrForbidden
	}
	if err := ValidatePipelineForm(form); err != nil {
		return nil, err
	}
	if _, err := cachedPipeline(ctx, u.cache, u.gateway, u.logger, id); err != nil {
		return nil, err
	}

	return u.refreshed(ctx, func() (*model.Pipeline, error) {
		return u.gateway.UpdatePipeline(ctx, id, form)
	})
}

// Actions lists the transitions the actor may apply to the cached pipeline.
func (u *PipelineUseCase) Actions(ctx context.Context, actor model.Actor, id string) ([]workflow.PipelineTransition, error) {
	if !actor.Can(model.CapPipelines) {
		return nil, domainErrors.ErrForbidden
	}
	pipeline, err := cachedPipeline(ctx, u.cache, u.gateway, u.logger, id)
	if err != nil {
		return nil, err
	}
	isOwner := actor.ID != "" && actor.ID == pipeline.Owner
	return workflow.PipelineTransitions(pipeline.Status, isOwner, actor.Capabilities), nil
}

func (u *PipelineUseCase) AddComment(ctx context.Context, actor model.Actor, id, text string, private bool) (*model.Pipeline, error) {
	if !actor.Can(model.CapPipelinesSingleAddComment) {
		return nil, domainErrors.ErrForbidden
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domainErrors.NewValidationError("comment", "required")
	}
	return u.refreshed(ctx, func() (*model.Pipeline, error) {
		return u.gateway.AddPipelineComment(ctx, model.Comment{
			Pipeline: id,
			Owner:    actor.ID,
			Comment:  text,
			Private:  model.Flag(private),
		})
	})
}

func (u *PipelineUseCase) AddFile(ctx context.Context, actor model.Actor, id string, upload model.FileUpload) (*model.Pipeline, error) {
	if !actor.Can(model.CapPipelinesSingleAddFile) {
		return nil, domainErrors.ErrForbidden
	}
	if upload.Content == nil || upload.Filename == "" {
		return nil, domainErrors.NewValidationError("file", "required")
	}
	return u.refreshed(ctx, func() (*model.Pipeline, error) {
		return u.gateway.AddPipelineFile(ctx, id, upload)
	})
}

// UpdateAdditionalInfo creates or replaces the contact sub-record.
func (u *PipelineUseCase) UpdateAdditionalInfo(ctx context.Context, actor model.Actor, id string, info model.AdditionalInfo) (*model.Pipeline, error) {
	if !actor.Can(model.CapPipelinesSingleEdit) {
		return nil, domainErrors.ErrForbidden
	}
	if err := validateStruct(info); err != nil {
		return nil, err
	}
	info.Pipeline = id
	return u.refreshed(ctx, func() (*model.Pipeline, error) {
		return u.gateway.UpdatePipelineAdditionalInfo(ctx, info)
	})
}

// Refresh replaces the cached pipeline list with the upstream one.
func (u *PipelineUseCase) Refresh(ctx context.Context) (int, error) {
	fetchedAt := time.Now()
	pipelines, err := u.gateway.ListPipelines(ctx)
	if err != nil {
		return 0, err
	}
	if err := u.cache.ReplaceAll(ctx, pipelines, fetchedAt); err != nil {
		return 0, err
	}
	return len(pipelines), nil
}

func (u *PipelineUseCase) refreshed(ctx context.Context, call func() (*model.Pipeline, error)) (*model.Pipeline, error) {
	pipeline, err := call()
	if err != nil {
		return nil, err
	}
	storePipeline(ctx, u.cache, u.logger, *pipeline)
	return pipeline, nil
}
