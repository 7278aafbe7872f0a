package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/backoffice/internal/domain/model"
	"github.com/polkiloo/backoffice/internal/server/http/dto"
	"github.com/polkiloo/backoffice/internal/usecase"
)

// PipelineHandler manages pipeline endpoints.
type PipelineHandler struct {
	facade    PipelineFacade
	maxUpload int64
}

// NewPipelineHandler constructs PipelineHandler.
func NewPipelineHandler(facade PipelineFacade, maxUpload int64) *PipelineHandler {
	return &PipelineHandler{facade: facade, maxUpload: maxUpload}
}

// List handles GET /api/pipelines.
func (h *PipelineHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	pipelines, err := h.facade.Pipelines(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err)
		return
	}
	if pipelines == nil {
		pipelines = []model.Pipeline{}
	}
	c.JSON(http.StatusOK, pipelines)
}

// Get handles GET /api/pipelines/:id.
func (h *PipelineHandler) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	pipeline, err := h.facade.Pipeline(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pipeline)
}

// Add handles POST /api/pipelines.
func (h *PipelineHandler) Add(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var form model.PipelineForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c)
		return
	}
	pipeline, err := h.facade.AddPipeline(c.Request.Context(), actor, form)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pipeline)
}

// Update handles PUT /api/pipelines/:id.
func (h *PipelineHandler) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var form model.PipelineForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c)
		return
	}
	pipeline, err := h.facade.UpdatePipeline(c.Request.Context(), actor, c.Param("id"), form)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pipeline)
}

// Actions handles GET /api/pipelines/:id/actions.
func (h *PipelineHandler) Actions(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	actions, err := h.facade.PipelineActions(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, actions)
}

// ChangeStatus handles PUT /api/pipelines/:id/status.
func (h *PipelineHandler) ChangeStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.PipelineStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	pipeline, err := h.facade.ChangePipelineStatus(c.Request.Context(), actor, usecase.PipelineTransitionRequest{
		PipelineID: c.Param("id"),
		Status:     req.Status,
		Company:    req.Company,
		Owner:      req.Owner,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pipeline)
}

// AddComment handles POST /api/pipelines/:id/comments.
func (h *PipelineHandler) AddComment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	pipeline, err := h.facade.AddPipelineComment(c.Request.Context(), actor, c.Param("id"), req.Comment, bool(req.Private))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pipeline)
}

// AddFile handles POST /api/pipelines/:id/files.
func (h *PipelineHandler) AddFile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	upload, closeFile, ok := readUpload(c, h.maxUpload)
	if !ok {
		return
	}
	defer closeFile()

	pipeline, err := h.facade.AddPipelineFile(c.Request.Context(), actor, c.Param("id"), upload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pipeline)
}

// UpdateAdditionalInfo handles PUT /api/pipelines/:id/additional-info.
func (h *PipelineHandler) UpdateAdditionalInfo(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var info model.AdditionalInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		badRequest(c)
		return
	}
	pipeline, err := h.facade.UpdatePipelineAdditionalInfo(c.Request.Context(), actor, c.Param("id"), info)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pipeline)
}
