package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/backoffice/internal/domain/model"
	"github.com/polkiloo/backoffice/internal/server/http/dto"
	"github.com/polkiloo/backoffice/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade    OrderFacade
	maxUpload int64
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, maxUpload int64) *OrderHandler {
	return &OrderHandler{facade: facade, maxUpload: maxUpload}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orders, err := h.facade.Orders(c.Request.Context(), actor, c.QueryArray("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	order, err := h.facade.Order(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Add handles POST /api/orders.
func (h *OrderHandler) Add(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var form model.OrderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c)
		return
	}
	order, err := h.facade.AddOrder(c.Request.Context(), actor, form)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// Update handles PUT /api/orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var form model.OrderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c)
		return
	}
	order, err := h.facade.UpdateOrder(c.Request.Context(), actor, c.Param("id"), form)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Delete handles DELETE /api/orders with a JSON array of ids.
func (h *OrderHandler) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var ids []string
	if err := c.ShouldBindJSON(&ids); err != nil {
		badRequest(c)
		return
	}
	deleted, err := h.facade.DeleteOrders(c.Request.Context(), actor, ids)
	if err != nil {
		writeError(c, err)
		return
	}
	if deleted == nil {
		deleted = []string{}
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Deleted: deleted})
}

// Actions handles GET /api/orders/:id/actions.
func (h *OrderHandler) Actions(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	actions, err := h.facade.OrderActions(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, actions)
}

// ChangeStatus handles PUT /api/orders/:id/status.
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	order, err := h.facade.ChangeOrderStatus(c.Request.Context(), actor, usecase.OrderTransitionRequest{
		OrderID:  c.Param("id"),
		Status:   req.Status,
		Priority: req.Priority,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Comments handles GET /api/orders/:id/comments.
func (h *OrderHandler) Comments(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	comments, err := h.facade.OrderComments(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

// AddComment handles POST /api/orders/:id/comments.
func (h *OrderHandler) AddComment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	comment, err := h.facade.AddOrderComment(c.Request.Context(), actor, c.Param("id"), req.Comment, bool(req.Private))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Files handles GET /api/orders/:id/files.
func (h *OrderHandler) Files(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	files, err := h.facade.OrderFiles(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if files == nil {
		files = []model.File{}
	}
	c.JSON(http.StatusOK, files)
}

// AddFile handles POST /api/orders/:id/files.
func (h *OrderHandler) AddFile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	upload, closeFile, ok := readUpload(c, h.maxUpload)
	if !ok {
		return
	}
	defer closeFile()

	file, err := h.facade.AddOrderFile(c.Request.Context(), actor, c.Param("id"), upload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, file)
}
