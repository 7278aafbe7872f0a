package dto

import "github.com/polkiloo/backoffice/internal/domain/model"

// OrderStatusRequest describes an order transition payload. Priority is only
// read when accepting the order.
type OrderStatusRequest struct {
	Status   model.OrderStatus `json:"status" binding:"required"`
	Priority *int              `json:"priority,omitempty"`
}

// PipelineStatusRequest describes a pipeline transition payload. Company and
// Owner are only read when signing the contract.
type PipelineStatusRequest struct {
	Status  model.PipelineStatus `json:"status" binding:"required"`
	Company string               `json:"company,omitempty"`
	Owner   string               `json:"owner,omitempty"`
}

// CommentRequest describes a new comment.
type CommentRequest struct {
	Comment string     `json:"comment"`
	Private model.Flag `json:"private"`
}
