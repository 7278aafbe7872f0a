package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/backoffice/internal/domain/errors"
	"github.com/polkiloo/backoffice/internal/domain/model"
	"github.com/polkiloo/backoffice/internal/server/http/dto"
	"github.com/polkiloo/backoffice/internal/server/http/middleware"
)

const (
	msgUnexpectedError = "common.errors.unexpected.subTitle"
	msgInvalidBody     = "common.errors.invalidRequest"
	msgFileTooLarge    = "common.errors.fileTooLarge"
)

// currentActor returns the authenticated actor or aborts with 401.
func currentActor(c *gin.Context) (model.Actor, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: http.StatusText(http.StatusUnauthorized)})
		return model.Actor{}, false
	}
	return actor, true
}

// writeError maps domain errors onto HTTP responses.
func writeError(c *gin.Context, err error) {
	var validation *domainErrors.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: validation.Reason, Field: validation.Field})
	case errors.Is(err, domainErrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: http.StatusText(http.StatusForbidden)})
	case errors.Is(err, domainErrors.ErrSubmissionFailed):
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: msgUnexpectedError})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: http.StatusText(http.StatusNotFound)})
	case errors.Is(err, domainErrors.ErrTransitionInProgress):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: http.StatusText(http.StatusConflict)})
	case domainErrors.IsRemote(err):
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: msgUnexpectedError})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msgUnexpectedError})
	}
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidBody})
}

// readUpload extracts the multipart attachment. The caller owns closing the
// returned file.
func readUpload(c *gin.Context, maxBytes int64) (model.FileUpload, func(), bool) {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Error: msgFileTooLarge})
			return model.FileUpload{}, nil, false
		}
		badRequest(c)
		return model.FileUpload{}, nil, false
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c)
		return model.FileUpload{}, nil, false
	}
	upload := model.FileUpload{
		Filename:    header.Filename,
		Description: strings.TrimSpace(c.PostForm("file_description")),
		Content:     file,
	}
	return upload, func() { _ = file.Close() }, true
}
