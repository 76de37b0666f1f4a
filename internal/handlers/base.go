package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/upsc-prep/question-bank-service/internal/services"
	"github.com/upsc-prep/question-bank-service/internal/storage"
	"github.com/upsc-prep/question-bank-service/internal/utils"
)

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse is the body for write operations with no payload.
type SuccessResponse struct {
	Message string `json:"message"`
}

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// handleServiceError maps service sentinel errors to HTTP status codes.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrPaperCountMismatch):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Paper question count does not match its question list",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidTenant):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid tenant",
		})
	case errors.Is(err, services.ErrNoQuestions):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "No questions match the requested selection",
		})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Resource not found",
		})
	default:
		h.logger.Error("Unhandled service error", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}

// tenantID extracts the tenant path parameter common to all routes.
func tenantID(c *gin.Context) string {
	return c.Param("tenant_id")
}
