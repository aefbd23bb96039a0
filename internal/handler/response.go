package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shipdesk/internal/domain"
	"shipdesk/internal/logger"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Ingestion and export failures carry the collaborator's message through.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND", "session not found"
	case errors.Is(err, domain.ErrSessionLimit):
		return http.StatusServiceUnavailable, "SESSION_LIMIT", "too many open sessions; try again later"
	case errors.Is(err, domain.ErrNoData):
		return http.StatusConflict, "NO_DATA", "no extracted data loaded"
	case errors.Is(err, domain.ErrStaleResult):
		return http.StatusConflict, "STALE_RESULT", "a newer extraction superseded this one"
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "INVALID_REQUEST", err.Error()
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported export format; allowed: json, csv, excel"
	case errors.Is(err, domain.ErrIngestionFailed):
		return http.StatusUnprocessableEntity, "INGESTION_FAILED", err.Error()
	case errors.Is(err, domain.ErrWorkbookMismatch):
		return http.StatusBadGateway, "WORKBOOK_MISMATCH", "generated spreadsheet does not match the visible columns"
	case errors.Is(err, domain.ErrExportFailed):
		return http.StatusBadGateway, "EXPORT_FAILED", err.Error()
	case errors.Is(err, domain.ErrDelegateUnavailable):
		return http.StatusBadGateway, "DELEGATE_UNAVAILABLE", "remote service is unavailable"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		logger.FromContext(c.Request.Context()).Error(err, "request failed", "code", code)
	}
	RespondError(c, status, code, msg)
}
