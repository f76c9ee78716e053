package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"entregas/internal/domain"
)

// APIResponse is the standard envelope for the CRUD API. The NFe import
// endpoint keeps its own flat result shape for frontend compatibility.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data any) {
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
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrOperatorInactive):
		return http.StatusForbidden, "OPERATOR_INACTIVE", "operator is inactive"
	case errors.Is(err, domain.ErrNoUpdatableFields):
		return http.StatusBadRequest, "NO_FIELDS", "no fields to update"
	case errors.Is(err, domain.ErrInvalidCNPJ):
		return http.StatusBadRequest, "INVALID_CNPJ", "cnpj must have 14 characters"
	case errors.Is(err, domain.ErrDuplicateInvoiceKey):
		return http.StatusConflict, "DUPLICATE_KEY", "invoice key already imported"
	case errors.Is(err, domain.ErrNoFile):
		return http.StatusBadRequest, "NO_FILE", "no archive payload supplied"
	case errors.Is(err, domain.ErrInvalidArchive):
		return http.StatusBadRequest, "INVALID_ARCHIVE", "payload is not a readable zip archive"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "archive exceeds maximum allowed size"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
