package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "logisticshub/internal/config"
	"logisticshub/internal/domain"
	"logisticshub/internal/http/middleware"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Anything else is
// logged and reported as a generic 500.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		intconfig.LogError("http", c.HandlerName(), c.Request.Method+" "+c.FullPath(), gin.H{"request_id": middleware.GetRequestID(c)}, err)
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
