package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"condohub/server/internal/database"
	"condohub/server/internal/processor"
	"condohub/server/internal/unitgen"
)

const (
	ErrCodeInvalidPayload = "invalid_payload"
	ErrCodeValidation     = "validation_error"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeForbidden      = "forbidden"
	ErrCodeNotFound       = "not_found"
	ErrCodeConflict       = "conflict"
	ErrCodeNoPattern      = "no_pattern"
	ErrCodeBatchFailure   = "batch_failure"
	ErrCodeInternal       = "internal_server_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Code:    code,
		Error:   message,
		Details: details,
	})
}

// handleError maps domain errors onto HTTP responses.
func (h *Handler) handleError(c *gin.Context, err error, message string) {
	log := h.logger.WithFields(logrus.Fields{
		"condo_id": c.Param("condo_id"),
		"path":     c.FullPath(),
	}).WithError(err)

	var cfgErr *unitgen.InvalidConfigurationError
	var batchErr *processor.BatchFailureError

	switch {
	case errors.As(err, &cfgErr):
		log.Warn("Invalid property configuration")
		respondError(c, http.StatusBadRequest, ErrCodeValidation, "Invalid property configuration", cfgErr.Fields)
	case errors.Is(err, database.ErrConfigurationNotFound):
		log.Warn("Configuration not found")
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "Configuration not found", nil)
	case errors.Is(err, database.ErrConfigurationExists):
		log.Warn("Configuration already exists")
		respondError(c, http.StatusConflict, ErrCodeConflict, "A configuration already exists for this condo", nil)
	case errors.As(err, &batchErr):
		log.Error(message)
		respondError(c, http.StatusInternalServerError, ErrCodeBatchFailure, message, gin.H{
			"units_created": batchErr.Created,
			"batch":         batchErr.Batch,
		})
	default:
		log.Error(message)
		respondError(c, http.StatusInternalServerError, ErrCodeInternal, message, nil)
	}
}
