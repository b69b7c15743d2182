package handlers

import (
	"errors"
	"net/http"

	"github.com/chasonjia/familytree/internal/apperrors"
	"github.com/chasonjia/familytree/pkg/logger"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP statuses. Unrecognized errors
// log their detail and return a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// optional normalizes a request field decided once at the boundary: an
// empty string is absent.
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
