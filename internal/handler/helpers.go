package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"service-review-backend/internal/models"
)

func respondError(c *gin.Context, code int, err error) {
	c.JSON(code, gin.H{"error": err.Error()})
}

func handleStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, models.ErrInvalidID):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, models.ErrValidation):
		respondError(c, http.StatusUnprocessableEntity, err)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": err.Error(),
		})
	}
}
