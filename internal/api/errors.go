package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sahay-labs/sahay/internal/service"
	"go.uber.org/zap"
)

// respondServiceError maps service errors onto HTTP statuses. Anything
// that is not a caller mistake is treated as a transient backend fault
// and reported as 503 so clients know to retry.
func respondServiceError(c *gin.Context, logger *zap.Logger, err error, action string) {
	switch {
	case errors.Is(err, service.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a participant in this session"})
	case errors.Is(err, service.ErrAIUnavailable):
		logger.Warn("AI tutor unavailable", zap.String("action", action), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI tutor is unavailable right now"})
	default:
		logger.Error("backend failure", zap.String("action", action), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "service temporarily unavailable, please retry",
		})
	}
}
