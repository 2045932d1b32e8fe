package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sahay-labs/sahay/internal/models"
	"github.com/sahay-labs/sahay/internal/repository"
	"go.uber.org/zap"
)

// AdminHandler serves the operator endpoints. Access is gated on a
// shared key in the X-Admin-Key header rather than a user token; these
// routes are for dashboards and scripts, not app users.
type AdminHandler struct {
	accounts repository.AccountRepository
	profiles repository.ProfileRepository
	adminKey string
	logger   *zap.Logger
}

func NewAdminHandler(
	accounts repository.AccountRepository,
	profiles repository.ProfileRepository,
	adminKey string,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		accounts: accounts,
		profiles: profiles,
		adminKey: adminKey,
		logger:   logger,
	}
}

// RequireKey aborts with 403 unless the request carries the admin key.
// An empty configured key disables the admin surface entirely.
func (h *AdminHandler) RequireKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Admin-Key")
		if h.adminKey == "" ||
			subtle.ConstantTimeCompare([]byte(key), []byte(h.adminKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access denied"})
			return
		}
		c.Next()
	}
}

// Stats handles GET /v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	accounts, err := h.accounts.Count(ctx)
	if err != nil {
		h.logger.Error("failed to count accounts", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable, please retry"})
		return
	}
	students, err := h.profiles.CountByRole(ctx, models.RoleStudent)
	if err != nil {
		h.logger.Error("failed to count students", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable, please retry"})
		return
	}
	teachers, err := h.profiles.CountByRole(ctx, models.RoleTeacher)
	if err != nil {
		h.logger.Error("failed to count teachers", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable, please retry"})
		return
	}
	waiting, err := h.profiles.CountWaiting(ctx)
	if err != nil {
		h.logger.Error("failed to count waitlist", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accounts": accounts,
		"students": students,
		"teachers": teachers,
		"waiting":  waiting,
	})
}

// Users handles GET /v1/admin/users
func (h *AdminHandler) Users(c *gin.Context) {
	profiles, err := h.profiles.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list profiles", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable, please retry"})
		return
	}
	c.JSON(http.StatusOK, profiles)
}
