package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sahay-labs/sahay/internal/middleware"
	"github.com/sahay-labs/sahay/internal/models"
	"github.com/sahay-labs/sahay/internal/repository"
	"github.com/sahay-labs/sahay/internal/service"
	"go.uber.org/zap"
)

// ProfileHandler manages the user's waitlist profile.
type ProfileHandler struct {
	matchmaking *service.MatchmakingService
	profiles    repository.ProfileRepository
	logger      *zap.Logger
}

func NewProfileHandler(
	matchmaking *service.MatchmakingService,
	profiles repository.ProfileRepository,
	logger *zap.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		matchmaking: matchmaking,
		profiles:    profiles,
		logger:      logger,
	}
}

type registerProfileRequest struct {
	Role           string   `json:"role" binding:"required"`
	GradeLabel     string   `json:"grade_label"`
	TimeSlot       string   `json:"time_slot" binding:"required"`
	StrongSubjects []string `json:"strong_subjects"`
	WeakSubjects   []string `json:"weak_subjects"`
	Languages      []string `json:"languages"`
	SpecificTopic  string   `json:"specific_topic"`
}

type registerProfileResponse struct {
	Profile  *models.Profile `json:"profile"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Register handles POST /v1/profiles
//
// Re-registering replaces the previous profile and restarts the
// waitlist clock; the user's display name comes from the token, not
// the request body.
func (h *ProfileHandler) Register(c *gin.Context) {
	var req registerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := &models.Profile{
		UserID:         middleware.GetUserID(c),
		Name:           middleware.GetName(c),
		Role:           req.Role,
		GradeLabel:     req.GradeLabel,
		TimeSlot:       req.TimeSlot,
		StrongSubjects: req.StrongSubjects,
		WeakSubjects:   req.WeakSubjects,
		Languages:      req.Languages,
		SpecificTopic:  req.SpecificTopic,
	}

	stored, warnings, err := h.matchmaking.Register(c.Request.Context(), profile)
	if err != nil {
		respondServiceError(c, h.logger, err, "register profile")
		return
	}

	c.JSON(http.StatusCreated, registerProfileResponse{
		Profile:  stored,
		Warnings: warnings,
	})
}

// Me handles GET /v1/profiles/me
func (h *ProfileHandler) Me(c *gin.Context) {
	profile, err := h.profiles.GetByUserID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.logger.Error("failed to load profile", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable, please retry"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no profile registered"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
