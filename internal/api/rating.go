package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sahay-labs/sahay/internal/service"
	"go.uber.org/zap"
)

// RatingHandler records session feedback and serves the leaderboard.
type RatingHandler struct {
	ratings *service.RatingService
	logger  *zap.Logger
}

func NewRatingHandler(ratings *service.RatingService, logger *zap.Logger) *RatingHandler {
	return &RatingHandler{ratings: ratings, logger: logger}
}

type submitRatingRequest struct {
	Mentor string `json:"mentor" binding:"required"`
	Mentee string `json:"mentee" binding:"required"`
	Rating int    `json:"rating" binding:"required"`
}

// Submit handles POST /v1/ratings
func (h *RatingHandler) Submit(c *gin.Context) {
	var req submitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.ratings.Submit(c.Request.Context(), req.Mentor, req.Mentee, req.Rating)
	if err != nil {
		respondServiceError(c, h.logger, err, "submit rating")
		return
	}
	c.JSON(http.StatusCreated, rating)
}

// Leaderboard handles GET /v1/leaderboard
func (h *RatingHandler) Leaderboard(c *gin.Context) {
	entries, err := h.ratings.Leaderboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err, "load leaderboard")
		return
	}
	c.JSON(http.StatusOK, entries)
}
