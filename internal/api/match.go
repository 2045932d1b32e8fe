package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sahay-labs/sahay/internal/middleware"
	"github.com/sahay-labs/sahay/internal/service"
	"go.uber.org/zap"
)

// MatchHandler runs matching attempts and session teardown.
type MatchHandler struct {
	matchmaking *service.MatchmakingService
	logger      *zap.Logger
}

func NewMatchHandler(matchmaking *service.MatchmakingService, logger *zap.Logger) *MatchHandler {
	return &MatchHandler{matchmaking: matchmaking, logger: logger}
}

// Find handles POST /v1/match/find
//
// "No partner available" is a 200 with matched=false, not an error.
// Clients poll this endpoint until it flips to matched=true.
func (h *MatchHandler) Find(c *gin.Context) {
	outcome, err := h.matchmaking.FindMatch(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, h.logger, err, "find match")
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// End handles POST /v1/matches/:id/end
func (h *MatchHandler) End(c *gin.Context) {
	matchID := c.Param("id")
	if err := h.matchmaking.EndSession(c.Request.Context(), matchID, middleware.GetUserID(c)); err != nil {
		respondServiceError(c, h.logger, err, "end session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session ended"})
}
