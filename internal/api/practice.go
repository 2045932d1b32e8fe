package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sahay-labs/sahay/internal/middleware"
	"github.com/sahay-labs/sahay/internal/practice"
	"github.com/sahay-labs/sahay/internal/service"
	"go.uber.org/zap"
)

const defaultQuestionCount = 5

// PracticeHandler serves self-study questions and the streak endpoints.
// Finishing a practice set counts as the day's activity for the streak.
type PracticeHandler struct {
	streaks *service.StreakService
	logger  *zap.Logger
}

func NewPracticeHandler(streaks *service.StreakService, logger *zap.Logger) *PracticeHandler {
	return &PracticeHandler{streaks: streaks, logger: logger}
}

// Questions handles GET /v1/practice/questions?grade=5&count=5
func (h *PracticeHandler) Questions(c *gin.Context) {
	grade, err := strconv.Atoi(c.DefaultQuery("grade", "5"))
	if err != nil || grade < 1 || grade > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "grade must be between 1 and 12"})
		return
	}

	count := defaultQuestionCount
	if q := c.Query("count"); q != "" {
		count, err = strconv.Atoi(q)
		if err != nil || count < 1 || count > 20 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be between 1 and 20"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"questions": practice.GenerateEnglish(grade, count)})
}

type submitPracticeRequest struct {
	Answers []practice.Answer `json:"answers" binding:"required"`
}

// Submit handles POST /v1/practice/submit
//
// Grades the answers and records today's activity on the streak.
func (h *PracticeHandler) Submit(c *gin.Context) {
	var req submitPracticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	correct := practice.GradeAnswers(req.Answers)

	extended, err := h.streaks.Touch(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, h.logger, err, "record practice activity")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"correct":         correct,
		"total":           len(req.Answers),
		"streak_extended": extended,
	})
}

// Streak handles GET /v1/streaks/me
func (h *PracticeHandler) Streak(c *gin.Context) {
	info, err := h.streaks.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, h.logger, err, "load streak")
		return
	}
	c.JSON(http.StatusOK, info)
}
