package handlers

import (
	"net/http"

	"fantasy_arena/internal/domain"

	"github.com/gin-gonic/gin"
)

type startSessionRequest struct {
	GameType string `json:"game_type" binding:"required"`
	EventID  *int64 `json:"event_id"`
	Count    int    `json:"count"`
}

// StartSession selects a batch of questions for the user and opens a
// session around them.
func (h *Handler) StartSession(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session, questions, err := h.Selector.SelectQuestions(
		c.Request.Context(), userID, domain.GameType(req.GameType), req.EventID, req.Count)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":   session,
		"questions": questions,
	})
}

// ListGames exposes the configured game types and their parameters.
func (h *Handler) ListGames(c *gin.Context) {
	types := h.Catalog.GameTypes()
	games := make([]gin.H, 0, len(types))
	for _, gt := range types {
		cfg, err := h.Catalog.Config(gt)
		if err != nil {
			continue
		}
		games = append(games, gin.H{
			"game_type":              gt,
			"prediction_type":        cfg.PredictionType,
			"points_per_correct":     cfg.PointsPerCorrect,
			"max_questions":          cfg.MaxQuestionsPerSession,
			"lock_in_offset_seconds": int(cfg.LockInOffset.Seconds()),
		})
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}
