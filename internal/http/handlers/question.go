package handlers

import (
	"net/http"
	"strconv"

	"fantasy_arena/internal/domain"

	"github.com/gin-gonic/gin"
)

// ListQuestions returns the active pool for a game type, optionally
// filtered by event. Admin-only: prompts may spoil unresolved questions.
func (h *Handler) ListQuestions(c *gin.Context) {
	gt := domain.GameType(c.Query("game_type"))
	if _, err := h.Catalog.Config(gt); err != nil {
		respondError(c, err)
		return
	}

	var eventID *int64
	if v := c.Query("event_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}
		eventID = &id
	}

	questions, err := h.Questions.ListActive(c.Request.Context(), gt, eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// RetireQuestion pulls a question out of the selection pool. Already
// submitted predictions still score when the result lands.
func (h *Handler) RetireQuestion(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question id"})
		return
	}

	if err := h.Questions.Retire(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"question_id": id, "retired": true})
}
