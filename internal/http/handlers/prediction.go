package handlers

import (
	"net/http"
	"strconv"

	"fantasy_arena/internal/domain"

	"github.com/gin-gonic/gin"
)

type submitPredictionRequest struct {
	QuestionID int64              `json:"question_id" binding:"required"`
	SessionID  int64              `json:"session_id"`
	Value      domain.AnswerValue `json:"value" binding:"required"`
}

// SubmitPrediction records the user's answer to a question. One prediction
// per (user, question); late or malformed submissions are rejected.
func (h *Handler) SubmitPrediction(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req submitPredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.Predictions.Submit(c.Request.Context(), userID, req.QuestionID, req.SessionID, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"prediction": p})
}

// MyPredictions returns the user's prediction history, newest first.
func (h *Handler) MyPredictions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	predictions, err := h.Predictions.History(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"predictions": predictions})
}
