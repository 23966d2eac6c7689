package handlers

import (
	"net/http"
	"time"

	"fantasy_arena/internal/domain"

	"github.com/gin-gonic/gin"
)

type declareResultRequest struct {
	QuestionID int64              `json:"question_id" binding:"required"`
	Actual     domain.AnswerValue `json:"actual" binding:"required"`
	DeclaredBy string             `json:"declared_by"`
}

// DeclareResult declares the actual outcome of a question and runs the
// scoring pass over every prediction on it. Re-declaring is a no-op for
// already scored predictions.
func (h *Handler) DeclareResult(c *gin.Context) {
	var req declareResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	summary, err := h.Scoring.OnResultDeclared(c.Request.Context(), domain.Result{
		QuestionID: req.QuestionID,
		Actual:     req.Actual,
		DeclaredAt: time.Now().UTC(),
		DeclaredBy: req.DeclaredBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

type declareResultsBatchRequest struct {
	Results []declareResultRequest `json:"results" binding:"required"`
}

// DeclareResultsBatch scores several questions concurrently, e.g. when an
// event finishes and all its results land at once.
func (h *Handler) DeclareResultsBatch(c *gin.Context) {
	var req declareResultsBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	now := time.Now().UTC()
	results := make([]domain.Result, 0, len(req.Results))
	for _, r := range req.Results {
		results = append(results, domain.Result{
			QuestionID: r.QuestionID,
			Actual:     r.Actual,
			DeclaredAt: now,
			DeclaredBy: r.DeclaredBy,
		})
	}

	summaries, err := h.Scoring.OnResultsDeclared(c.Request.Context(), results)
	if err != nil {
		// partial progress is still reported; completed questions stay scored
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "batch scoring incomplete",
			"summaries": summaries,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summaries": summaries})
}
