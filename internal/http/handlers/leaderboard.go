package handlers

import (
	"net/http"
	"strconv"

	"fantasy_arena/internal/domain"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard returns the top entries for a period (daily, weekly or
// overall). Serves the cached snapshot when one is fresh.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	period := domain.Period(c.DefaultQuery("period", string(domain.PeriodOverall)))

	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	entries, err := h.Leaderboard.Top(c.Request.Context(), period, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"period": period, "entries": entries})
}

// MyRank returns the authenticated user's leaderboard entry for a period.
func (h *Handler) MyRank(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	period := domain.Period(c.DefaultQuery("period", string(domain.PeriodOverall)))

	entry, err := h.Leaderboard.Rank(c.Request.Context(), period, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if entry == nil {
		c.JSON(http.StatusOK, gin.H{"period": period, "entry": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"period": period, "entry": entry})
}

type recomputeLeaderboardRequest struct {
	Period string `json:"period" binding:"required"`
}

// RecomputeLeaderboard forces a fresh projection for a period. Normally
// the periodic job does this; the endpoint exists for admin tooling.
func (h *Handler) RecomputeLeaderboard(c *gin.Context) {
	var req recomputeLeaderboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entries, err := h.Leaderboard.Recompute(c.Request.Context(), domain.Period(req.Period))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"period": req.Period, "entries": entries})
}
