package handlers

import (
	"errors"
	"net/http"

	"fantasy_arena/internal/domain"

	"github.com/gin-gonic/gin"
)

type rewardRequest struct {
	ReferenceID string `json:"reference_id" binding:"required"`
}

// ClaimReferralReward credits the catalog referral amount once per
// reference id. The referral flow itself lives outside the engine; this
// endpoint is its credit hook.
func (h *Handler) ClaimReferralReward(c *gin.Context) {
	h.claimReward(c, domain.TxReferral)
}

// ClaimQuizReward credits the catalog quiz amount once per reference id.
func (h *Handler) ClaimQuizReward(c *gin.Context) {
	h.claimReward(c, domain.TxQuizReward)
}

func (h *Handler) claimReward(c *gin.Context, t domain.TransactionType) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req rewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// A replayed reference id is a no-op: the caller already got its
	// credit, so retries see the same success and balance.
	balance, err := h.Coins.CreditReward(c.Request.Context(), userID, t, req.ReferenceID)
	if err != nil && !errors.Is(err, domain.ErrDuplicateTransaction) {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "balance": balance})
}
