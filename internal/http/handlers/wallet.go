package handlers

import (
	"net/http"
	"strconv"

	"fantasy_arena/internal/domain"

	"github.com/gin-gonic/gin"
)

// MyWallet returns the user's current coin balance.
func (h *Handler) MyWallet(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	balance, err := h.Coins.Balance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "balance": balance})
}

// MyTransactions returns the user's ledger history, newest first.
func (h *Handler) MyTransactions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	txs, err := h.Coins.History(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

type adjustWalletRequest struct {
	UserID      int64  `json:"user_id" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
	ReferenceID string `json:"reference_id" binding:"required"`
}

// AdjustWallet applies a manual admin correction. The only transaction
// type allowed to carry a negative amount.
func (h *Handler) AdjustWallet(c *gin.Context) {
	var req adjustWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	balance, err := h.Coins.Credit(c.Request.Context(), req.UserID, domain.TxAdminAdjustment, req.Amount, req.ReferenceID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": req.UserID, "balance": balance})
}

// RecomputeWallet rebuilds a wallet balance from the ledger. Used by the
// reconciliation job when a drift is suspected.
func (h *Handler) RecomputeWallet(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	balance, err := h.Coins.RecomputeBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "balance": balance})
}
