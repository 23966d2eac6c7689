package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// MyBadges returns the badges the authenticated user has earned.
func (h *Handler) MyBadges(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	h.listBadges(c, userID)
}

// UserBadges returns another user's badges; badge walls are public.
func (h *Handler) UserBadges(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	h.listBadges(c, userID)
}

func (h *Handler) listBadges(c *gin.Context, userID int64) {
	badges, err := h.Badges.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "badges": badges})
}
