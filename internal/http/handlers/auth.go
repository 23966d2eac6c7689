package handlers

import (
	"net/http"
	"os"

	"fantasy_arena/internal/service"

	"github.com/gin-gonic/gin"
)

type devTokenRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// DevToken mints a token for local development and smoke tests. Disabled
// unless AUTH_DEV_TOKENS=true; production deployments get tokens from the
// identity service.
func (h *Handler) DevToken(c *gin.Context) {
	if os.Getenv("AUTH_DEV_TOKENS") != "true" {
		c.JSON(http.StatusForbidden, gin.H{"error": "dev tokens disabled"})
		return
	}

	var req devTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := service.GenerateJWT(req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
