package handlers

import (
	"errors"
	"net/http"

	"fantasy_arena/internal/catalog"
	"fantasy_arena/internal/domain"
	"fantasy_arena/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Catalog     *catalog.Catalog
	Questions   service.QuestionRepository
	Selector    *service.SelectorService
	Predictions *service.PredictionService
	Scoring     *service.ScoringService
	Coins       *service.CoinService
	Badges      *service.BadgeService
	Leaderboard *service.LeaderboardService
}

func NewHandler(
	cat *catalog.Catalog,
	questions service.QuestionRepository,
	selector *service.SelectorService,
	predictions *service.PredictionService,
	scoring *service.ScoringService,
	coins *service.CoinService,
	badges *service.BadgeService,
	leaderboard *service.LeaderboardService,
) *Handler {
	return &Handler{
		Catalog:     cat,
		Questions:   questions,
		Selector:    selector,
		Predictions: predictions,
		Scoring:     scoring,
		Coins:       coins,
		Badges:      badges,
		Leaderboard: leaderboard,
	}
}

// getUserID extracts the user id placed into the context by the JWT
// middleware.
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicatePrediction),
		errors.Is(err, domain.ErrDuplicateResult),
		errors.Is(err, domain.ErrDuplicateTransaction):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnknownGameType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
