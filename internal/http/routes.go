package http

import (
	"os"
	"strconv"
	"time"

	"fantasy_arena/internal/config"
	"fantasy_arena/internal/http/handlers"
	"fantasy_arena/internal/http/middleware"
	"fantasy_arena/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, h *handlers.Handler, hub *ws.Hub, cfg *config.Config, version string) {
	healthHandler := handlers.NewHealthHandler(db, version)

	apiRateLimit := cfg.APIRateLimit
	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second

	// submit limits read from env, with safe defaults
	submitRateLimit := 30
	if v := os.Getenv("SUBMIT_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			submitRateLimit = n
		}
	}
	submitRateWindow := time.Minute
	if v := os.Getenv("SUBMIT_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			submitRateWindow = time.Duration(n) * time.Second
		}
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))
	registerAPIRoutes(v1, h, submitRateLimit, submitRateWindow)

	// Leaderboard push channel
	r.GET("/ws", h.WS(hub))
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, submitRateLimit int, submitRateWindow time.Duration) {
	// Catalog
	api.GET("/games", h.ListGames)

	// Dev token minting (disabled in production)
	api.POST("/auth/token", h.DevToken)

	// Sessions and predictions
	submitRL := middleware.SubmitRateLimit(submitRateLimit, submitRateWindow)
	api.POST("/sessions", middleware.JWT(), h.StartSession)
	api.POST("/predictions", middleware.JWT(), submitRL, h.SubmitPrediction)
	api.GET("/me/predictions", middleware.JWT(), h.MyPredictions)

	// Wallet
	api.GET("/me/wallet", middleware.JWT(), h.MyWallet)
	api.GET("/me/wallet/history", middleware.JWT(), h.MyTransactions)

	// Reward hooks for external flows
	api.POST("/rewards/referral", middleware.JWT(), h.ClaimReferralReward)
	api.POST("/rewards/quiz", middleware.JWT(), h.ClaimQuizReward)

	// Badges
	api.GET("/me/badges", middleware.JWT(), h.MyBadges)
	api.GET("/users/:id/badges", h.UserBadges)

	// Leaderboard
	api.GET("/leaderboard", h.GetLeaderboard)
	api.GET("/me/rank", middleware.JWT(), h.MyRank)

	// Admin surface
	admin := api.Group("/admin")
	admin.Use(middleware.AdminToken())
	{
		admin.GET("/questions", h.ListQuestions)
		admin.POST("/questions/:id/retire", h.RetireQuestion)
		admin.POST("/results", h.DeclareResult)
		admin.POST("/results/batch", h.DeclareResultsBatch)
		admin.POST("/wallet/adjust", h.AdjustWallet)
		admin.POST("/wallet/:id/recompute", h.RecomputeWallet)
		admin.POST("/leaderboard/recompute", h.RecomputeLeaderboard)
	}
}
