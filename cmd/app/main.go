package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fantasy_arena/internal/catalog"
	"fantasy_arena/internal/config"
	"fantasy_arena/internal/db"
	httpServer "fantasy_arena/internal/http"
	"fantasy_arena/internal/http/handlers"
	"fantasy_arena/internal/http/middleware"
	"fantasy_arena/internal/logger"
	"fantasy_arena/internal/repository"
	"fantasy_arena/internal/service"
	"fantasy_arena/internal/ws"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT()

	dbPool, err := db.Connect(context.Background(), cfg.DatabaseURL, int32(cfg.DBMaxConns))
	if err != nil {
		logger.Fatal("database connect failed", "error", err)
	}
	defer dbPool.Close()

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := cache.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, leaderboard cache disabled", "error", err)
			cache = nil
		}
		cancel()
	}
	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	cat := catalog.Default()
	cat.SetCooldownSessions(cfg.CooldownSessions)

	questionRepo := repository.NewQuestionRepository(dbPool)
	sessionRepo := repository.NewSessionRepository(dbPool)
	predictionRepo := repository.NewPredictionRepository(dbPool)
	resultRepo := repository.NewResultRepository(dbPool)
	outcomeRepo := repository.NewOutcomeRepository(dbPool)
	ledgerRepo := repository.NewLedgerRepository(dbPool)
	badgeRepo := repository.NewBadgeRepository(dbPool)
	statsRepo := repository.NewStatsRepository(dbPool)

	selector := service.NewSelector(questionRepo, sessionRepo, cat, cfg.SelectorSeed)
	predictions := service.NewPredictionService(questionRepo, predictionRepo, resultRepo, cat)
	coins := service.NewCoinService(ledgerRepo, cat)
	badges := service.NewBadgeService(badgeRepo, statsRepo)
	scoring := service.NewScoringService(questionRepo, predictionRepo, resultRepo, outcomeRepo, statsRepo, coins, badges, cat)
	leaderboard := service.NewLeaderboardService(outcomeRepo, ledgerRepo, badgeRepo, badges, cache)

	hub := ws.NewHub()
	leaderboard.SetNotify(hub.BroadcastLeaderboard)

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Token")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	h := handlers.NewHandler(cat, questionRepo, selector, predictions, scoring, coins, badges, leaderboard)
	httpServer.RegisterRoutes(r, dbPool, h, hub, cfg, version)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
