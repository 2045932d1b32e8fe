package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sahay-labs/sahay/internal/api"
	"github.com/sahay-labs/sahay/internal/clients"
	"github.com/sahay-labs/sahay/internal/config"
	"github.com/sahay-labs/sahay/internal/db"
	"github.com/sahay-labs/sahay/internal/matching"
	"github.com/sahay-labs/sahay/internal/middleware"
	"github.com/sahay-labs/sahay/internal/observ"
	"github.com/sahay-labs/sahay/internal/repository/postgres"
	"github.com/sahay-labs/sahay/internal/service"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	// Startup has no request deadline; take as long as needed to connect.
	ctx := context.Background()

	database, err := db.New(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	migrator, err := db.NewMigrator(database.Pool(), cfg.MigrationsDir, logger)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	// Optional backends. Each degrades to nil and the owning service
	// falls back: no cache, no AI tutor, no file sharing.
	cache := newCache(ctx, cfg.RedisURL, logger)

	var ai clients.AIClient
	if cfg.AIAPIKey == "" {
		logger.Warn("AI_API_KEY not set, AI tutor disabled")
	} else if ai, err = clients.NewAIClient(clients.AIConfig{
		BaseURL: cfg.AIBaseURL,
		APIKey:  cfg.AIAPIKey,
		Model:   cfg.AIModel,
	}, logger); err != nil {
		return fmt.Errorf("create AI client: %w", err)
	}

	var bucket clients.BucketClient
	if cfg.GCSBucket == "" {
		logger.Warn("GCS_BUCKET_NAME not set, file sharing disabled")
	} else if bucket, err = clients.NewBucketClient(ctx, clients.BucketConfig{
		BucketName:      cfg.GCSBucket,
		CDNDomain:       cfg.CDNDomain,
		CredentialsFile: cfg.GCSCredentials,
	}, logger); err != nil {
		return fmt.Errorf("create bucket client: %w", err)
	}

	pool := database.Pool()
	accountRepo := postgres.NewAccountStore(pool)
	profileRepo := postgres.NewProfileStore(pool)
	matchRepo := postgres.NewMatchStore(pool)
	messageRepo := postgres.NewMessageStore(pool)
	ratingRepo := postgres.NewRatingStore(pool)
	streakRepo := postgres.NewStreakStore(pool)

	weights := matching.DefaultWeights()
	weights.RequireSubject = cfg.SubjectGate
	weights.RequireLanguage = cfg.LanguageGate

	matchmaking := service.NewMatchmakingService(
		profileRepo, matchRepo, messageRepo,
		weights, cfg.MatchThreshold,
		time.Duration(cfg.SessionTimeoutMin)*time.Minute,
		logger,
	)
	chat := service.NewChatService(matchRepo, messageRepo, ai, logger)
	ratings := service.NewRatingService(ratingRepo, cache, logger)
	streaks := service.NewStreakService(streakRepo, logger)

	authHandler := api.NewAuthHandler(accountRepo, cfg.JWTSecret, logger)
	profileHandler := api.NewProfileHandler(matchmaking, profileRepo, logger)
	matchHandler := api.NewMatchHandler(matchmaking, logger)
	chatHandler := api.NewChatHandler(chat, bucket, logger)
	ratingHandler := api.NewRatingHandler(ratings, logger)
	practiceHandler := api.NewPracticeHandler(streaks, logger)
	adminHandler := api.NewAdminHandler(accountRepo, profileRepo, cfg.AdminKey, logger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := gin.New()
	srv.Use(gin.Logger(), gin.Recovery())

	// Public: health for load balancers, auth to mint tokens.
	srv.GET("/v1/health", func(c *gin.Context) {
		if err := database.Health(c.Request.Context()); err != nil {
			c.JSON(503, gin.H{"status": "degraded"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})
	srv.POST("/v1/auth/signup", authHandler.Signup)
	srv.POST("/v1/auth/login", authHandler.Login)

	v1 := srv.Group("/v1")
	v1.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		v1.POST("/profiles", profileHandler.Register)
		v1.GET("/profiles/me", profileHandler.Me)

		v1.POST("/match/find", matchHandler.Find)
		v1.POST("/matches/:id/end", matchHandler.End)

		v1.GET("/matches/:id/messages", chatHandler.List)
		v1.POST("/matches/:id/messages", chatHandler.Create)
		v1.POST("/matches/:id/files", chatHandler.UploadFile)
		v1.POST("/matches/:id/hint", chatHandler.Hint)
		v1.POST("/matches/:id/quiz", chatHandler.Quiz)

		v1.POST("/ratings", ratingHandler.Submit)
		v1.GET("/leaderboard", ratingHandler.Leaderboard)

		v1.GET("/practice/questions", practiceHandler.Questions)
		v1.POST("/practice/submit", practiceHandler.Submit)
		v1.GET("/streaks/me", practiceHandler.Streak)
	}

	admin := srv.Group("/v1/admin")
	admin.Use(adminHandler.RequireKey())
	{
		admin.GET("/stats", adminHandler.Stats)
		admin.GET("/users", adminHandler.Users)
	}

	logger.Info("starting sahay",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
	)
	return srv.Run(":" + cfg.Port)
}

// newCache connects to Redis, or returns nil when the URL is bad or the
// server is unreachable. A nil cache means every leaderboard read hits
// Postgres, which is correct, just slower.
func newCache(ctx context.Context, redisURL string, logger *zap.Logger) *redis.Client {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn("invalid REDIS_URL, leaderboard cache disabled", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, leaderboard cache disabled", zap.Error(err))
		client.Close()
		return nil
	}

	logger.Info("redis cache connected")
	return client
}
