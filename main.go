package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apperrors "github.com/KingGimer44/VideoJuego/common/errors"
	"github.com/KingGimer44/VideoJuego/common/logger"
	"github.com/KingGimer44/VideoJuego/controllers"
	"github.com/KingGimer44/VideoJuego/database"
	"github.com/KingGimer44/VideoJuego/middleware"
	awspkg "github.com/KingGimer44/VideoJuego/pkg/aws"
	"github.com/KingGimer44/VideoJuego/repository"
	"github.com/KingGimer44/VideoJuego/routes"
	"github.com/KingGimer44/VideoJuego/services"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const serviceName = "videojuego-api"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// --- AWS setup ---
	var awsCfg *sdkaws.Config
	if cfg.UseSecrets || cfg.CloudWatchEnabled || cfg.CatalogSNSTopicARN != "" {
		loaded, err := awspkg.LoadAWSConfig(ctx)
		if err != nil {
			log.Fatalf("Failed to load AWS config: %v", err)
		}
		awsCfg = &loaded
	}

	if cfg.UseSecrets && awsCfg != nil {
		cfg.applySecrets(ctx, awspkg.NewSecretsClient(*awsCfg))
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// --- Logger ---
	var cwLogs io.Writer
	if cfg.CloudWatchEnabled && awsCfg != nil {
		client, err := awspkg.NewCloudWatchLogsClient(ctx, *awsCfg, cfg.CloudWatchGroup, serviceName)
		if err != nil {
			log.Printf("CloudWatch Logs init failed (non-fatal): %v", err)
		} else {
			cwLogs = client
		}
	}

	zapLogger, err := logger.New(logger.Options{
		Env:   cfg.AppEnv,
		Level: cfg.LogLevel,
		File: logger.FileOptions{
			Path:       cfg.LogFile,
			MaxSizeMB:  cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAgeDays: cfg.LogMaxAgeDays,
			Compress:   true,
		},
		Extra: cwLogs,
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	// --- Database ---
	db, err := database.Connect(cfg.DB, zapLogger)
	if err != nil {
		zapLogger.Fatal("DB connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zapLogger.Fatal("Migration failed", zap.Error(err))
	}
	if cfg.SeedGames {
		if _, err := database.SeedGames(ctx, db, zapLogger); err != nil {
			zapLogger.Fatal("Seeding failed", zap.Error(err))
		}
	}

	// --- Cache (optional) ---
	var gameCache services.GameCache
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			zapLogger.Warn("Redis unavailable, caching disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			gameCache = services.NewRedisGameCache(redisClient, cfg.CacheTTL, zapLogger)
			zapLogger.Info("Connected to Redis")
		}
	}

	// --- Events and metrics (optional) ---
	var snsClient awspkg.SNSPublisher
	var metricsClient *awspkg.MetricsClient
	var metrics services.MetricsRecorder
	if awsCfg != nil {
		if cfg.CatalogSNSTopicARN != "" {
			snsClient = awspkg.NewSNSClient(*awsCfg)
		}
		metricsClient = awspkg.NewMetricsClient(*awsCfg, cfg.MetricsNamespace, cfg.CloudWatchEnabled)
		if metricsClient.IsEnabled() {
			metrics = metricsClient
		}
	}
	events := services.NewEventPublisher(snsClient, cfg.CatalogSNSTopicARN, zapLogger)

	// --- Auth ---
	hasher, err := services.NewPasswordHasher(cfg.PasswordHashing)
	if err != nil {
		zapLogger.Fatal("Password hasher init failed", zap.Error(err))
	}
	var tokens *services.TokenService
	var issuer services.TokenIssuer
	if cfg.JWTSecret != "" {
		tokens, err = services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
		if err != nil {
			zapLogger.Fatal("Token service init failed", zap.Error(err))
		}
		issuer = tokens
	}

	// --- Dependency injection ---
	gameRepo := repository.NewGormGameRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	gameService := services.NewGameService(gameRepo, gameCache, events, metrics, zapLogger)
	authService := services.NewAuthService(userRepo, hasher, issuer, events, metrics,
		services.AuthOptions{VerifyPassword: cfg.VerifyPassword}, zapLogger)
	gameController := controllers.NewGameController(gameService)
	authController := controllers.NewAuthController(authService)

	// --- HTTP router ---
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(apperrors.Recovery(zapLogger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(zapLogger))
	r.Use(middleware.MetricsMiddleware(metricsClient, serviceName))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware(middleware.GamesCORS.Methods, middleware.AuthCORS, middleware.GamesCORS))
	r.Use(middleware.RateLimitMiddleware(ctx, cfg.RateLimitPerMinute, cfg.RateLimitBurst))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(apperrors.ErrorMiddleware(zapLogger))

	var writeGuards []gin.HandlerFunc
	if cfg.RequireAuthForWrites {
		writeGuards = append(writeGuards, middleware.BearerAuth(tokens))
	}
	routes.Register(r, serviceName, authController, gameController, writeGuards...)

	// --- HTTP server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zapLogger.Info("VideoJuego API started", zap.String("port", cfg.Port), zap.String("db_driver", cfg.DB.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server shutdown error", zap.Error(err))
	}
	stop()

	if err := database.Close(db); err != nil {
		zapLogger.Error("Database close error", zap.Error(err))
	}

	zapLogger.Info("VideoJuego API stopped gracefully")
}
