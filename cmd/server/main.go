package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"passlink.backend/internal/config"
	"passlink.backend/internal/domain/repositories"
	"passlink.backend/internal/infrastructure/issuer"
	"passlink.backend/internal/infrastructure/jobs"
	infrarepos "passlink.backend/internal/infrastructure/repositories"
	"passlink.backend/internal/interfaces/http/handlers"
	"passlink.backend/internal/interfaces/http/middleware"
	"passlink.backend/internal/usecases"
	"passlink.backend/pkg/jwt"
	"passlink.backend/pkg/logger"
	"passlink.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("Connected to PostgreSQL via GORM")
	}

	// Signer for verification artifacts minted by the dev issuer
	signer := jwt.NewSigner(cfg.Issuer.SigningSecret, cfg.Issuer.ArtifactTTL)

	// Repositories
	tokenRepo := infrarepos.NewLoginTokenRepository(db)
	linkRepo := infrarepos.NewVerificationLinkRepository(db)

	// Usecases
	tokens := usecases.NewTokenUsecase(tokenRepo, cfg.Link.RedeemBaseURL, cfg.Link.TokenTTL, cfg.Link.TokenRetention)
	credentialIssuer := buildIssuer(cfg, linkRepo, signer)
	exchange := usecases.NewExchangeUsecase(tokens, linkRepo, credentialIssuer, usecases.ExchangePolicy{
		PollAttempts: cfg.Link.PollAttempts,
		PollInterval: cfg.Link.PollInterval,
	})

	// Handlers
	linkHandler := handlers.NewLinkHandler(tokens, cfg.Link.RecentConsumptionWindow)
	redeemHandler := handlers.NewRedeemHandler(exchange, cfg.Link.SignInURL)
	callbackHandler := handlers.NewCallbackHandler(linkRepo, cfg.Issuer.CallbackSecret)
	verifyHandler := handlers.NewVerifyHandler(signer)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanupJob := jobs.NewRetentionCleanupJob(tokens, linkRepo, cfg.Link.LinkRetention, cfg.Link.CleanupInterval)
	go cleanupJob.Start(ctx)

	// Redemption is browser-facing and unauthenticated, so it carries a
	// per-IP budget.
	redeemLimiter := middleware.NewRateLimiter(rate.Every(time.Second), 10)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerRoutes(r, routeDeps{
		linkHandler:     linkHandler,
		redeemHandler:   redeemHandler,
		callbackHandler: callbackHandler,
		verifyHandler:   verifyHandler,
		issueGuard:      middleware.IdempotencyMiddleware(),
		redeemGuard:     redeemLimiter.Middleware(),
		devVerify:       cfg.Issuer.Mode == "dev",
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		cleanupJob.Stop()
		cancel()
	}()

	log.Printf("Passlink backend starting on port %s", cfg.Server.Port)
	log.Printf("API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// buildIssuer selects the credential issuer implementation. Dev mode keeps
// everything in-process; webhook mode hands generation to an external
// identity system that writes back through the callback endpoint.
func buildIssuer(cfg *config.Config, linkRepo repositories.VerificationLinkRepository, signer *jwt.Signer) repositories.CredentialIssuer {
	if cfg.Issuer.Mode == "webhook" {
		return issuer.NewWebhookIssuer(cfg.Issuer.WebhookURL, cfg.Issuer.CallbackSecret)
	}
	return issuer.NewDevIssuer(linkRepo, signer, cfg.Issuer.VerifyBaseURL, cfg.Issuer.ArtifactTTL, cfg.Issuer.DevDelay)
}
