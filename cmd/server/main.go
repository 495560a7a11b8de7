package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"partner-onboarding.backend/internal/config"
	"partner-onboarding.backend/internal/infrastructure/datasources/postgres"
	"partner-onboarding.backend/internal/infrastructure/identity"
	"partner-onboarding.backend/internal/infrastructure/jobs"
	"partner-onboarding.backend/internal/infrastructure/limits"
	"partner-onboarding.backend/internal/infrastructure/metrics"
	"partner-onboarding.backend/internal/infrastructure/models"
	"partner-onboarding.backend/internal/infrastructure/notifications"
	"partner-onboarding.backend/internal/infrastructure/repositories"
	"partner-onboarding.backend/internal/interfaces/http/handlers"
	"partner-onboarding.backend/internal/interfaces/http/middleware"
	"partner-onboarding.backend/internal/usecases"
	"partner-onboarding.backend/pkg/clock"
	"partner-onboarding.backend/pkg/crypto"
	"partner-onboarding.backend/pkg/jwt"
	"partner-onboarding.backend/pkg/logger"
	"partner-onboarding.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = postgres.Open
	migrateDB  = func(db *gorm.DB) error { return db.AutoMigrate(models.All()...) }
	runServer  = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB   = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
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
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

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
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to database")
		if err := migrateDB(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Metrics live in their own registry so repeated boots in one process do not collide
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	onboardingMetrics := metrics.New(registry)

	// Initialize repositories
	uow := repositories.NewUnitOfWork(db)
	requestRepo := repositories.NewRegistrationRequestRepository(db)
	accountRepo := repositories.NewPartnerAccountRepository(db)
	locationRepo := repositories.NewPartnerLocationRepository(db)
	identityProvider := identity.NewProvider(db, cfg.Identity.BcryptCost, cfg.Onboarding.MinPasswordLength)

	// Initialize usecases
	systemClock := clock.System{}
	requestUsecase := usecases.NewRequestUsecase(requestRepo, systemClock, onboardingMetrics)
	authUsecase := usecases.NewAuthUsecase(identityProvider, jwtService)
	onboardingUsecase := usecases.NewOnboardingUsecase(usecases.OnboardingDeps{
		UnitOfWork:        uow,
		Requests:          requestRepo,
		Accounts:          accountRepo,
		Locations:         locationRepo,
		Identity:          identityProvider,
		Notifier:          notifications.NewLogNotifier(),
		Codes:             crypto.NewCodeGenerator(cfg.Onboarding.CodeLength),
		Clock:             systemClock,
		Limiter:           limits.NewAttemptLimiter(cfg.Onboarding.VerifyAttemptLimit, cfg.Onboarding.VerifyAttemptWindow),
		Metrics:           onboardingMetrics,
		MinPasswordLength: cfg.Onboarding.MinPasswordLength,
	})

	// Start background jobs
	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	orphanJob := jobs.NewOrphanIdentityReportJob(identityProvider, accountRepo, onboardingMetrics, cfg.Onboarding.OrphanReportInterval)
	go orphanJob.Start(jobCtx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r, handlers.NewHealthHandler(map[string]handlers.HealthCheck{
		"database": sqlDB.PingContext,
		"redis":    redisPing,
	}))
	registerMetricsRoute(r, registry)
	registerAPIV1Routes(r, routeDeps{
		requestHandler:       handlers.NewRequestHandler(requestUsecase),
		registrationHandler:  handlers.NewRegistrationHandler(onboardingUsecase),
		authHandler:          handlers.NewAuthHandler(authUsecase),
		onboardingHandler:    handlers.NewOnboardingHandler(onboardingUsecase),
		adminHandler:         handlers.NewAdminHandler(requestUsecase, onboardingUsecase),
		authMiddleware:       middleware.AuthMiddleware(jwtService),
		idempotencyRetention: cfg.Onboarding.IdempotencyRetention,
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(ctx, "Shutting down server")
		orphanJob.Stop()
		cancel()
	}()

	logger.Info(ctx, "Partner onboarding backend starting",
		zap.String("port", cfg.Server.Port),
		zap.String("api", "http://localhost:"+cfg.Server.Port+"/api/v1"),
		zap.String("health", "http://localhost:"+cfg.Server.Port+"/health"),
	)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func redisPing(ctx context.Context) error {
	client := redis.GetClient()
	if client == nil {
		return redis.ErrNotInitialized
	}
	return client.Ping(ctx).Err()
}
