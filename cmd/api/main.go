package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hireable-backend/config"
	_ "hireable-backend/docs" // Important for Swagger
	v1 "hireable-backend/internal/delivery/http/v1"
	"hireable-backend/internal/repository/postgres"
	"hireable-backend/internal/usecase"
	"hireable-backend/pkg/auth"
	"hireable-backend/pkg/content"
	"hireable-backend/pkg/database"
	"hireable-backend/pkg/imaging"
	"hireable-backend/pkg/logger"
	"hireable-backend/pkg/redis"
	"hireable-backend/pkg/resume"
	"hireable-backend/pkg/security"
	"hireable-backend/pkg/security/antivirus"
	"hireable-backend/pkg/storage"
	"hireable-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// @title           Hireable API
// @version         1.0
// @description     Candidate directory, onboarding submissions and recruiter tools.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.InitWithLevel(cfg.LogLevel)
	logger.Log.Info("Starting hireable backend", "port", cfg.Port, "env", cfg.Environment)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	audit := security.InitAuditLogger("hireable-api", cfg.Environment)
	defer audit.Sync()

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, database.PoolConfig{
		MaxConns:       int32(cfg.DBMaxConns),
		SimpleProtocol: cfg.DBSimpleProtocol,
	})
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis. Optional; limiters fall back to memory.
	var scripter goredis.Scripter
	var redisProbe func(context.Context) error
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory rate limits", "error", err)
	} else {
		scripter = redis.Client()
		redisProbe = redis.HealthCheck
		defer redis.Close()
	}

	// 5. Setup Object Storage
	s3Client, err := storage.NewS3Client(ctx, cfg.Storage)
	if err != nil {
		logger.Log.Error("Failed to configure object storage", "error", err)
		os.Exit(1)
	}
	blobs := storage.NewS3Store(s3Client, cfg.Storage)

	// 6. Setup Malware Scanning
	var scanner antivirus.Scanner = antivirus.NoOpScanner{}
	if cfg.ClamAVAddress != "" {
		clam := antivirus.NewClamAVScanner(cfg.ClamAVAddress, time.Duration(cfg.ClamAVTimeout)*time.Second)
		if cfg.IsProduction() {
			scanner = antivirus.NewChainScanner(clam)
		} else {
			scanner = antivirus.NewChainScanner(clam, antivirus.NoOpScanner{})
		}
	}

	// 7. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)

	// 8. Setup UseCases
	dict := content.MustLoad()
	roleUC := usecase.NewRoleUsecase(userRepo, audit)
	candidateUC := usecase.NewCandidateUsecase(usecase.CandidateDeps{
		Repo:     candidateRepo,
		Blobs:    blobs,
		Text:     resume.NewExtractor(),
		Images:   imaging.NewCompressor(),
		Scanner:  scanner,
		Audit:    audit,
		Validate: validation.New(),
	})
	healthUC := usecase.NewHealthUsecase(map[string]func(context.Context) error{
		"database": dbPool.Ping,
		"redis":    redisProbe,
	})

	// 9. Setup Auth (HS256 secret and/or JWKS)
	var jwks *auth.Provider
	if cfg.JWKSURL != "" {
		jwks = auth.NewProvider(cfg.JWKSURL, &http.Client{Timeout: 10 * time.Second})
	}
	verifier := auth.NewVerifier(cfg.JWTSecret, jwks)

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		CandidateUC: candidateUC,
		RoleUC:      roleUC,
		HealthUC:    healthUC,
		Tokens:      verifier,
		Dict:        dict,
		Audit:       audit,
		Redis:       scripter,
		Uploads:     security.NewUploadLimiter(scripter, cfg.UploadsPerMinute, cfg.UploadsPerDay),
		Config:      cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
