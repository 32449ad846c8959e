package v1

import (
	"net/http"
	"time"

	"hireable-backend/config"
	"hireable-backend/internal/delivery/http/middleware"
	"hireable-backend/internal/delivery/http/response"
	"hireable-backend/internal/domain"
	"hireable-backend/internal/usecase"
	"hireable-backend/pkg/content"
	"hireable-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	CandidateUC domain.CandidateUsecase
	RoleUC      domain.RoleUsecase
	HealthUC    usecase.HealthUsecase
	Tokens      middleware.TokenParser
	Dict        *content.Dictionary
	Audit       *security.AuditLogger
	// Redis backs the global rate limiter. Nil means in-memory buckets.
	Redis   goredis.Scripter
	Uploads *security.UploadLimiter
	Config  *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	r := gin.New()

	// Global Middlewares
	origins := append([]string{cfg.FrontendURL}, cfg.AllowedOrigins...)
	r.Use(middleware.CORS(origins, cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Locale(cfg.DefaultLocale))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler(deps.Dict))

	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Limit:      cfg.RateLimitGlobalThreshold,
		Window:     time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
		KeyPrefix:  "rl:ip:",
		FailClosed: cfg.RateLimitFailClosed,
	}, deps.Redis, deps.Audit)

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		if deps.HealthUC == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := v1.Group("")
	api.Use(limiter.Middleware())

	NewLocaleHandler(api)

	optional := api.Group("")
	optional.Use(middleware.OptionalAuth(deps.Tokens, deps.RoleUC))

	protected := api.Group("")
	protected.Use(middleware.Auth(deps.Tokens, deps.RoleUC, deps.Audit))
	{
		var upload gin.HandlerFunc
		if deps.Uploads != nil {
			upload = middleware.UploadLimit(deps.Uploads, deps.Dict, deps.Audit)
		}
		NewCandidateHandler(optional, protected, deps.CandidateUC, deps.Dict, CandidateGuards{
			Candidate:      middleware.RequireRole(deps.Dict, domain.RoleCandidate),
			Recruiter:      middleware.RequireRole(deps.Dict, domain.RoleRecruiter),
			Upload:         upload,
			MaxUploadBytes: cfg.MaxUploadBytes(),
		})
		NewRoleHandler(optional, protected, deps.RoleUC, cfg.FrontendURL)
	}

	return r
}
