package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"hireable-backend/internal/domain"
	"hireable-backend/pkg/content"
	"hireable-backend/pkg/storage"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	DBUrl       string
	DBMaxConns  int
	// DBSimpleProtocol disables prepared statements for transaction poolers.
	DBSimpleProtocol bool

	// Tokens are either HS256 signed with JWTSecret or RS256 keys from JWKSURL.
	JWTSecret string
	JWKSURL   string

	FrontendURL    string
	AllowedOrigins []string
	DefaultLocale  content.Locale

	RedisURL      string
	RedisPassword string

	Storage storage.Config

	// Rate limiting
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitFailClosed      bool
	UploadsPerMinute         int
	UploadsPerDay            int
	MaxUploadMB              int

	// ClamAVAddress is host:port of clamd. Empty disables scanning.
	ClamAVAddress string
	ClamAVTimeout int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; production injects the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DBUrl:            getEnv("DATABASE_URL", ""),
		DBMaxConns:       getEnvInt("DB_MAX_CONNS", 10),
		DBSimpleProtocol: getEnvBool("DB_SIMPLE_PROTOCOL", false),
		JWTSecret:        getEnv("AUTH_JWT_SECRET", ""),
		JWKSURL:          getEnv("AUTH_JWKS_URL", ""),
		FrontendURL:      strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "")),
		DefaultLocale:    content.ParseLocale(getEnv("DEFAULT_LOCALE", string(content.DefaultLocale))),
		RedisURL:         getEnv("REDIS_URL", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		Storage: storage.Config{
			Provider:        storage.Provider(getEnv("S3_PROVIDER", string(storage.ProviderAWS))),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Region:          getEnv("S3_REGION", "me-central-1"),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			PublicBaseURL:   strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
			Buckets: map[domain.Bucket]string{
				domain.BucketProfilePictures: getEnv("BUCKET_PROFILE_PICTURES", "profile-pictures"),
				domain.BucketResumes:         getEnv("BUCKET_RESUMES", "resumes"),
				domain.BucketMedia:           getEnv("BUCKET_MEDIA", "introductions"),
			},
		},
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitFailClosed:      getEnvBool("RATE_LIMIT_FAIL_CLOSED", false),
		UploadsPerMinute:         getEnvInt("UPLOADS_PER_MINUTE", 5),
		UploadsPerDay:            getEnvInt("UPLOADS_PER_DAY", 20),
		MaxUploadMB:              getEnvInt("MAX_UPLOAD_MB", 60),
		ClamAVAddress:            getEnv("CLAMAV_ADDRESS", ""),
		ClamAVTimeout:            getEnvInt("CLAMAV_TIMEOUT_SECONDS", 30),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if cfg.JWTSecret == "" && cfg.JWKSURL == "" {
		log.Println("WARNING: neither AUTH_JWT_SECRET nor AUTH_JWKS_URL is set. Every token will be rejected.")
	}

	return cfg, nil
}

// IsProduction reports whether ENVIRONMENT is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// MaxUploadBytes bounds a multipart request body.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.TrimRight(part, "/"))
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
