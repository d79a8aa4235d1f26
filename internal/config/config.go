package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	API       APIConfig
	Session   SessionConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Uploads   UploadConfig
	Catalog   CatalogConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	Env             string
	TimeZone        string
	StaticDir       string
	ShutdownTimeout time.Duration
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Only enable it behind a reverse proxy that sets those headers.
	TrustProxy bool
}

// APIConfig points at the remote events API
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	Secret string
	MaxAge time.Duration
	Secure bool
}

type CacheConfig struct {
	Driver        string // "memory" or "redis"
	RedisURL      string
	CategoriesTTL time.Duration
	EventsTTL     time.Duration
	PromotionsTTL time.Duration
	ReviewsTTL    time.Duration
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type UploadConfig struct {
	MaxProofBytes int64
	MaxImageEdge  int
}

type CatalogConfig struct {
	PageSize         int
	OrganizerReviews int
	CarouselInterval time.Duration
	SearchDebounce   time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "3000"),
			Host:            getEnv("HOST", "localhost"),
			Env:             getEnv("ENV", "development"),
			TimeZone:        getEnv("APP_TIMEZONE", "Asia/Jakarta"),
			StaticDir:       getEnv("STATIC_DIR", "web/static"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			TrustProxy:      getEnvAsBool("TRUST_PROXY", false),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000"), "/"),
			Timeout: getEnvAsDuration("API_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
			MaxAge: getEnvAsDuration("SESSION_MAX_AGE", 2*time.Hour),
			Secure: getEnvAsBool("SESSION_SECURE", false),
		},
		Cache: CacheConfig{
			Driver:        getEnv("CACHE_DRIVER", "memory"),
			RedisURL:      getEnv("REDIS_URL", ""),
			CategoriesTTL: getEnvAsDuration("CACHE_CATEGORIES_TTL", 5*time.Minute),
			EventsTTL:     getEnvAsDuration("CACHE_EVENTS_TTL", 30*time.Second),
			PromotionsTTL: getEnvAsDuration("CACHE_PROMOTIONS_TTL", time.Minute),
			ReviewsTTL:    getEnvAsDuration("CACHE_REVIEWS_TTL", time.Minute),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 2),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
		Uploads: UploadConfig{
			MaxProofBytes: int64(getEnvAsInt("UPLOAD_MAX_BYTES", 10<<20)),
			MaxImageEdge:  getEnvAsInt("UPLOAD_MAX_IMAGE_EDGE", 1600),
		},
		Catalog: CatalogConfig{
			PageSize:         getEnvAsInt("CATALOG_PAGE_SIZE", 3),
			OrganizerReviews: getEnvAsInt("CATALOG_ORGANIZER_REVIEWS", 6),
			CarouselInterval: getEnvAsDuration("CATALOG_CAROUSEL_INTERVAL", 4*time.Second),
			SearchDebounce:   getEnvAsDuration("CATALOG_SEARCH_DEBOUNCE", 500*time.Millisecond),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
	}

	if config.Cache.Driver == "redis" && config.Cache.RedisURL == "" {
		config.Cache.Driver = "memory"
	}

	return config, nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// Location returns the zone organizer form datetimes are read in and dates
// are shown in, falling back to the local zone when TimeZone is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Server.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// IsProduction reports whether the server runs with ENV=production
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
