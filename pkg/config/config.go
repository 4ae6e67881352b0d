package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultOrigins are used when CORS_ORIGINS is not set: local Next.js dev
// servers plus the deployed frontend.
var DefaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"https://vanlang-budget-fe.vercel.app",
}

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음 (every env var is read here and nowhere else)
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// CORS
	AllowedOrigins []string

	// Redis
	Redis RedisConfig

	// Cache TTLs (only used when Redis is enabled)
	Cache CacheConfig

	// Market data sources
	Sources  SourcesConfig
	Upstream UpstreamConfig
	VCI      VendorConfig
	TCBS     VendorConfig

	// Mock fallback tier
	MockFallback  bool
	MockVariation float64

	// PriceRescaleHeuristic enables the legacy ×1000 / ÷1000 guess on
	// realtime prices. Off by default.
	PriceRescaleHeuristic bool

	// Board enrichment
	BoardBatchSize int

	// Catalog / listing
	CatalogFile        string
	ListingRefreshCron string
	SourceProbeCron    string

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// CacheConfig holds per-operation cache TTLs
type CacheConfig struct {
	QuoteTTL   time.Duration
	HistoryTTL time.Duration
	CompanyTTL time.Duration
	ListingTTL time.Duration
}

// SourcesConfig selects which vendor adapters are registered
type SourcesConfig struct {
	Default      string
	Enabled      []string
	ProbeOnStart bool
}

// UpstreamConfig controls outbound calls to vendors
type UpstreamConfig struct {
	Timeout    time.Duration
	MaxRetries int
	RPS        float64
}

// VendorConfig holds a vendor base URL
type VendorConfig struct {
	BaseURL string
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	origins := getEnvAsList("CORS_ORIGINS", nil)
	if len(origins) == 0 {
		origins = getEnvAsList("ALLOWED_ORIGINS", DefaultOrigins)
	}

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8000"),
		Env:  getEnv("ENV", "development"),

		AllowedOrigins: origins,

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Cache: CacheConfig{
			QuoteTTL:   getEnvAsDuration("CACHE_TTL_QUOTE", "15s"),
			HistoryTTL: getEnvAsDuration("CACHE_TTL_HISTORY", "10m"),
			CompanyTTL: getEnvAsDuration("CACHE_TTL_COMPANY", "24h"),
			ListingTTL: getEnvAsDuration("CACHE_TTL_LISTING", "6h"),
		},

		Sources: SourcesConfig{
			Default:      strings.ToUpper(getEnv("DEFAULT_SOURCE", "VCI")),
			Enabled:      upper(getEnvAsList("ENABLED_SOURCES", []string{"VCI", "TCBS", "YAHOO"})),
			ProbeOnStart: getEnvAsBool("PROBE_ON_START", true),
		},

		Upstream: UpstreamConfig{
			Timeout:    getEnvAsDuration("UPSTREAM_TIMEOUT", "10s"),
			MaxRetries: getEnvAsInt("UPSTREAM_MAX_RETRIES", 2),
			RPS:        getEnvAsFloat("UPSTREAM_RPS", 5),
		},

		VCI: VendorConfig{
			BaseURL: getEnv("VCI_BASE_URL", "https://trading.vietcap.com.vn"),
		},
		TCBS: VendorConfig{
			BaseURL: getEnv("TCBS_BASE_URL", "https://apipubaws.tcbs.com.vn"),
		},

		MockFallback:          getEnvAsBool("MOCK_FALLBACK", true),
		MockVariation:         getEnvAsFloat("MOCK_VARIATION", 0.05),
		PriceRescaleHeuristic: getEnvAsBool("PRICE_RESCALE_HEURISTIC", false),

		BoardBatchSize: getEnvAsInt("BOARD_BATCH_SIZE", 50),

		CatalogFile:        getEnv("CATALOG_FILE", ""),
		ListingRefreshCron: os.Getenv("LISTING_REFRESH_CRON"),
		SourceProbeCron:    getEnv("SOURCE_PROBE_CRON", ""),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if _, set := os.LookupEnv("LISTING_REFRESH_CRON"); !set {
		cfg.ListingRefreshCron = "0 0 */6 * * *"
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if len(c.Sources.Enabled) == 0 && !c.MockFallback {
		return fmt.Errorf("ENABLED_SOURCES is empty and MOCK_FALLBACK is off: no data source left")
	}

	if c.MockVariation < 0 || c.MockVariation >= 1 {
		return fmt.Errorf("MOCK_VARIATION must be in [0, 1), got %v", c.MockVariation)
	}

	if c.BoardBatchSize <= 0 {
		return fmt.Errorf("BOARD_BATCH_SIZE must be positive, got %d", c.BoardBatchSize)
	}

	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}

	return nil
}

// OriginAllowed reports whether a browser origin may call the API. A "*"
// entry allows any origin.
func (c *Config) OriginAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	for _, o := range c.AllowedOrigins {
		if o == "*" || strings.EqualFold(strings.TrimRight(o, "/"), strings.TrimRight(origin, "/")) {
			return true
		}
	}
	return false
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env",           // Current directory
		"stock-api/.env", // From project root
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getEnvAsList splits a comma-separated variable, dropping blanks
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if strings.TrimSpace(valueStr) == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func upper(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToUpper(v)
	}
	return out
}
