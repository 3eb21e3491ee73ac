package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	CORSAllowedOrigins []string

	// Auth: tokens are issued by the external identity provider and verified
	// here with a shared HMAC secret.
	JWTSecret    string
	JWTIssuer    string
	JWTAudience  string
	JWTClockSkew time.Duration

	// Pricing knobs. Bundle size and prices apply across all bundle-eligible
	// catalog entries.
	BundleSize        int
	BundleUnitPrice   float64
	PlusSizeSurcharge float64

	// Earnings rates as 0-1 fractions.
	ProcessorFeeRate float64
	FounderSharePct  float64

	CouponServiceURL    string
	CouponTimeout       time.Duration
	CouponMaxAttempts   int
	CouponBreakerWindow time.Duration

	// Build costing shop rates. OverheadPercent and the estimate's margin are
	// 0-100 percentages, unlike the earnings fractions above.
	CostPricePerGram    float64
	CostEnergyRateHour  float64
	CostLaborRateHour   float64
	CostPackagingFlat   float64
	CostOverheadPercent float64

	CartTTL        time.Duration
	CatalogRefTTL  time.Duration
	IdempotencyTTL time.Duration

	RateLimitWindow time.Duration
	RateLimitMax    int

	LogFormat string
	LogLevel  string

	TracingEnabled  bool
	TracingEndpoint string
	TracingSampling float64

	MetricsBucketsCSV string
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),

		JWTSecret:    k.String("JWT_SECRET"),
		JWTIssuer:    strings.TrimSpace(k.String("JWT_ISSUER")),
		JWTAudience:  strings.TrimSpace(k.String("JWT_AUDIENCE")),
		JWTClockSkew: parseDuration(k.String("JWT_CLOCK_SKEW"), "30s"),

		BundleSize:        parseInt(k.String("BUNDLE_SIZE"), 3),
		BundleUnitPrice:   parseFloat(k.String("BUNDLE_UNIT_PRICE"), 25.0),
		PlusSizeSurcharge: parseFloat(k.String("PLUS_SIZE_SURCHARGE"), 2.50),

		ProcessorFeeRate: parseFloat(k.String("PROCESSOR_FEE_RATE"), 0.029),
		FounderSharePct:  parseFloat(k.String("FOUNDER_SHARE_PCT"), 0.50),

		CouponServiceURL:    strings.TrimSpace(k.String("COUPON_SERVICE_URL")),
		CouponTimeout:       parseDuration(k.String("COUPON_TIMEOUT"), "3s"),
		CouponMaxAttempts:   parseInt(k.String("COUPON_MAX_ATTEMPTS"), 2),
		CouponBreakerWindow: parseDuration(k.String("COUPON_BREAKER_WINDOW"), "30s"),

		CostPricePerGram:    parseFloat(k.String("COST_PRICE_PER_GRAM"), 0.05),
		CostEnergyRateHour:  parseFloat(k.String("COST_ENERGY_RATE_HOUR"), 0.12),
		CostLaborRateHour:   parseFloat(k.String("COST_LABOR_RATE_HOUR"), 20.0),
		CostPackagingFlat:   parseFloat(k.String("COST_PACKAGING_FLAT"), 1.50),
		CostOverheadPercent: parseFloat(k.String("COST_OVERHEAD_PERCENT"), 15.0),

		CartTTL:        parseDuration(k.String("CART_TTL"), "168h"),
		CatalogRefTTL:  parseDuration(k.String("CATALOG_REF_TTL"), "5m"),
		IdempotencyTTL: parseDuration(k.String("IDEMPOTENCY_TTL"), "24h"),

		RateLimitWindow: parseDuration(k.String("RATE_LIMIT_WINDOW"), "1m"),
		RateLimitMax:    parseInt(k.String("RATE_LIMIT_MAX"), 30),

		LogFormat: valueOrDefault(k.String("LOG_FORMAT"), "json"),
		LogLevel:  valueOrDefault(k.String("LOG_LEVEL"), "info"),

		TracingEnabled:  parseBool(k.String("TRACING_ENABLED")),
		TracingEndpoint: strings.TrimSpace(k.String("TRACING_ENDPOINT")),
		TracingSampling: parseFloat(k.String("TRACING_SAMPLING"), 1.0),

		MetricsBucketsCSV: k.String("METRICS_BUCKETS_MS"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.ProcessorFeeRate < 0 || cfg.ProcessorFeeRate >= 1 {
		return nil, errors.New("PROCESSOR_FEE_RATE must be a fraction in [0, 1)")
	}
	if cfg.FounderSharePct < 0 || cfg.FounderSharePct > 1 {
		return nil, errors.New("FOUNDER_SHARE_PCT must be a fraction in [0, 1]")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseInt(value string, fallback int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseFloat(value string, fallback float64) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
