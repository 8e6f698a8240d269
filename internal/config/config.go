package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	App         AppConfig
	Aggregation AggregationConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// RosterTTLSeconds bounds how stale the cached roster may get before a
	// re-fetch; mutations invalidate it immediately.
	RosterTTLSeconds int
}

// JWTConfig holds token verification configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AggregationConfig is the attendance policy surface: break deduction,
// lateness thresholds and the fixed business timezone.
type AggregationConfig struct {
	MandatoryBreakMinutes    int
	BreakExemptEmployeeCodes []string
	LateToleranceMinutes     int
	FallbackStartClock       string // per-event fallback block start, "08:00"
	MorningLateThreshold     string // "08:11"
	AfternoonLateThreshold   string // "14:40"
	TimezoneOffsetMinutes    int    // -420 = UTC-7, no DST
	FetchPageSize            int
}

func Load() (*Config, error) {
	// Optional in deployed environments; required vars are validated below.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timeqr"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	rosterTTL, err := strconv.Atoi(getEnv("ROSTER_CACHE_TTL_SECONDS", "300"))
	if err != nil {
		return nil, fmt.Errorf("invalid ROSTER_CACHE_TTL_SECONDS: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:             getEnv("REDIS_ADDR", "localhost:6379"),
		Password:         getEnv("REDIS_PASSWORD", ""),
		DB:               redisDB,
		RosterTTLSeconds: rosterTTL,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Aggregation policy
	breakMinutes, err := strconv.Atoi(getEnv("MANDATORY_BREAK_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid MANDATORY_BREAK_MINUTES: %w", err)
	}

	tolerance, err := strconv.Atoi(getEnv("LATE_TOLERANCE_MINUTES", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid LATE_TOLERANCE_MINUTES: %w", err)
	}

	tzOffset, err := strconv.Atoi(getEnv("TIMEZONE_OFFSET_MINUTES", "-420"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE_OFFSET_MINUTES: %w", err)
	}

	pageSize, err := strconv.Atoi(getEnv("FETCH_PAGE_SIZE", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_PAGE_SIZE: %w", err)
	}

	config.Aggregation = AggregationConfig{
		MandatoryBreakMinutes:    breakMinutes,
		BreakExemptEmployeeCodes: getEnvSlice("BREAK_EXEMPT_EMPLOYEE_CODES"),
		LateToleranceMinutes:     tolerance,
		FallbackStartClock:       getEnv("FALLBACK_START_CLOCK", "08:00"),
		MorningLateThreshold:     getEnv("MORNING_LATE_THRESHOLD", "08:11"),
		AfternoonLateThreshold:   getEnv("AFTERNOON_LATE_THRESHOLD", "14:40"),
		TimezoneOffsetMinutes:    tzOffset,
		FetchPageSize:            pageSize,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Aggregation.MandatoryBreakMinutes < 0 {
		return fmt.Errorf("MANDATORY_BREAK_MINUTES must not be negative")
	}
	if c.Aggregation.FetchPageSize <= 0 {
		return fmt.Errorf("FETCH_PAGE_SIZE must be positive")
	}
	for _, clock := range []string{
		c.Aggregation.FallbackStartClock,
		c.Aggregation.MorningLateThreshold,
		c.Aggregation.AfternoonLateThreshold,
	} {
		if !isValidClock(clock) {
			return fmt.Errorf("invalid clock value %q, expected HH:MM", clock)
		}
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func isValidClock(clock string) bool {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return false
	}
	return true
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
