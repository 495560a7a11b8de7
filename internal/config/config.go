package config

import (
	"os"
	"strconv"
	"time"

	"partner-onboarding.backend/pkg/crypto"
)

// Config holds all configuration values
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Identity   IdentityConfig
	Onboarding OnboardingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	Issuer        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// IdentityConfig holds identity provider settings
type IdentityConfig struct {
	BcryptCost int
}

// OnboardingConfig holds partner onboarding settings
type OnboardingConfig struct {
	CodeLength           int
	MinPasswordLength    int
	VerifyAttemptLimit   int
	VerifyAttemptWindow  time.Duration
	OrphanReportInterval time.Duration
	IdempotencyRetention time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "partner_onboarding"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			Issuer:        getEnv("JWT_ISSUER", "partner-onboarding"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Identity: IdentityConfig{
			BcryptCost: getEnvAsInt("IDENTITY_BCRYPT_COST", 12),
		},
		Onboarding: OnboardingConfig{
			CodeLength:           codeLength(getEnvAsInt("ONBOARDING_CODE_LENGTH", crypto.DefaultCodeLength)),
			MinPasswordLength:    getEnvAsInt("ONBOARDING_MIN_PASSWORD_LENGTH", 6),
			VerifyAttemptLimit:   getEnvAsInt("ONBOARDING_VERIFY_ATTEMPT_LIMIT", 10),
			VerifyAttemptWindow:  getEnvAsDuration("ONBOARDING_VERIFY_ATTEMPT_WINDOW", 15*time.Minute),
			OrphanReportInterval: getEnvAsDuration("ONBOARDING_ORPHAN_REPORT_INTERVAL", 10*time.Minute),
			IdempotencyRetention: getEnvAsDuration("ONBOARDING_IDEMPOTENCY_RETENTION", 24*time.Hour),
		},
	}
}

// codeLength keeps the registration code within the stored column width
func codeLength(n int) int {
	switch {
	case n < 1:
		return crypto.DefaultCodeLength
	case n > crypto.MaxCodeLength:
		return crypto.MaxCodeLength
	}
	return n
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
