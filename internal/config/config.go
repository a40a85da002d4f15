package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Security
	JWTSecret string

	// Application
	AppEnv   string
	AppPort  string
	LogLevel string

	// Rate Limiting
	RateLimitPerUser int
	RateLimitPerIP   int

	// Debate lifecycle
	ActiveDebateSeconds int
	VotingWindowSeconds int

	// Toxicity screening
	PerspectiveAPIKey string
	ToxicityThreshold float64
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "debatearena"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "debatearena_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET_KEY", ""),

		AppEnv:   getEnv("APP_ENV", "development"),
		AppPort:  getEnv("APP_PORT", "5050"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		RateLimitPerUser: getEnvInt("RATE_LIMIT_PER_USER", 60),
		RateLimitPerIP:   getEnvInt("RATE_LIMIT_PER_IP", 200),

		ActiveDebateSeconds: getEnvInt("ACTIVE_DEBATE_SECONDS", 60),
		VotingWindowSeconds: getEnvInt("VOTING_WINDOW_SECONDS", 60),

		PerspectiveAPIKey: getEnv("PERSPECTIVE_API_KEY", ""),
		ToxicityThreshold: getEnvFloat("TOXICITY_THRESHOLD", 0.8),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters")
	}
	if c.ActiveDebateSeconds <= 0 {
		return fmt.Errorf("ACTIVE_DEBATE_SECONDS must be positive")
	}
	if c.VotingWindowSeconds <= 0 {
		return fmt.Errorf("VOTING_WINDOW_SECONDS must be positive")
	}
	if c.ToxicityThreshold <= 0 || c.ToxicityThreshold > 1 {
		return fmt.Errorf("TOXICITY_THRESHOLD must be in (0, 1]")
	}
	return nil
}

func (c *Config) ValidateProductionSecurity() error {
	if c.AppEnv != "production" {
		return nil
	}

	if c.DBSSLMode != "require" {
		return fmt.Errorf("DB_SSLMODE must be 'require' in production")
	}
	if c.JWTSecret == "your_jwt_secret_minimum_32_chars_here_change_this" {
		return fmt.Errorf("JWT_SECRET_KEY must be changed from default in production")
	}
	if c.PerspectiveAPIKey == "" {
		return fmt.Errorf("PERSPECTIVE_API_KEY must be set in production")
	}

	return nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// GetActiveDuration is how long a matched debate accepts messages.
func (c *Config) GetActiveDuration() time.Duration {
	return time.Duration(c.ActiveDebateSeconds) * time.Second
}

// GetVotingWindow is how long after endTime a completed debate accepts votes.
func (c *Config) GetVotingWindow() time.Duration {
	return time.Duration(c.VotingWindowSeconds) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
