package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	DatabaseURL        string
	RedisAddr          string
	RedisPassword      string
	RedisTLS           bool
	CORSAllowedOrigins []string
	AdminJWTSecret     string

	// Intake defaults
	HomeCity string

	// Rewards configuration
	RewardDollars        int
	CansPerReward        int
	ApplianceCreditsJSON string
	ProjectionRate       float64
	ProjectionYears      int

	// Promotional signup bonus
	SignupBonusDollars  int
	SignupBonusStatus   string
	SignupBonusCurrency string

	// Access tokens
	TokenTTL time.Duration

	// Public endpoint rate limiting. Zero RPS disables it.
	RateLimitRPS   float64
	RateLimitBurst int

	// SendGrid email configuration
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	NotifyEmail       string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RedisAddr:          getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisTLS:           getEnvAsBool("REDIS_TLS", false),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),
		AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", ""),

		HomeCity: getEnv("HOME_CITY", "Auckland"),

		RewardDollars:        getEnvAsInt("REWARD_DOLLARS", 1),
		CansPerReward:        getEnvAsInt("CANS_PER_REWARD", 50),
		ApplianceCreditsJSON: getEnv("APPLIANCE_CREDITS_JSON", ""),
		ProjectionRate:       getEnvAsFloat("PROJECTION_RATE", 0.05),
		ProjectionYears:      getEnvAsInt("PROJECTION_YEARS", 10),

		SignupBonusDollars:  getEnvAsInt("SIGNUP_BONUS_DOLLARS", 5),
		SignupBonusStatus:   getEnv("SIGNUP_BONUS_STATUS", "pending"),
		SignupBonusCurrency: getEnv("SIGNUP_BONUS_CURRENCY", "NZD"),

		TokenTTL: getEnvAsDuration("TOKEN_TTL", 30*24*time.Hour),

		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 20),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "CanBack Recycling"),
		NotifyEmail:       getEnv("NOTIFY_EMAIL", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
