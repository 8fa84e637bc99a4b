package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	// MigrationsPath is the golang-migrate source URL.
	MigrationsPath string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Analytics
	AlertDefaultThreshold float64
	AlertConcurrency      int
	ForecastHistoryMonths int
	TrendHistoryMonths    int
	TransactionQueryLimit int

	// Export rate limiting, per user
	ExportRatePerMinute int
	ExportBurst         int

	// SchedulerAPIKey authenticates the alert sweep job. Empty disables the sweep endpoint.
	SchedulerAPIKey string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "budgetlens"),
		DBPassword: getEnv("DB_PASSWORD", "budgetlens"),
		DBName:     getEnv("DB_NAME", "budgetlens"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		AlertDefaultThreshold: getEnvFloat("ALERT_DEFAULT_THRESHOLD", 80),
		AlertConcurrency:      getEnvInt("ALERT_CONCURRENCY", 4),
		ForecastHistoryMonths: getEnvInt("FORECAST_HISTORY_MONTHS", 6),
		TrendHistoryMonths:    getEnvInt("TREND_HISTORY_MONTHS", 6),
		TransactionQueryLimit: getEnvInt("TRANSACTION_QUERY_LIMIT", 10000),

		ExportRatePerMinute: getEnvInt("EXPORT_RATE_PER_MINUTE", 20),
		ExportBurst:         getEnvInt("EXPORT_BURST", 5),

		SchedulerAPIKey: os.Getenv("SCHEDULER_API_KEY"),
	}

	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// DSN returns the PostgreSQL URL used by golang-migrate.
func (c *Config) DSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort +
		"/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getEnvFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %g\n", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
