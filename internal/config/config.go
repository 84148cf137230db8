package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/yukikurage/task-approval-api/internal/constants"
)

type Config struct {
	Port          string
	GinMode       string
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPath        string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	SessionSecret string
	JWTSecret     string
	JWTExpiresIn  time.Duration
	OpenAIAPIKey  string
	LogLevel      string
	LogFormat     string

	CreateTaskRateLimit  int
	CreateTaskRateWindow time.Duration
}

// Load reads configuration from the environment, loading a .env file first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "taskuser"),
		DBPassword:    getEnv("DB_PASSWORD", "taskpassword"),
		DBName:        getEnv("DB_NAME", "task_approval"),
		DBPath:        getEnv("DB_PATH", "data/tasks.db"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		JWTSecret:     getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTExpiresIn:  getEnvAsDuration("JWT_EXPIRES_IN", constants.DefaultTokenExpiry),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),

		CreateTaskRateLimit:  getEnvAsInt("CREATE_TASK_RATE_LIMIT", constants.DefaultCreateTaskRateLimit),
		CreateTaskRateWindow: getEnvAsDuration("CREATE_TASK_RATE_WINDOW", constants.DefaultCreateTaskRateWindow),
	}
}

// RedisAddr returns host:port of the Redis server, or "" when Redis is disabled.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	// Accept "15m", "24h" style durations
	if duration, err := time.ParseDuration(valueStr); err == nil && duration > 0 {
		return duration
	}

	return defaultValue
}
