package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("CREATE_TASK_RATE_LIMIT", "")

	cfg := Load()

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 5, cfg.CreateTaskRateLimit)
	assert.Equal(t, time.Minute, cfg.CreateTaskRateWindow)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("CREATE_TASK_RATE_LIMIT", "10")
	t.Setenv("CREATE_TASK_RATE_WINDOW", "30s")
	t.Setenv("GIN_MODE", "release")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 10, cfg.CreateTaskRateLimit)
	assert.Equal(t, 30*time.Second, cfg.CreateTaskRateWindow)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("CREATE_TASK_RATE_LIMIT", "abc")
	t.Setenv("JWT_EXPIRES_IN", "-5m")

	cfg := Load()

	assert.Equal(t, 5, cfg.CreateTaskRateLimit)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
}

func TestRedisAddr(t *testing.T) {
	cfg := &Config{RedisHost: "cache", RedisPort: "6380"}
	assert.Equal(t, "cache:6380", cfg.RedisAddr())

	cfg.RedisHost = ""
	assert.Empty(t, cfg.RedisAddr())
}
