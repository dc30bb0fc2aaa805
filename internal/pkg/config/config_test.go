package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:4000", cfg.ListenAddr())
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TokenTTL)
	assert.Equal(t, 120, cfg.RateLimitMax)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("APP_ENV", "dev")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/payplan.db")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_PORT", "6380")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.ListenAddr())
	assert.True(t, cfg.IsDev())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/payplan.db", cfg.Database.Path)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 6380, cfg.Cache.Port)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	_, err := Load()
	assert.Error(t, err)
}

func TestDSNs(t *testing.T) {
	d := Database{User: "u", Password: "p", Host: "db", Port: "3306", Name: "payplan"}
	assert.Equal(t, "u:p@tcp(db:3306)/payplan?charset=utf8mb4&parseTime=True&loc=UTC", d.MySQLDSN())
	assert.Equal(t, "mysql://u:p@tcp(db:3306)/payplan?multiStatements=true", d.MigrateURL())
}
