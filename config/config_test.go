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
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, time.Second, cfg.Auth.LoginDelay)
	assert.Equal(t, 2*time.Hour, cfg.Workspace.TTL)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " * ")
	t.Setenv("LOGIN_DELAY", "0s")
	t.Setenv("WORKSPACE_TTL", "90")
	t.Setenv("REQUIRE_MFA", "true")
	t.Setenv("DEV_ROUTES", "1")
	t.Setenv("REDIS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Zero(t, cfg.Auth.LoginDelay)
	assert.Equal(t, 90*time.Second, cfg.Workspace.TTL)
	assert.True(t, cfg.Auth.RequireMFA)
	assert.True(t, cfg.Server.DevRoutes)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("JWT_EXPIRE_HOURS", "-1")
	_, err := Load()
	assert.ErrorContains(t, err, "JWT_EXPIRE_HOURS")
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{User: "u", Password: "p", Host: "db", Port: "5432", DBName: "boardflow", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/boardflow?sslmode=disable", c.DSN())

	c.URL = "postgres://elsewhere/x"
	assert.Equal(t, "postgres://elsewhere/x", c.DSN())
}
