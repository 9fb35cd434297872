package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:                "development",
		WorkerPoolSize:     3,
		DatabaseURL:        "postgres://localhost/jerosmotos",
		JWTSecret:          "secreto",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		Timezone:           "America/Bogota",
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 8, cfg.JWTExpirationHours)
	assert.Equal(t, "/tmp/jerosmotos/recibos", cfg.PDFStoragePath)
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_ProductionRejectsDevSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.JWTSecret = devJWTSecret
	assert.Error(t, cfg.Validate())

	cfg.Env = "development"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	cfg.WorkerPoolSize = 0
	cfg.Timezone = "Mars/Olympus"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "WORKER_POOL_SIZE")
	assert.Contains(t, err.Error(), "TIMEZONE")
}

func TestLocation(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "America/Bogota", cfg.Location().String())

	cfg.Timezone = "nope"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSOrigins: " http://a.test, ,http://b.test "}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}
