package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.Ledger.Backend)
	assert.Equal(t, "USD", cfg.Ledger.Currency)
	assert.True(t, cfg.Ledger.ReconcileOnStart)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "Memory")
	t.Setenv("LEDGER_CURRENCY", "eur")
	t.Setenv("RECONCILE_ON_START", "false")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Ledger.Backend)
	assert.Equal(t, "EUR", cfg.Ledger.Currency)
	assert.False(t, cfg.Ledger.ReconcileOnStart)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_BackendInvalido(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "sqlite")
	_, err := Load()
	assert.ErrorContains(t, err, "LEDGER_BACKEND")
}

func TestLoad_TTLNoPositivo(t *testing.T) {
	t.Setenv("SNAPSHOT_CACHE_TTL_SECONDS", "0")
	_, err := Load()
	assert.ErrorContains(t, err, "SNAPSHOT_CACHE_TTL_SECONDS")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss word", DBName: "ledger", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/ledger?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
