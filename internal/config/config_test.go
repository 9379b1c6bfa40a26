package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("BACKUP_INTERVAL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 3306, cfg.DBPort)
	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Zero(t, cfg.BackupInterval)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("BACKUP_INTERVAL", "24h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 25, cfg.DBMaxConns)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.BackupInterval)
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("ACCESS_TOKEN_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3306, cfg.DBPort)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
}

func TestDSNIncludesClientFoundRows(t *testing.T) {
	cfg := &Config{
		DBUser:     "studyhive",
		DBPassword: "secret",
		DBHost:     "db.internal",
		DBPort:     3306,
		DBName:     "studyhive",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "studyhive:secret@tcp(db.internal:3306)/studyhive")
	assert.Contains(t, dsn, "clientFoundRows=true")
	assert.Contains(t, dsn, "parseTime=True")
}
