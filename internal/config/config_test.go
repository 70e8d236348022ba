package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "DATABASE_URL",
		"STOCKMATE_PORT", "STOCKMATE_DATABASE_URL", "STOCKMATE_STORE_DRIVER",
		"STOCKMATE_LOG_LEVEL", "STOCKMATE_CACHE_TTL", "STOCKMATE_SQLITE_PATH",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := fromViper(newViper())
	require.NoError(t, err)
	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, DriverSQLite, cfg.StoreDriver)
	require.Equal(t, "stockmate.db", cfg.SQLitePath)
	require.Equal(t, 5*time.Minute, cfg.CacheTTL)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("STOCKMATE_STORE_DRIVER", "Memory")
	t.Setenv("STOCKMATE_CACHE_TTL", "0s")
	t.Setenv("STOCKMATE_LOG_LEVEL", "debug")

	cfg, err := fromViper(newViper())
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, DriverMemory, cfg.StoreDriver)
	require.Zero(t, cfg.CacheTTL)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestPrefixedPortWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("STOCKMATE_PORT", "9090")

	cfg, err := fromViper(newViper())
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
}

func TestDriverValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("STOCKMATE_STORE_DRIVER", "postgres")

	_, err := fromViper(newViper())
	require.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://shop@localhost/stock")
	cfg, err := fromViper(newViper())
	require.NoError(t, err)
	require.Equal(t, "postgres://shop@localhost/stock", cfg.DatabaseURL)

	t.Setenv("STOCKMATE_STORE_DRIVER", "redis")
	_, err = fromViper(newViper())
	require.ErrorContains(t, err, `unknown store driver "redis"`)
}
