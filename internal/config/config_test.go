package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, "8000", cfg.Port)
	require.Equal(t, DriverPostgres, cfg.StorageDriver)
	require.Equal(t, "./migrations", cfg.MigrationsPath)
	require.Equal(t, 5, cfg.QueryDepthLimit)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", DriverMemory)
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("QUERY_DEPTH_LIMIT", "7")

	cfg := Load()

	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, DriverMemory, cfg.StorageDriver)
	require.Equal(t, "postgres://localhost/app", cfg.DatabaseURL)
	require.Equal(t, 7, cfg.QueryDepthLimit)
}

func TestLoad_IgnoresUnparsableInt(t *testing.T) {
	t.Setenv("QUERY_DEPTH_LIMIT", "not-a-number")

	require.Equal(t, 5, Load().QueryDepthLimit)
}
