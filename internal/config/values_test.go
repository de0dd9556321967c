package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_GetValue(t *testing.T) {
	cfg := Default()

	tests := []struct {
		path string
		want string
	}{
		{"database.driver", "sqlite"},
		{"database.auto_migrate", "true"},
		{"database.postgres.port", "5432"},
		{"database.mysql.port", "3306"},
		{"log.level", "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := cfg.GetValue(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_GetValue_Unknown(t *testing.T) {
	cfg := Default()

	for _, path := range []string{"nope", "database.nope", "database.driver.extra"} {
		_, err := cfg.GetValue(path)
		assert.Error(t, err, path)
	}
}

func TestConfig_SetValue(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.SetValue("database.driver", "postgres"))
	require.NoError(t, cfg.SetValue("database.postgres.port", "6543"))
	require.NoError(t, cfg.SetValue("database.auto_migrate", "no"))

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 6543, cfg.Database.Postgres.Port)
	assert.False(t, cfg.Database.AutoMigrate)
}

func TestConfig_SetValue_Invalid(t *testing.T) {
	cfg := Default()

	assert.Error(t, cfg.SetValue("database.postgres.port", "many"))
	assert.Error(t, cfg.SetValue("database.auto_migrate", "maybe"))
	assert.Error(t, cfg.SetValue("database", "x"))
	assert.Error(t, cfg.SetValue("unknown.key", "x"))
}

func TestAllConfigPaths(t *testing.T) {
	paths := AllConfigPaths()

	assert.Equal(t, "database.driver", paths[0])
	assert.Contains(t, paths, "database.sqlite.path")
	assert.Contains(t, paths, "database.postgres.ssl_mode")
	assert.Contains(t, paths, "database.mysql.password")
	assert.Contains(t, paths, "log.max_age_days")

	cfg := Default()
	for _, p := range paths {
		_, err := cfg.GetValue(p)
		assert.NoError(t, err, p)
	}
}

func TestEnvVarMapping_PathsExist(t *testing.T) {
	cfg := Default()
	for env, path := range EnvVarMapping {
		_, err := cfg.GetValue(path)
		assert.NoError(t, err, "%s -> %s", env, path)
	}
}

func TestIsSecret(t *testing.T) {
	assert.True(t, IsSecret("database.postgres.password"))
	assert.True(t, IsSecret("database.mysql.password"))
	assert.False(t, IsSecret("database.postgres.user"))
}
