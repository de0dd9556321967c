package config

import (
	"log/slog"
	"os"
	"sort"
)

// EnvVarMapping defines the mapping between environment variables and config paths.
var EnvVarMapping = map[string]string{
	// Database settings
	"TODOS_DB_DRIVER":       "database.driver",
	"TODOS_DSN":             "database.dsn",
	"TODOS_DB_AUTO_MIGRATE": "database.auto_migrate",
	"TODOS_DB_PATH":         "database.sqlite.path",
	"TODOS_DB_HOST":         "database.postgres.host",
	"TODOS_DB_PORT":         "database.postgres.port",
	"TODOS_DB_NAME":         "database.postgres.database",
	"TODOS_DB_USER":         "database.postgres.user",
	"TODOS_DB_PASSWORD":     "database.postgres.password",
	"TODOS_DB_SSL_MODE":     "database.postgres.ssl_mode",
	"TODOS_MYSQL_HOST":      "database.mysql.host",
	"TODOS_MYSQL_PORT":      "database.mysql.port",
	"TODOS_MYSQL_NAME":      "database.mysql.database",
	"TODOS_MYSQL_USER":      "database.mysql.user",
	"TODOS_MYSQL_PASSWORD":  "database.mysql.password",
	// Logging
	"TODOS_LOG_LEVEL":  "log.level",
	"TODOS_LOG_FORMAT": "log.format",
	"TODOS_LOG_FILE":   "log.file",
}

// ApplyEnvVars applies environment variable overrides to a TrackedConfig.
// Variables that came from a .env file are recorded as SourceDotEnv.
// Returns the list of paths that were overridden.
func ApplyEnvVars(tc *TrackedConfig, dotenv map[string]string) []string {
	names := make([]string, 0, len(EnvVarMapping))
	for name := range EnvVarMapping {
		names = append(names, name)
	}
	sort.Strings(names)

	var overridden []string
	for _, envVar := range names {
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		configPath := EnvVarMapping[envVar]
		if err := tc.Config.SetValue(configPath, value); err != nil {
			slog.Warn("ignoring environment variable", "var", envVar, "error", err)
			continue
		}

		if v, ok := dotenv[envVar]; ok && v == value {
			tc.SetSource(configPath, SourceDotEnv)
		} else {
			tc.SetSource(configPath, SourceEnv)
		}
		overridden = append(overridden, configPath)
	}

	return overridden
}
