package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	todoerrors "github.com/randalmurphal/todos/internal/errors"
)

// LoadOptions carries the runtime inputs that sit above files and env vars.
type LoadOptions struct {
	// ConfigFile is an explicit --config path. Empty means discover.
	ConfigFile string
	// EnvFile is the .env file to read. Empty means ".env"; a missing file is fine.
	EnvFile string
	// Driver and DSN are the --db-driver and --dsn flags.
	Driver string
	DSN    string
}

// Load loads configuration with source tracking.
// Load order (later sources override earlier):
//  1. Built-in defaults
//  2. Config file (--config, else .todos/config.yaml, else ~/.todos/config.yaml)
//  3. .env file (only variables not already in the environment)
//  4. Environment variables (TODOS_*)
//  5. Flags (--db-driver, --dsn)
func Load(opts LoadOptions) (*TrackedConfig, error) {
	tc := NewTrackedConfig()

	path := opts.ConfigFile
	if path == "" {
		path = FindConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, todoerrors.ErrConfigInvalid(path, err)
	}
	if path != "" {
		if err := mergeFromFile(tc, path); err != nil {
			return nil, todoerrors.ErrConfigInvalid(path, err)
		}
		tc.File = path
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := loadDotEnv(envFile)
	if err != nil {
		return nil, todoerrors.ErrConfigInvalid(envFile, err)
	}

	ApplyEnvVars(tc, dotenv)

	if opts.Driver != "" {
		tc.Config.Database.Driver = opts.Driver
		tc.SetSource("database.driver", SourceFlag)
	}
	if opts.DSN != "" {
		tc.Config.Database.DSN = opts.DSN
		tc.SetSource("database.dsn", SourceFlag)
	}

	if err := tc.Config.Validate(); err != nil {
		return nil, todoerrors.ErrConfigInvalid(tc.File, err)
	}

	return tc, nil
}

// FindConfigFile looks for config.yaml in .todos/ and then ~/.todos/.
// Returns "" when neither exists.
func FindConfigFile() string {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(TodosDir)
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, TodosDir))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return ""
		}
		// Found but unreadable; mergeFromFile reports the details.
	}
	return v.ConfigFileUsed()
}

// mergeFromFile merges configuration from a file into tc.
func mergeFromFile(tc *TrackedConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	// Parse into a map to track which fields are set
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	// Decoding onto the current config only touches keys present in the file.
	if err := yaml.Unmarshal(data, tc.Config); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	for _, key := range leafPaths(raw, "") {
		if _, err := tc.Config.GetValue(key); err != nil {
			slog.Warn("unknown config key", "path", path, "key", key)
			continue
		}
		tc.SetSourceWithPath(key, SourceFile, path)
	}
	return nil
}

func leafPaths(m map[string]any, prefix string) []string {
	var out []string
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			out = append(out, leafPaths(nested, key)...)
			continue
		}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// loadDotEnv exports variables from a .env file that are not already set,
// returning the ones it exported.
func loadDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	exported := make(map[string]string)
	for k, v := range values {
		if os.Getenv(k) != "" {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return nil, fmt.Errorf("set %s: %w", k, err)
		}
		exported[k] = v
	}
	return exported, nil
}
