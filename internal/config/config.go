// Package config provides configuration loading for todos.
package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/randalmurphal/todos/internal/db/driver"
)

const (
	// TodosDir is the per-project directory holding config and the SQLite file.
	TodosDir = ".todos"
	// ConfigFileName is the config file name inside TodosDir.
	ConfigFileName = "config.yaml"
	// DatabaseFileName is the default SQLite file name inside TodosDir.
	DatabaseFileName = "todos.db"
)

// Config represents the todos configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig selects the backend and how to reach it.
type DatabaseConfig struct {
	// Driver: sqlite (default), postgres or mysql
	Driver string `yaml:"driver"`

	// DSN overrides the per-driver settings below when set.
	DSN string `yaml:"dsn,omitempty"`

	// AutoMigrate applies the embedded schema before every command.
	AutoMigrate bool `yaml:"auto_migrate"`

	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
	MySQL    MySQLConfig    `yaml:"mysql"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"` // Use env TODOS_DB_PASSWORD
	SSLMode  string `yaml:"ssl_mode"`
}

// MySQLConfig holds MySQL-specific settings.
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"` // Use env TODOS_DB_PASSWORD
}

// LogConfig controls diagnostic logging on stderr or to a rotated file.
type LogConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // text or json
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:      string(driver.DialectSQLite),
			AutoMigrate: true,
			SQLite: SQLiteConfig{
				Path: filepath.Join(TodosDir, DatabaseFileName),
			},
			Postgres: PostgresConfig{
				Host:     "localhost",
				Port:     5432,
				Database: "todos",
				User:     "todos",
				SSLMode:  "disable",
			},
			MySQL: MySQLConfig{
				Host:     "localhost",
				Port:     3306,
				Database: "todos",
				User:     "todos",
			},
		},
		Log: LogConfig{
			Level:      "warn",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Dialect parses the configured driver name.
func (c *Config) Dialect() (driver.Dialect, error) {
	return driver.ParseDialect(c.Database.Driver)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}

	dialect, err := c.Dialect()
	if err != nil {
		return ""
	}

	switch dialect {
	case driver.DialectPostgres:
		pg := c.Database.Postgres
		u := url.URL{
			Scheme: "postgres",
			Host:   pg.Host + ":" + strconv.Itoa(pg.Port),
			Path:   "/" + pg.Database,
		}
		if pg.Password != "" {
			u.User = url.UserPassword(pg.User, pg.Password)
		} else if pg.User != "" {
			u.User = url.User(pg.User)
		}
		if pg.SSLMode != "" {
			u.RawQuery = "sslmode=" + url.QueryEscape(pg.SSLMode)
		}
		return u.String()
	case driver.DialectMySQL:
		my := c.Database.MySQL
		mc := mysql.NewConfig()
		mc.User = my.User
		mc.Passwd = my.Password
		mc.Net = "tcp"
		mc.Addr = my.Host + ":" + strconv.Itoa(my.Port)
		mc.DBName = my.Database
		mc.ParseTime = true
		return mc.FormatDSN()
	default:
		return c.Database.SQLite.Path
	}
}

// Validate checks the configuration for values no command can work with.
func (c *Config) Validate() error {
	if _, err := c.Dialect(); err != nil {
		return err
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q (expected debug, info, warn or error)", c.Log.Level)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (expected text or json)", c.Log.Format)
	}

	if c.Database.DSN == "" {
		dialect, _ := c.Dialect()
		if dialect == driver.DialectSQLite && c.Database.SQLite.Path == "" {
			return fmt.Errorf("database.sqlite.path must not be empty")
		}
	}
	return nil
}
