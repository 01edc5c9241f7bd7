package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Admin credentials
	Admin AdminConfig

	// Media upload configuration
	Media MediaConfig

	// Statistics view configuration
	Stats StatsConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CookieName      string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver       string // "postgres" or "sqlite3"
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	SQLitePath   string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// AdminConfig holds the shared admin credentials
type AdminConfig struct {
	User     string
	Password string
}

// MediaConfig holds static file and upload settings
type MediaConfig struct {
	StaticDir     string
	Root          string
	MaxUploadSize int64 // in bytes
}

// StatsConfig holds the defaults of the admin statistics view
type StatsConfig struct {
	Days       int
	TopMessage int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// env maps config keys to the environment variables that override them
var env = map[string]string{
	"server.port":             "PORT",
	"server.read_timeout":     "SERVER_READ_TIMEOUT",
	"server.write_timeout":    "SERVER_WRITE_TIMEOUT",
	"server.shutdown_timeout": "SERVER_SHUTDOWN_TIMEOUT",
	"server.cookie_name":      "SESSION_COOKIE_NAME",
	"database.driver":         "DB_DRIVER",
	"database.host":           "DB_HOST",
	"database.port":           "DB_PORT",
	"database.user":           "DB_USER",
	"database.password":       "DB_PASSWORD",
	"database.name":           "DB_NAME",
	"database.sslmode":        "DB_SSLMODE",
	"database.sqlite_path":    "DB_SQLITE_PATH",
	"database.max_open_conns": "DB_MAX_OPEN_CONNS",
	"database.max_idle_conns": "DB_MAX_IDLE_CONNS",
	"database.max_lifetime":   "DB_MAX_LIFETIME",
	"admin.user":              "ADMIN_USER",
	"admin.password":          "ADMIN_PASSWORD",
	"media.static_dir":        "STATIC_DIR",
	"media.root":              "MEDIA_ROOT",
	"media.max_upload_size":   "MAX_UPLOAD_SIZE",
	"stats.days":              "STATS_DAYS",
	"stats.top_messages":      "STATS_TOP_MESSAGES",
	"log.level":               "LOG_LEVEL",
	"log.format":              "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.cookie_name", "blog_session")

	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "blog")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.sqlite_path", "./data/blog.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_lifetime", 5*time.Minute)

	v.SetDefault("media.static_dir", "./static")
	v.SetDefault("media.root", "./static/media")
	v.SetDefault("media.max_upload_size", 64*1024*1024) // 64MB

	v.SetDefault("stats.days", 3)
	v.SetDefault("stats.top_messages", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads configuration from defaults, an optional config file and
// environment variables, in increasing order of precedence
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, name := range env {
		if err := v.BindEnv(key, name); err != nil {
			return nil, fmt.Errorf("bind %s: %w", name, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("server.port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
			CookieName:      v.GetString("server.cookie_name"),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(v.GetString("database.driver")),
			Host:         v.GetString("database.host"),
			Port:         v.GetString("database.port"),
			User:         v.GetString("database.user"),
			Password:     v.GetString("database.password"),
			Name:         v.GetString("database.name"),
			SSLMode:      v.GetString("database.sslmode"),
			SQLitePath:   v.GetString("database.sqlite_path"),
			MaxOpenConns: v.GetInt("database.max_open_conns"),
			MaxIdleConns: v.GetInt("database.max_idle_conns"),
			MaxLifetime:  v.GetDuration("database.max_lifetime"),
		},
		Admin: AdminConfig{
			User:     v.GetString("admin.user"),
			Password: v.GetString("admin.password"),
		},
		Media: MediaConfig{
			StaticDir:     v.GetString("media.static_dir"),
			Root:          v.GetString("media.root"),
			MaxUploadSize: v.GetInt64("media.max_upload_size"),
		},
		Stats: StatsConfig{
			Days:       v.GetInt("stats.days"),
			TopMessage: v.GetInt("stats.top_messages"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	case "sqlite3":
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("DB_SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be one of: postgres, sqlite3")
	}
	if c.Media.Root == "" {
		return fmt.Errorf("MEDIA_ROOT is required")
	}
	if c.Stats.Days <= 0 {
		return fmt.Errorf("STATS_DAYS must be positive")
	}
	return nil
}

// AdminConfigured reports whether login is possible at all
func (c *AdminConfig) AdminConfigured() bool {
	return c.User != "" && c.Password != ""
}

// GetDSN returns the connection string for the configured driver
func (c *DatabaseConfig) GetDSN() string {
	if c.Driver == "sqlite3" {
		return fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", c.SQLitePath)
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}
