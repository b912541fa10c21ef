package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const devJWTSecret = "dev_secret_change_me"

// Database holds connection settings. DSN wins over the individual fields.
type Database struct {
	Driver     string // sqlite | postgres | mysql
	DSN        string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

type Config struct {
	Env  string
	Port string

	BodyLimitBytes  int
	RateLimitMax    int
	RateLimitWindow time.Duration

	Database Database

	JWTSecret  string
	TokenTTL   time.Duration
	SessionTTL time.Duration

	UploadDir   string
	DefaultLang string

	AdminPassword string
	UserPassword  string
}

// ImportPath is the fixed location every upload overwrites.
func (c Config) ImportPath() string {
	return filepath.Join(c.UploadDir, "material.xlsx")
}

func (c Config) ExportPath() string {
	return filepath.Join(c.UploadDir, "exported_orders.xlsx")
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func defaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("port", "5000")
	v.SetDefault("body_limit_mb", 16)
	v.SetDefault("rate_limit_max", 20)
	v.SetDefault("rate_limit_window_seconds", 60)

	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", "")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "")
	v.SetDefault("db_user", "")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "orders")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("sqlite_path", "orders.db")

	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_ttl_hours", 24)
	v.SetDefault("session_ttl_hours", 24*30)

	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("default_lang", "zh")

	v.SetDefault("admin_password", "admin123")
	v.SetDefault("user_password", "user123")
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Env:  strings.ToLower(strings.TrimSpace(v.GetString("app_env"))),
		Port: strings.TrimPrefix(strings.TrimSpace(v.GetString("port")), ":"),

		BodyLimitBytes:  v.GetInt("body_limit_mb") * 1024 * 1024,
		RateLimitMax:    v.GetInt("rate_limit_max"),
		RateLimitWindow: time.Duration(v.GetInt("rate_limit_window_seconds")) * time.Second,

		Database: Database{
			Driver:     strings.ToLower(strings.TrimSpace(v.GetString("db_driver"))),
			DSN:        v.GetString("db_dsn"),
			Host:       v.GetString("db_host"),
			Port:       v.GetString("db_port"),
			User:       v.GetString("db_user"),
			Password:   v.GetString("db_password"),
			Name:       v.GetString("db_name"),
			SSLMode:    v.GetString("db_sslmode"),
			SQLitePath: v.GetString("sqlite_path"),
		},

		JWTSecret:  v.GetString("jwt_secret"),
		TokenTTL:   time.Duration(v.GetInt("jwt_ttl_hours")) * time.Hour,
		SessionTTL: time.Duration(v.GetInt("session_ttl_hours")) * time.Hour,

		UploadDir:   v.GetString("upload_dir"),
		DefaultLang: v.GetString("default_lang"),

		AdminPassword: v.GetString("admin_password"),
		UserPassword:  v.GetString("user_password"),
	}

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		if cfg.IsProduction() {
			return Config{}, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.BodyLimitBytes <= 0 {
		return Config{}, fmt.Errorf("BODY_LIMIT_MB must be positive")
	}
	if cfg.UploadDir == "" {
		return Config{}, fmt.Errorf("UPLOAD_DIR is required")
	}
	if cfg.AdminPassword == "" || cfg.UserPassword == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD and USER_PASSWORD must not be empty")
	}
	switch cfg.DefaultLang {
	case "en", "zh":
	default:
		return Config{}, fmt.Errorf("DEFAULT_LANG must be en or zh, got %q", cfg.DefaultLang)
	}

	return cfg, nil
}
