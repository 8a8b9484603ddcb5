package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	HTTP     HTTPConfig
	Domain   DomainConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	// Storage selects the entity store backend: "postgres" or "memory".
	Storage         string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	MaxConns   int32
	AutoSchema bool
}

type HTTPConfig struct {
	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
}

type DomainConfig struct {
	FriendshipPolicy string
	TopFilmsDefault  int
}

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// LoadConfig reads .env when present and lets the process environment override it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "filmorate")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("STORAGE", StoragePostgres)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_AUTO_SCHEMA", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("FRIENDSHIP_POLICY", "confirmation")
	v.SetDefault("TOP_FILMS_DEFAULT", 10)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v.AutomaticEnv()

	return configFrom(v), nil
}

func configFrom(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			Storage:         strings.ToLower(v.GetString("STORAGE")),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			Name:       v.GetString("DB_NAME"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASS"),
			MaxConns:   v.GetInt32("DB_MAX_CONNS"),
			AutoSchema: v.GetBool("DB_AUTO_SCHEMA"),
		},
		HTTP: HTTPConfig{
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			RateLimitRequests:  v.GetInt("RATE_LIMIT_REQUESTS"),
			RateLimitWindow:    v.GetDuration("RATE_LIMIT_WINDOW"),
		},
		Domain: DomainConfig{
			FriendshipPolicy: v.GetString("FRIENDSHIP_POLICY"),
			TopFilmsDefault:  v.GetInt("TOP_FILMS_DEFAULT"),
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
