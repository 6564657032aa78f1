package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Media storage (one root directory per upload category)
	ProfileUploadPath string
	StoryUploadPath   string
	PostUploadPath    string

	// Stories
	StoryTTL time.Duration

	// CORS
	CORSAllowedOrigins []string

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Pixelgram"),
		AppEnv:  envString("APP_ENV", "development"),
		Port:    envString("PORT", "9000"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/pixelgram.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 24*time.Hour),

		// Media storage
		ProfileUploadPath: envString("PROFILE_UPLOAD_PATH", "./uploads/profile"),
		StoryUploadPath:   envString("STORY_UPLOAD_PATH", "./uploads/story"),
		PostUploadPath:    envString("POST_UPLOAD_PATH", "./uploads/post"),

		// Stories
		StoryTTL: envDuration("STORY_TTL", 24*time.Hour),

		// CORS
		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	return cfg
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envList(key, def string) []string {
	v := envString(key, def)

	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
