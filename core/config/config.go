package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App      AppConfig
	Paths    PathsConfig
	Database DatabaseConfig
	Presence PresenceConfig
	Typing   TypingConfig
}

type AppConfig struct {
	Version            string
	Port               string
	Debug              bool
	Environment        string
	BasicAuth          []string
	BasePath           string
	TrustedProxies     []string
	BaseUrl            string
	CorsAllowedOrigins []string
	ServerID           string
}

type PathsConfig struct {
	Storages string
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string // File path for SQLite, DB Name for Postgres
	ValkeyEnabled   bool
	ValkeyAddress   string
	ValkeyPassword  string
	ValkeyDB        int
	ValkeyKeyPrefix string
}

type PresenceConfig struct {
	// StaleTimeoutMs is the lastSeen fallback window used when a user has
	// no live heartbeat session in the room.
	StaleTimeoutMs int64
	// MaxAgeMultiplier marks a heartbeat stale once
	// now - last_heartbeat > multiplier * interval.
	MaxAgeMultiplier int
	// GCIntervalMins drives the background sweeper cadence.
	GCIntervalMins int
	// GCMaxAgeMultiplier is the grace multiple after which stale heartbeat
	// rows are deleted. Read-time staleness never depends on the sweeper.
	GCMaxAgeMultiplier int
}

type TypingConfig struct {
	TTLMs int64
}

// Global provides access to the loaded configuration globally (Migration Helper)
var Global *Config

// LoadConfig loads configuration from Environment Variables or defaults.
func LoadConfig() (*Config, error) {
	baseDir := getEnv("APP_BASE_DIR", "storages")

	debug := false
	if v := os.Getenv("APP_DEBUG"); v == "true" || v == "1" || v == "on" {
		debug = true
	} else if v := os.Getenv("DEBUG"); v == "true" || v == "1" {
		debug = true
	}

	var basicAuth []string
	if v := os.Getenv("APP_BASIC_AUTH"); v != "" {
		basicAuth = strings.Split(v, ",")
	}

	corsOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if v := os.Getenv("APP_CORS_ALLOWED_ORIGINS"); v != "" {
		corsOrigins = strings.Split(v, ",")
	}

	appCfg := AppConfig{
		Version:            "v1.2.0",
		Port:               getEnv("APP_PORT", "3000"),
		Debug:              debug,
		Environment:        getEnv("APP_ENV", "development"),
		BasicAuth:          basicAuth,
		BasePath:           getEnv("APP_BASE_PATH", ""),
		BaseUrl:            getEnv("APP_BASE_URL", "http://localhost:3000"),
		CorsAllowedOrigins: corsOrigins,
		ServerID:           getEnv("SERVER_ID", ""),
	}
	if v := os.Getenv("APP_TRUSTED_PROXIES"); v != "" {
		appCfg.TrustedProxies = strings.Split(v, ",")
	}

	pathsCfg := PathsConfig{
		Storages: baseDir,
	}

	dbCfg := DatabaseConfig{
		Driver:          getEnv("DB_DRIVER", "sqlite"),
		Name:            getEnv("DB_NAME", filepath.Join(pathsCfg.Storages, "presence.db")),
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnvInt("DB_PORT", 5432),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", ""),
		ValkeyEnabled:   getEnvBool("VALKEY_ENABLED", false),
		ValkeyAddress:   getEnv("VALKEY_ADDRESS", "localhost:6379"),
		ValkeyPassword:  getEnv("VALKEY_PASSWORD", ""),
		ValkeyDB:        getEnvInt("VALKEY_DB", 0),
		ValkeyKeyPrefix: getEnv("VALKEY_KEY_PREFIX", "azpresence:"),
	}

	presenceCfg := PresenceConfig{
		StaleTimeoutMs:     getEnvInt64("PRESENCE_STALE_TIMEOUT_MS", 30000),
		MaxAgeMultiplier:   getEnvInt("PRESENCE_MAX_AGE_MULTIPLIER", 2),
		GCIntervalMins:     getEnvInt("PRESENCE_GC_INTERVAL_MINS", 1),
		GCMaxAgeMultiplier: getEnvInt("PRESENCE_GC_MAX_AGE_MULTIPLIER", 4),
	}

	typingCfg := TypingConfig{
		TTLMs: getEnvInt64("TYPING_TTL_MS", 5000),
	}

	cfg := &Config{
		App:      appCfg,
		Paths:    pathsCfg,
		Database: dbCfg,
		Presence: presenceCfg,
		Typing:   typingCfg,
	}

	Global = cfg
	return cfg, nil
}
