package config

import (
	"os"
	"strconv"
	"strings"
)

// GetAllSettings returns a map of all dynamic settings currently loaded in memory.
func GetAllSettings() map[string]any {
	if Global == nil {
		return map[string]any{}
	}
	return map[string]any{
		"presence_stale_timeout_ms":      Global.Presence.StaleTimeoutMs,
		"presence_max_age_multiplier":    Global.Presence.MaxAgeMultiplier,
		"presence_gc_interval_mins":      Global.Presence.GCIntervalMins,
		"presence_gc_max_age_multiplier": Global.Presence.GCMaxAgeMultiplier,
		"typing_ttl_ms":                  Global.Typing.TTLMs,
		"app_debug":                      Global.App.Debug,
		"app_version":                    Global.App.Version,
	}
}

// Helpers
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		vLower := strings.ToLower(v)
		return vLower == "1" || vLower == "true" || vLower == "yes" || vLower == "on"
	}
	return fallback
}
