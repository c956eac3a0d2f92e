package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: FEDMAP_[SECTION]_[KEY] (e.g., FEDMAP_REGISTRY_BASE_URL).
func ApplyEnvOverrides(cfg *Config) {
	// Registry
	setEnvString(&cfg.Registry.BaseURL, "FEDMAP_REGISTRY_BASE_URL")
	setEnvDuration(&cfg.Registry.Timeout, "FEDMAP_REGISTRY_TIMEOUT")
	setEnvFloat64(&cfg.Registry.RateLimit, "FEDMAP_REGISTRY_RATE_LIMIT")
	setEnvInt(&cfg.Registry.Burst, "FEDMAP_REGISTRY_BURST")

	// Output
	setEnvString(&cfg.Output.Format, "FEDMAP_OUTPUT_FORMAT")

	// Watch
	setEnvDuration(&cfg.Watch.Debounce, "FEDMAP_WATCH_DEBOUNCE")

	// History
	setEnvBool(&cfg.History.Enabled, "FEDMAP_HISTORY_ENABLED")
	setEnvString(&cfg.History.Path, "FEDMAP_HISTORY_PATH")

	// Observability
	setEnvBool(&cfg.Observability.Enabled, "FEDMAP_OBSERVABILITY_ENABLED")
	setEnvInt(&cfg.Observability.Port, "FEDMAP_OBSERVABILITY_PORT")
	setEnvString(&cfg.Observability.OTLPEndpoint, "FEDMAP_OBSERVABILITY_OTLP_ENDPOINT")
	setEnvBool(&cfg.Observability.EnableTracing, "FEDMAP_OBSERVABILITY_ENABLE_TRACING")

	normalize(cfg)
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = f
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = d
		}
	}
}
