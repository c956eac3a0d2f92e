package config

import (
	"time"
)

const (
	DefaultRegistryBaseURL = "https://federation-manager.dsolver.ca/api"
	DefaultConfigPath      = "./fedmap.toml"
)

type Config struct {
	Version       int           `toml:"version"`
	Registry      Registry      `toml:"registry"`
	Scan          Scan          `toml:"scan"`
	Output        Output        `toml:"output"`
	Watch         Watch         `toml:"watch"`
	History       History       `toml:"history"`
	Observability Observability `toml:"observability"`
}

type Registry struct {
	BaseURL   string        `toml:"base_url"`
	Timeout   time.Duration `toml:"timeout"`
	RateLimit float64       `toml:"rate_limit"` // requests per second, 0 = unlimited
	Burst     int           `toml:"burst"`
}

type Scan struct {
	Extensions   []string `toml:"extensions"`
	ExcludeDirs  []string `toml:"exclude_dirs"`
	ExcludeFiles []string `toml:"exclude_files"`
}

type Output struct {
	Format  string `toml:"format"` // text or json
	Diagram *bool  `toml:"diagram"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type Observability struct {
	Enabled       bool   `toml:"enabled"`
	Port          int    `toml:"port"`
	OTLPEndpoint  string `toml:"otlp_endpoint"`
	EnableTracing bool   `toml:"enable_tracing"`
}

// DiagramEnabled reports whether the PlantUML diagram is emitted; unset means yes.
func (o Output) DiagramEnabled() bool {
	if o.Diagram == nil {
		return true
	}
	return *o.Diagram
}

// DefaultConfig returns a configuration with every default applied, used when
// no config file exists at the default path.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	normalize(cfg)
	return cfg
}
