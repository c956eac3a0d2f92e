package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gobwas/glob"
)

var supportedExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
}

// Validate checks a fully defaulted configuration.
func Validate(cfg *Config) error {
	if err := validateVersion(cfg); err != nil {
		return err
	}
	if err := validateRegistry(cfg); err != nil {
		return err
	}
	if err := validateScan(cfg); err != nil {
		return err
	}
	if err := validateOutput(cfg); err != nil {
		return err
	}
	if err := validateHistory(cfg); err != nil {
		return err
	}
	return validateObservability(cfg)
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateRegistry(cfg *Config) error {
	u, err := url.Parse(cfg.Registry.BaseURL)
	if err != nil {
		return fmt.Errorf("registry.base_url is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("registry.base_url must use http or https, got %q", cfg.Registry.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("registry.base_url must include a host")
	}
	if cfg.Registry.RateLimit < 0 {
		return fmt.Errorf("registry.rate_limit must be >= 0")
	}
	return nil
}

func validateScan(cfg *Config) error {
	for i, ext := range cfg.Scan.Extensions {
		if ext == "" {
			return fmt.Errorf("scan.extensions[%d] must not be empty", i)
		}
		if !supportedExtensions[ext] {
			return fmt.Errorf("scan.extensions[%d]: %q is not a TypeScript extension", i, ext)
		}
	}
	for _, p := range cfg.Scan.ExcludeDirs {
		if _, err := glob.Compile(p); err != nil {
			return fmt.Errorf("invalid scan.exclude_dirs pattern %q: %w", p, err)
		}
	}
	for _, p := range cfg.Scan.ExcludeFiles {
		if _, err := glob.Compile(p); err != nil {
			return fmt.Errorf("invalid scan.exclude_files pattern %q: %w", p, err)
		}
	}
	return nil
}

func validateOutput(cfg *Config) error {
	switch cfg.Output.Format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("output.format must be one of: text, json")
	}
}

func validateHistory(cfg *Config) error {
	if cfg.History.Enabled && strings.TrimSpace(cfg.History.Path) == "" {
		return fmt.Errorf("history.path must not be empty when history.enabled=true")
	}
	return nil
}

func validateObservability(cfg *Config) error {
	if cfg.Observability.Port < 1 || cfg.Observability.Port > 65535 {
		return fmt.Errorf("observability.port must be between 1 and 65535")
	}
	if cfg.Observability.EnableTracing && cfg.Observability.OTLPEndpoint == "" {
		return fmt.Errorf("observability.otlp_endpoint is required when enable_tracing=true")
	}
	return nil
}
