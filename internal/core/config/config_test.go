package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fedmap.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
version = 1

[registry]
base_url = "http://localhost:8100/"
timeout = "3s"
rate_limit = 5.0
burst = 2

[scan]
extensions = ["ts", ".TSX"]
exclude_dirs = ["node_modules", "dist"]
exclude_files = ["*.d.ts"]

[output]
format = "JSON"
diagram = false

[watch]
debounce = "1s"

[history]
enabled = true
path = "state/history.db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8100", cfg.Registry.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Registry.Timeout)
	assert.Equal(t, 5.0, cfg.Registry.RateLimit)
	assert.Equal(t, 2, cfg.Registry.Burst)
	assert.Equal(t, []string{".ts", ".tsx"}, cfg.Scan.Extensions)
	assert.Equal(t, []string{"node_modules", "dist"}, cfg.Scan.ExcludeDirs)
	assert.Equal(t, []string{"*.d.ts"}, cfg.Scan.ExcludeFiles)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Output.DiagramEnabled())
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "state/history.db", cfg.History.Path)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ``))
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, DefaultRegistryBaseURL, cfg.Registry.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Registry.Timeout)
	assert.Equal(t, []string{".ts", ".tsx"}, cfg.Scan.Extensions)
	assert.Equal(t, []string{"node_modules"}, cfg.Scan.ExcludeDirs)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Output.DiagramEnabled())
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, 9464, cfg.Observability.Port)
}

func TestDefaultConfigMatchesEmptyFile(t *testing.T) {
	loaded, err := Load(writeConfig(t, ``))
	require.NoError(t, err)
	assert.Equal(t, loaded, DefaultConfig())
}

func TestLoadError(t *testing.T) {
	_, err := Load("nonexistent.toml")
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{name: "BadVersion", content: "version = 3"},
		{name: "BadScheme", content: "[registry]\nbase_url = \"ftp://example.com\""},
		{name: "MissingHost", content: "[registry]\nbase_url = \"http://\""},
		{name: "NegativeRate", content: "[registry]\nrate_limit = -1.0"},
		{name: "NonTypeScriptExtension", content: "[scan]\nextensions = [\".js\"]"},
		{name: "BadFormat", content: "[output]\nformat = \"yaml\""},
		{name: "TracingWithoutEndpoint", content: "[observability]\nenable_tracing = true"},
		{name: "BadPort", content: "[observability]\nport = 70000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("FEDMAP_REGISTRY_BASE_URL", "http://registry.internal:8100/")
	t.Setenv("FEDMAP_REGISTRY_TIMEOUT", "2s")
	t.Setenv("FEDMAP_REGISTRY_RATE_LIMIT", "not-a-number")
	t.Setenv("FEDMAP_OUTPUT_FORMAT", "JSON")
	t.Setenv("FEDMAP_HISTORY_ENABLED", "true")

	cfg := DefaultConfig()
	ApplyEnvOverrides(cfg)

	assert.Equal(t, "http://registry.internal:8100", cfg.Registry.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Registry.Timeout)
	assert.Equal(t, 0.0, cfg.Registry.RateLimit, "unparseable values are ignored")
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.History.Enabled)
	require.NoError(t, Validate(cfg))
}
