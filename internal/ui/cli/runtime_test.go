package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	coreapp "fedmap/internal/core/app"
	"fedmap/internal/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistryServer(t *testing.T) *httptest.Server {
	t.Helper()
	bodies := map[string]string{
		"/projects/shop":   `{"packages":["lib-id","app-id"]}`,
		"/packages/lib-id": `{"name":"lib","modules":[{"name":"./Widget","path":"./src/Widget.tsx"}]}`,
		"/packages/app-id": `{"name":"app","modules":[]}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeFixture(t *testing.T, registryURL string, extra string) (root, cfgPath string) {
	t.Helper()
	root = t.TempDir()
	files := map[string]string{
		"app/src/App.tsx":    "import Widget from 'lib/Widget';\n",
		"lib/src/Widget.tsx": "export default function Widget() {}\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfgPath = filepath.Join(t.TempDir(), "fedmap.toml")
	content := fmt.Sprintf("version = 1\n\n[registry]\nbase_url = %q\n%s", registryURL, extra)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	return root, cfgPath
}

func TestRun_PrintsReportAndDiagram(t *testing.T) {
	srv := newRegistryServer(t)
	root, cfgPath := writeFixture(t, srv.URL, "")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", cfgPath, "-summary", root, "shop"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	assert.True(t, strings.HasPrefix(out, "lib/Widget\n"), out)
	assert.Contains(t, out, "[app/src/App.tsx] --> [lib/Widget]")
	assert.Contains(t, out, "@enduml")
	assert.Contains(t, stderr.String(), "fedmap: shop")
}

func TestRun_JSONWithoutDiagram(t *testing.T) {
	srv := newRegistryServer(t)
	root, cfgPath := writeFixture(t, srv.URL, "")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", cfgPath, "-format", "json", "-no-diagram", root, "shop"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var decoded map[string]map[string][]string
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
	assert.Equal(t, []string{"app/src/App.tsx"}, decoded["lib/Widget"]["references"])
}

func TestRun_RegistryFailureExitsOne(t *testing.T) {
	srv := newRegistryServer(t)
	root, cfgPath := writeFixture(t, srv.URL, "")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", cfgPath, root, "missing-project"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "failed to load registry catalog")
}

func TestRun_UsageErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"only-root"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), usageLine)

	assert.Equal(t, 2, run([]string{"-unknown-flag"}, &stdout, &stderr))
}

func TestRun_InvalidFormatIsUsageError(t *testing.T) {
	srv := newRegistryServer(t)
	root, cfgPath := writeFixture(t, srv.URL, "")

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-config", cfgPath, "-format", "yaml", root, "shop"}, &stdout, &stderr))
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"-version"}, &stdout, &stderr))
	assert.True(t, strings.HasPrefix(stdout.String(), "fedmap v"))
}

func TestRun_HistoryAndRuns(t *testing.T) {
	srv := newRegistryServer(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")
	root, cfgPath := writeFixture(t, srv.URL, fmt.Sprintf("\n[history]\npath = %q\n", dbPath))

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-config", cfgPath, "-history", root, "shop"}, &stdout, &stderr), stderr.String())
	require.Equal(t, 0, run([]string{"-config", cfgPath, "-history", root, "shop"}, &stdout, &stderr), stderr.String())

	stdout.Reset()
	require.Equal(t, 0, run([]string{"-config", cfgPath, "-runs", root, "shop"}, &stdout, &stderr), stderr.String())
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Timestamp\tRun"))
}

func TestLoadConfig_DefaultPathFallsBack(t *testing.T) {
	cfg, err := loadConfig(config.DefaultConfigPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultRegistryBaseURL, cfg.Registry.BaseURL)

	_, err = loadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestApplyOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	applyOptions(cliOptions{format: "json", noDiagram: true, runs: true}, cfg)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Output.DiagramEnabled())
	assert.True(t, cfg.History.Enabled)
}

func TestObservabilityServer_Health(t *testing.T) {
	a := coreapp.New(config.DefaultConfig(), nil)
	server := NewObservabilityServer("127.0.0.1:0", coreapp.NewHealthService(a))

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "no completed analysis")

	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, server.Start(context.Background()))
	assert.NotEqual(t, "127.0.0.1:0", server.Addr())
	require.NoError(t, server.Stop(context.Background()))
}
