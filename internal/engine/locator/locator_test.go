package locator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fedmap/internal/engine/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLocatePackagesPrefersEarliestIndex(t *testing.T) {
	subdirs := []string{"my-app", "app"}
	res := LocatePackages(subdirs, []string{"app"}, "/ws")

	require.Len(t, res.Dirs, 1)
	assert.Equal(t, "app", res.Dirs[0].Package)
	assert.Equal(t, "/ws/app", res.Dirs[0].Directory)
	assert.Empty(t, res.Missing)
}

func TestLocatePackagesTieKeepsListingOrder(t *testing.T) {
	res := LocatePackages([]string{"ui-kit", "ui-lib"}, []string{"ui"}, "/ws")

	dir, ok := res.Directory("ui")
	require.True(t, ok)
	assert.Equal(t, "/ws/ui-kit", dir)
}

func TestLocatePackagesMissing(t *testing.T) {
	res := LocatePackages([]string{"app"}, []string{"app", "cart"}, "/ws")

	assert.Len(t, res.Dirs, 1)
	assert.Equal(t, []string{"cart"}, res.Missing)
	_, ok := res.Directory("cart")
	assert.False(t, ok)
}

func TestListSubdirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "ui"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "app"), 0o755))
	writeFile(t, root, "README.md", "x")

	dirs, err := ListSubdirectories(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"app", "ui"}, dirs)

	_, err = ListSubdirectories(filepath.Join(root, "missing"))
	assert.Error(t, err)
}

func TestResolveExposedFiles(t *testing.T) {
	root := t.TempDir()
	button := writeFile(t, root, "packages/ui/src/Button.tsx", "export {}")
	writeFile(t, root, "node_modules/ui/src/Card.tsx", "export {}")
	writeFile(t, root, "myui/src/Button.tsx", "export {}")

	catalog := &registry.Catalog{Modules: []registry.ExposedModule{
		{Package: "ui", ModuleName: "ui/Button", Path: "./src/Button.tsx"},
		{Package: "ui", ModuleName: "ui/Card", Path: "src/Card.tsx"},
	}}

	files, err := ResolveExposedFiles(context.Background(), root, catalog, []string{"node_modules"})
	require.NoError(t, err)

	want := NormalizePath(button)
	assert.Equal(t, map[string]bool{want: true}, files)
	assert.Equal(t, want, catalog.Modules[0].File)
	assert.Equal(t, "Button.tsx", catalog.Modules[0].FileName)
	assert.False(t, catalog.Modules[1].Resolved())
}

func TestResolveExposedFilesCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ui/src/Button.tsx", "")
	catalog := &registry.Catalog{Modules: []registry.ExposedModule{
		{Package: "ui", ModuleName: "ui/Button", Path: "src/Button.tsx"},
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ResolveExposedFiles(ctx, root, catalog, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanSourceFiles(t *testing.T) {
	root := t.TempDir()
	a := writeFile(t, root, "app/src/App.tsx", "")
	b := writeFile(t, root, "app/src/util.TS", "")
	writeFile(t, root, "app/src/App.test.tsx", "")
	writeFile(t, root, "app/src/style.css", "")
	writeFile(t, root, "node_modules/lib/index.ts", "")

	files, err := ScanSourceFiles(context.Background(), root, ScanOptions{
		Extensions:   []string{".ts", ".tsx"},
		ExcludeDirs:  []string{"node_modules"},
		ExcludeFiles: []string{"*.test.tsx"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{NormalizePath(a), NormalizePath(b)}, files)
}
