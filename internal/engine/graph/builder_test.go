package graph

import (
	"testing"

	"fedmap/internal/engine/extract"
	"fedmap/internal/engine/locator"
	"fedmap/internal/engine/registry"
	"fedmap/internal/engine/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkspaceResolver() *resolver.Resolver {
	catalog := &registry.Catalog{Modules: []registry.ExposedModule{
		{Package: "lib", ModuleName: "lib/Widget", Path: "./src/Widget.tsx", File: "/ws/lib/src/Widget.tsx", FileName: "Widget.tsx"},
		{Package: "ui", ModuleName: "ui/Button", Path: "./src/Button.tsx", File: "/ws/ui/src/Button.tsx", FileName: "Button.tsx"},
	}}
	return resolver.New(catalog, []locator.PackageDirectory{
		{Package: "app", Directory: "/ws/app"},
		{Package: "lib", Directory: "/ws/lib"},
		{Package: "ui", Directory: "/ws/ui"},
	})
}

func result(file string, imports ...string) *extract.ExtractionResult {
	return &extract.ExtractionResult{File: file, FoundImports: extract.NewOrderedSet(imports...)}
}

func TestBuilder_EndToEndScenario(t *testing.T) {
	b := NewBuilder(newWorkspaceResolver())
	b.Add(result("/ws/app/src/App.tsx", "lib/Widget"))
	g := b.Graph()

	widget, ok := g.Node("lib/Widget")
	require.True(t, ok)
	assert.Equal(t, []string{"app/src/App.tsx"}, widget.References)
	assert.Empty(t, widget.RemoteImports)

	importer, ok := g.Node("app/src/App.tsx")
	require.True(t, ok)
	assert.Empty(t, importer.References)
	assert.Empty(t, importer.RemoteImports)

	assert.Equal(t, []string{"lib/Widget", "app/src/App.tsx"}, g.Keys())
	assertClosed(t, g)
}

func TestBuilder_ExposedModuleRecordsRemoteImports(t *testing.T) {
	b := NewBuilder(newWorkspaceResolver())
	b.Add(result("/ws/lib/src/Widget.tsx", "ui/Button"))
	b.Add(result("/ws/app/src/App.tsx", "lib/Widget", "ui/Button"))
	g := b.Graph()

	button, _ := g.Node("ui/Button")
	assert.Equal(t, []string{"lib/Widget", "app/src/App.tsx"}, button.References)

	widget, _ := g.Node("lib/Widget")
	assert.Equal(t, []string{"app/src/App.tsx"}, widget.References)
	assert.Equal(t, []string{"ui/Button"}, widget.RemoteImports)

	assert.Equal(t, 3, g.EdgeCount())
	assertClosed(t, g)
}

func TestBuilder_CyclesAreKept(t *testing.T) {
	b := NewBuilder(newWorkspaceResolver())
	b.Add(result("/ws/lib/src/Widget.tsx", "ui/Button"))
	b.Add(result("/ws/ui/src/Button.tsx", "lib/Widget"))
	g := b.Graph()

	widget, _ := g.Node("lib/Widget")
	button, _ := g.Node("ui/Button")
	assert.Equal(t, []string{"ui/Button"}, widget.References)
	assert.Equal(t, []string{"lib/Widget"}, button.References)
	assert.Equal(t, []string{"lib/Widget"}, button.RemoteImports)
	assert.Equal(t, []string{"ui/Button"}, widget.RemoteImports)
}

func TestBuilder_UnresolvedImporterKeepsPath(t *testing.T) {
	b := NewBuilder(newWorkspaceResolver())
	b.AddAll([]*extract.ExtractionResult{
		result("/other/tool.ts", "lib/Widget"),
		nil,
		result("/ws/app/src/Empty.tsx"),
	})
	g := b.Graph()

	widget, _ := g.Node("lib/Widget")
	assert.Equal(t, []string{"/other/tool.ts"}, widget.References)
	assert.Equal(t, 2, g.Len())
}
