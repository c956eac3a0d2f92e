// # internal/engine/graph/graph_test.go
package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_BackfillClosesDanglingNames(t *testing.T) {
	g := New()
	g.AddReference("pkgA/Button", "app/src/App.tsx")
	g.AddRemoteImport("pkgA/Button", "pkgA/Icon")

	g.Backfill()

	assert.Equal(t, []string{"pkgA/Button", "app/src/App.tsx", "pkgA/Icon"}, g.Keys())
	for _, name := range []string{"app/src/App.tsx", "pkgA/Icon"} {
		n, ok := g.Node(name)
		require.True(t, ok, name)
		assert.Empty(t, n.References)
		assert.Empty(t, n.RemoteImports)
	}
	assertClosed(t, g)
}

func TestGraph_KeepsDuplicatesAndOrder(t *testing.T) {
	g := New()
	g.AddReference("m", "b")
	g.AddReference("m", "a")
	g.AddReference("m", "b")

	n, ok := g.Node("m")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a", "b"}, n.References)
	assert.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, 1, g.Len())
}

func TestGraph_MarshalJSONPreservesKeyOrder(t *testing.T) {
	g := New()
	g.AddReference("z/Mod", "a/file.ts")
	g.Backfill()

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.Equal(t,
		`{"z/Mod":{"references":["a/file.ts"],"remoteImports":[]},"a/file.ts":{"references":[],"remoteImports":[]}}`,
		string(data))

	empty, err := json.Marshal(New())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(empty))
}

func assertClosed(t *testing.T, g *Graph) {
	t.Helper()
	for _, key := range g.Keys() {
		n, _ := g.Node(key)
		for _, name := range append(append([]string{}, n.References...), n.RemoteImports...) {
			_, ok := g.Node(name)
			assert.True(t, ok, "dangling name %q under %q", name, key)
		}
	}
}
