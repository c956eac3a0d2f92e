// # internal/engine/graph/graph.go
package graph

import (
	"bytes"
	"encoding/json"
)

// Node holds the edges recorded for one logical module name.
type Node struct {
	// References lists the names that import this module, in discovery order.
	References []string `json:"references"`
	// RemoteImports lists what this exposed module itself imports.
	RemoteImports []string `json:"remoteImports"`
}

// Graph is the cross-reference graph keyed by module name. Keys keep
// insertion order so every rendering of the graph is deterministic.
type Graph struct {
	nodes map[string]*Node
	keys  []string
}

func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

func (g *Graph) ensure(name string) *Node {
	if n, ok := g.nodes[name]; ok {
		return n
	}
	n := &Node{References: []string{}, RemoteImports: []string{}}
	g.nodes[name] = n
	g.keys = append(g.keys, name)
	return n
}

// AddReference records that ref imports module.
func (g *Graph) AddReference(module, ref string) {
	n := g.ensure(module)
	n.References = append(n.References, ref)
}

// AddRemoteImport records that exposed module imports dep.
func (g *Graph) AddRemoteImport(module, dep string) {
	n := g.ensure(module)
	n.RemoteImports = append(n.RemoteImports, dep)
}

// Backfill adds an empty node for every name that appears in an edge list
// but is not yet a key.
func (g *Graph) Backfill() {
	// g.keys grows while iterating; new nodes have empty lists.
	for i := 0; i < len(g.keys); i++ {
		n := g.nodes[g.keys[i]]
		for _, name := range n.References {
			g.ensure(name)
		}
		for _, name := range n.RemoteImports {
			g.ensure(name)
		}
	}
}

// Keys returns the module names in insertion order.
func (g *Graph) Keys() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

func (g *Graph) Len() int {
	return len(g.keys)
}

// EdgeCount returns the number of reference edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, n := range g.nodes {
		total += len(n.References)
	}
	return total
}

// MarshalJSON encodes the graph as an object whose keys follow Keys().
func (g *Graph) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range g.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(g.nodes[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
