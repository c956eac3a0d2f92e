package graph

import (
	"fedmap/internal/engine/extract"
	"fedmap/internal/engine/registry"
	"fedmap/internal/shared/observability"
)

// Resolver maps file paths and module names to graph node names.
type Resolver interface {
	Resolve(path string) string
	ExposedModuleFor(path string) (registry.ExposedModule, bool)
}

// Builder accumulates extraction results into a Graph. It owns all graph
// state for one analysis run.
type Builder struct {
	resolver Resolver
	graph    *Graph
}

func NewBuilder(resolver Resolver) *Builder {
	return &Builder{resolver: resolver, graph: New()}
}

// Add records the edges for one file.
func (b *Builder) Add(result *extract.ExtractionResult) {
	if result == nil || result.FoundImports == nil {
		return
	}
	importer := b.resolver.Resolve(result.File)
	exposed, isExport := b.resolver.ExposedModuleFor(result.File)

	for _, module := range result.FoundImports.Values() {
		b.graph.AddReference(module, importer)
		b.graph.ensure(importer)

		if isExport {
			dep := b.resolver.Resolve(module)
			b.graph.AddRemoteImport(exposed.ModuleName, dep)
			b.graph.ensure(dep)
		}
	}
}

// AddAll records every result in order.
func (b *Builder) AddAll(results []*extract.ExtractionResult) {
	for _, r := range results {
		b.Add(r)
	}
}

// Graph closes the accumulated graph, publishes its size and returns it.
func (b *Builder) Graph() *Graph {
	b.graph.Backfill()
	observability.GraphNodes.Set(float64(b.graph.Len()))
	observability.GraphEdges.Set(float64(b.graph.EdgeCount()))
	return b.graph
}
