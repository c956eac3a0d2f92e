package formats

import (
	"fmt"
	"strings"

	"fedmap/internal/engine/graph"
	"fedmap/internal/shared/util"
)

// PlantUMLGenerator renders a reference graph as a PlantUML component
// diagram.
type PlantUMLGenerator struct {
	graph *graph.Graph
}

func NewPlantUMLGenerator(g *graph.Graph) *PlantUMLGenerator {
	return &PlantUMLGenerator{graph: g}
}

// Generate emits one package block per first path segment, then one edge per
// references entry pointing from the referencing module to the referenced one.
func (p *PlantUMLGenerator) Generate() (string, error) {
	var b strings.Builder
	b.WriteString("@startuml\n")

	if p.graph != nil && p.graph.Len() > 0 {
		keys := p.graph.Keys()
		namespaces, members := groupByNamespace(keys)
		for _, ns := range namespaces {
			fmt.Fprintf(&b, "package %q {\n", ns)
			for _, name := range members[ns] {
				fmt.Fprintf(&b, "  [%s]\n", diagramName(name))
			}
			b.WriteString("}\n")
		}

		for _, module := range keys {
			node, _ := p.graph.Node(module)
			for _, ref := range node.References {
				fmt.Fprintf(&b, "[%s] --> [%s]\n", diagramName(ref), diagramName(module))
			}
		}
	}

	b.WriteString("@enduml\n")
	return b.String(), nil
}

// groupByNamespace buckets names by their first path segment, keeping the
// order in which each segment and name first appears.
func groupByNamespace(names []string) ([]string, map[string][]string) {
	var order []string
	members := make(map[string][]string)
	for _, name := range names {
		ns := namespaceOf(name)
		if _, ok := members[ns]; !ok {
			order = append(order, ns)
		}
		members[ns] = append(members[ns], name)
	}
	return order, members
}

func namespaceOf(name string) string {
	name = diagramName(name)
	if i := strings.Index(name, "/"); i >= 0 {
		return name[:i]
	}
	return name
}

func diagramName(name string) string {
	return util.NormalizeSlashes(name)
}
