package formats

import (
	"encoding/json"
	"fmt"
	"strings"

	"fedmap/internal/engine/graph"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// ReportGenerator renders the module-to-references mapping.
type ReportGenerator struct {
	graph *graph.Graph
}

func NewReportGenerator(g *graph.Graph) *ReportGenerator {
	return &ReportGenerator{graph: g}
}

// Generate renders the report in the given format.
func (r *ReportGenerator) Generate(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return r.Text(), nil
	case FormatJSON:
		return r.JSON()
	default:
		return "", fmt.Errorf("unsupported report format %q", format)
	}
}

// Text renders one block per module in graph order.
func (r *ReportGenerator) Text() string {
	var b strings.Builder
	if r.graph == nil || r.graph.Len() == 0 {
		b.WriteString("No references found.\n")
		return b.String()
	}
	for _, name := range r.graph.Keys() {
		node, _ := r.graph.Node(name)
		fmt.Fprintf(&b, "%s\n", name)
		writeList(&b, "references", node.References)
		writeList(&b, "remoteImports", node.RemoteImports)
	}
	return b.String()
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "  %s: []\n", label)
		return
	}
	fmt.Fprintf(b, "  %s:\n", label)
	for _, item := range items {
		fmt.Fprintf(b, "    - %s\n", item)
	}
}

// JSON renders the graph as an indented object keyed by module name.
func (r *ReportGenerator) JSON() (string, error) {
	g := r.graph
	if g == nil {
		g = graph.New()
	}
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(data) + "\n", nil
}
