package report

import (
	"fmt"
	"strings"

	"fedmap/internal/data/history"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

// Summary describes the outcome of one analysis run.
type Summary struct {
	ProjectID       string
	Packages        int
	Modules         int
	ResolvedModules int
	MissingPackages []string
	Files           int
	Nodes           int
	Edges           int
	Delta           *history.Delta
}

// RenderSummary formats s for a terminal.
func RenderSummary(s Summary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("fedmap: "+s.ProjectID) + "\n")
	fmt.Fprintf(&b, "  packages: %d%s\n", s.Packages, delta(s.Delta, func(d *history.Delta) int { return d.Packages }))
	fmt.Fprintf(&b, "  exposed modules: %d (%d resolved)%s\n", s.Modules, s.ResolvedModules, delta(s.Delta, func(d *history.Delta) int { return d.Modules }))
	fmt.Fprintf(&b, "  files scanned: %d%s\n", s.Files, delta(s.Delta, func(d *history.Delta) int { return d.Files }))
	fmt.Fprintf(&b, "  graph: %d nodes, %d edges%s\n", s.Nodes, s.Edges, delta(s.Delta, func(d *history.Delta) int { return d.Edges }))

	if len(s.MissingPackages) > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf("  missing packages: %s", strings.Join(s.MissingPackages, ", "))) + "\n")
	} else {
		b.WriteString(successStyle.Render("  all packages located") + "\n")
	}
	if s.Delta != nil {
		b.WriteString(statusStyle.Render("  compared with run "+s.Delta.Previous.ID) + "\n")
	}
	return b.String()
}

func delta(d *history.Delta, pick func(*history.Delta) int) string {
	if d == nil {
		return ""
	}
	v := pick(d)
	if v == 0 {
		return ""
	}
	return fmt.Sprintf(" (%+d)", v)
}
