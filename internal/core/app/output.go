package app

import (
	"fmt"
	"io"

	"fedmap/internal/ui/report"
	"fedmap/internal/ui/report/formats"
)

// OutputOptions controls what Render writes.
type OutputOptions struct {
	Format  string
	Diagram bool
}

// Render writes the reference report followed by the diagram.
func (a *App) Render(w io.Writer, res *Result, opts OutputOptions) error {
	text, err := formats.NewReportGenerator(res.Graph).Generate(opts.Format)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if !opts.Diagram {
		return nil
	}

	diagram, err := formats.NewPlantUMLGenerator(res.Graph).Generate()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"+diagram); err != nil {
		return fmt.Errorf("write diagram: %w", err)
	}
	return nil
}

// Summary condenses res for the terminal summary.
func (a *App) Summary(res *Result) report.Summary {
	return report.Summary{
		ProjectID:       res.ProjectID,
		Packages:        len(res.Catalog.PackageNames),
		Modules:         len(res.Catalog.Modules),
		ResolvedModules: res.Catalog.ResolvedCount(),
		MissingPackages: res.Packages.Missing,
		Files:           len(res.Files),
		Nodes:           res.Graph.Len(),
		Edges:           res.Graph.EdgeCount(),
		Delta:           res.Delta,
	}
}
