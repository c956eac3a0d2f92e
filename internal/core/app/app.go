package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fedmap/internal/core/config"
	"fedmap/internal/data/history"
	"fedmap/internal/engine/extract"
	"fedmap/internal/engine/graph"
	"fedmap/internal/engine/locator"
	"fedmap/internal/engine/parser"
	"fedmap/internal/engine/registry"
)

// Result is everything one analysis run produced.
type Result struct {
	RunID       string
	ProjectID   string
	Root        string
	Catalog     *registry.Catalog
	Packages    locator.Result
	ExportFiles map[string]bool
	Files       []string
	Parsed      int
	Graph       *graph.Graph
	Delta       *history.Delta
	Duration    time.Duration
}

// App wires the analysis pipeline stages together.
type App struct {
	Config *config.Config

	loader    *registry.Loader
	parser    *parser.Parser
	extractor *extract.Extractor
	history   *history.Store

	mu   sync.RWMutex
	last *Result
}

func New(cfg *config.Config, fetcher registry.Fetcher) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &App{
		Config:    cfg,
		loader:    registry.NewLoader(fetcher),
		parser:    parser.NewParser(),
		extractor: extract.NewExtractor(),
	}
}

// SetHistory enables run history recording.
func (a *App) SetHistory(store *history.Store) {
	a.history = store
}

// Run loads the project catalog from the registry and analyzes root.
func (a *App) Run(ctx context.Context, root, projectID string) (*Result, error) {
	catalog, err := a.LoadCatalog(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return a.Analyze(ctx, root, catalog)
}

// LoadCatalog fetches the exposed-module catalog for projectID.
func (a *App) LoadCatalog(ctx context.Context, projectID string) (*registry.Catalog, error) {
	return a.loader.Load(ctx, projectID)
}

// LastResult returns the most recent successful analysis.
func (a *App) LastResult() *Result {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.last
}

func (a *App) setLast(res *Result) {
	a.mu.Lock()
	a.last = res
	a.mu.Unlock()
}

func (a *App) recordHistory(res *Result) {
	if a.history == nil {
		return
	}
	previous, hasPrevious, err := a.history.Latest(res.ProjectID)
	if err != nil {
		slog.Warn("failed to read run history", "project", res.ProjectID, "error", err)
	}

	run, err := a.history.SaveRun(history.Run{
		ProjectID:       res.ProjectID,
		Root:            res.Root,
		PackageCount:    len(res.Catalog.PackageNames),
		ModuleCount:     len(res.Catalog.Modules),
		ResolvedCount:   res.Catalog.ResolvedCount(),
		MissingPackages: len(res.Packages.Missing),
		FileCount:       len(res.Files),
		NodeCount:       res.Graph.Len(),
		EdgeCount:       res.Graph.EdgeCount(),
	})
	if err != nil {
		slog.Warn("failed to save run history", "project", res.ProjectID, "error", err)
		return
	}
	res.RunID = run.ID
	if hasPrevious {
		d := history.Compare(previous, run)
		res.Delta = &d
	}
}
