package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"fedmap/internal/core/errors"
	"fedmap/internal/engine/graph"
	"fedmap/internal/engine/locator"
	"fedmap/internal/engine/parser"
	"fedmap/internal/engine/registry"
	"fedmap/internal/engine/resolver"
	"fedmap/internal/shared/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Analyze runs the filesystem stages of the pipeline against a loaded
// catalog. The catalog is cloned, so a cached catalog can be analyzed
// repeatedly.
func (a *App) Analyze(ctx context.Context, root string, catalog *registry.Catalog) (*Result, error) {
	if catalog == nil {
		return nil, errors.New(errors.CodeValidationError, "catalog is required")
	}
	root = locator.NormalizePath(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "root directory not found"), errors.CtxPath, root)
	}
	if !info.IsDir() {
		return nil, errors.AddContext(errors.New(errors.CodeValidationError, "root is not a directory"), errors.CtxPath, root)
	}

	ctx, span := observability.Tracer.Start(ctx, "app.Analyze", trace.WithAttributes(
		attribute.String("root", root),
		attribute.String("project", catalog.ProjectID),
	))
	defer span.End()

	started := time.Now()
	res := &Result{
		ProjectID: catalog.ProjectID,
		Root:      root,
		Catalog:   catalog.Clone(),
	}

	var subdirs []string
	if err := stage("locate", func() error {
		var err error
		subdirs, err = locator.ListSubdirectories(root)
		if err != nil {
			return err
		}
		res.Packages = locator.LocatePackages(subdirs, res.Catalog.PackageNames, root)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "locate package directories")
	}

	// Exposed files must be known before extraction so the resolver sees them.
	if err := stage("exposed", func() error {
		var err error
		res.ExportFiles, err = locator.ResolveExposedFiles(ctx, root, res.Catalog, a.Config.Scan.ExcludeDirs)
		return err
	}); err != nil {
		return nil, stageError(ctx, err, "resolve exposed module files")
	}

	if err := stage("scan", func() error {
		var err error
		res.Files, err = locator.ScanSourceFiles(ctx, root, locator.ScanOptions{
			Extensions:   a.Config.Scan.Extensions,
			ExcludeDirs:  a.Config.Scan.ExcludeDirs,
			ExcludeFiles: a.Config.Scan.ExcludeFiles,
		})
		return err
	}); err != nil {
		return nil, stageError(ctx, err, "scan source files")
	}

	var prog *parser.Program
	if err := stage("parse", func() error {
		var err error
		prog, err = parser.NewProgram(ctx, a.parser, res.Files)
		return err
	}); err != nil {
		return nil, stageError(ctx, err, "parse source files")
	}
	defer prog.Close()
	res.Parsed = prog.Len()

	var builder *graph.Builder
	if err := stage("extract", func() error {
		results, err := a.extractor.ExtractAll(ctx, prog, res.Files, res.Catalog.ModuleNames())
		if err != nil {
			return err
		}
		builder = graph.NewBuilder(resolver.New(res.Catalog, res.Packages.Dirs))
		builder.AddAll(results)
		return nil
	}); err != nil {
		return nil, stageError(ctx, err, "extract imports")
	}
	res.Graph = builder.Graph()
	res.Duration = time.Since(started)

	slog.Info("analysis complete",
		"root", root,
		"files", len(res.Files),
		"parsed", res.Parsed,
		"exposed_resolved", res.Catalog.ResolvedCount(),
		"nodes", res.Graph.Len(),
		"edges", res.Graph.EdgeCount(),
		"duration", res.Duration,
	)

	a.recordHistory(res)
	a.setLast(res)
	return res, nil
}

func stage(name string, fn func() error) error {
	started := time.Now()
	err := fn()
	observability.AnalysisDuration.WithLabelValues(name).Observe(time.Since(started).Seconds())
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func stageError(ctx context.Context, err error, msg string) error {
	if ctx.Err() != nil {
		return errors.Wrap(err, errors.CodeUnavailable, "analysis cancelled")
	}
	return errors.Wrap(err, errors.CodeInternal, msg)
}
