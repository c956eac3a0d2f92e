package registry

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"fedmap/internal/core/errors"
	"fedmap/internal/shared/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Fetcher is the read-only registry surface the loader depends on.
type Fetcher interface {
	GetProject(ctx context.Context, projectID string) (*ProjectResponse, error)
	GetPackage(ctx context.Context, packageID string) (*PackageResponse, error)
}

type Loader struct {
	fetcher Fetcher
}

func NewLoader(fetcher Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// Load builds the exposed-module catalog for a project. Packages are fetched
// one after another in the order the project lists them; any failure aborts
// the whole load.
func (l *Loader) Load(ctx context.Context, projectID string) (*Catalog, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, errors.New(errors.CodeValidationError, "project id must not be empty")
	}

	ctx, span := observability.Tracer.Start(ctx, "registry.Load", trace.WithAttributes(
		attribute.String("project", projectID),
	))
	defer span.End()
	started := time.Now()
	defer func() {
		observability.AnalysisDuration.WithLabelValues("registry").Observe(time.Since(started).Seconds())
	}()

	project, err := l.fetcher.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	catalog := &Catalog{ProjectID: projectID}
	seenPackages := make(map[string]bool, len(project.Packages))
	seenModules := make(map[string]bool)

	for _, packageID := range project.Packages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pkg, err := l.fetcher.GetPackage(ctx, packageID)
		if err != nil {
			return nil, errors.AddContext(err, errors.CtxProject, projectID)
		}

		name := strings.TrimSpace(pkg.Name)
		if !seenPackages[name] {
			seenPackages[name] = true
			catalog.PackageNames = append(catalog.PackageNames, name)
		}

		for _, m := range pkg.Modules {
			moduleName := QualifiedModuleName(name, m.Name)
			if seenModules[moduleName] {
				slog.Debug("duplicate exposed module ignored", "module", moduleName, "package", packageID)
				continue
			}
			seenModules[moduleName] = true
			catalog.Modules = append(catalog.Modules, ExposedModule{
				Package:    name,
				ModuleName: moduleName,
				Path:       m.Path,
			})
		}
		slog.Debug("loaded package", "package", name, "id", packageID, "modules", len(pkg.Modules))
	}

	slog.Info("registry catalog loaded",
		"project", projectID,
		"packages", len(catalog.PackageNames),
		"modules", len(catalog.Modules),
	)
	return catalog, nil
}
