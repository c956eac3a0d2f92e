package app

import (
	"context"
	"log/slog"

	"fedmap/internal/core/watcher"
	"fedmap/internal/engine/registry"
)

// Watch re-analyzes root with the cached catalog whenever a source file
// changes, calling onResult after each successful run. It blocks until ctx
// is done.
func (a *App) Watch(ctx context.Context, root string, catalog *registry.Catalog, onResult func(*Result)) error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Scan.ExcludeDirs,
		a.Config.Scan.ExcludeFiles,
		func(paths []string) {
			if ctx.Err() != nil {
				return
			}
			slog.Info("changes detected", "files", len(paths))
			res, err := a.Analyze(ctx, root, catalog)
			if err != nil {
				slog.Error("re-analysis failed", "error", err)
				return
			}
			if onResult != nil {
				onResult(res)
			}
		},
	)
	if err != nil {
		return err
	}
	defer w.Close()
	w.SetExtensions(a.Config.Scan.Extensions)

	if err := w.Watch([]string{root}); err != nil {
		return err
	}
	slog.Info("watching for changes", "root", root, "debounce", a.Config.Watch.Debounce)

	<-ctx.Done()
	return nil
}
