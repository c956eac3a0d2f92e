package locator

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"fedmap/internal/engine/registry"
	"fedmap/internal/shared/util"

	"github.com/gobwas/glob"
)

// ResolveExposedFiles finds the physical file of every exposed module by
// matching "**/<package>/<path>" below root, and back-fills File and
// FileName on the catalog. The first match in walk order wins. It returns
// the set of resolved export files.
func ResolveExposedFiles(ctx context.Context, root string, catalog *registry.Catalog, excludeDirs []string) (map[string]bool, error) {
	dirGlobs, err := compileGlobs(excludeDirs)
	if err != nil {
		return nil, err
	}

	type pending struct {
		index   int
		pattern glob.Glob
	}
	var todo []pending
	for i, m := range catalog.Modules {
		rel := util.NormalizePatternPath(m.Path)
		if rel == "" {
			slog.Warn("exposed module has no path", "module", m.ModuleName)
			continue
		}
		g, err := glob.Compile("**/"+escapeGlob(m.Package)+"/"+escapeGlob(rel), '/')
		if err != nil {
			slog.Warn("cannot build pattern for exposed module", "module", m.ModuleName, "error", err)
			continue
		}
		todo = append(todo, pending{index: i, pattern: g})
	}

	files := make(map[string]bool)
	if len(todo) == 0 {
		return files, nil
	}

	root = NormalizePath(root)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && matchesAny(dirGlobs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		candidate := "/" + filepath.ToSlash(rel)

		remaining := todo[:0]
		for _, p := range todo {
			if p.pattern.Match(candidate) {
				file := NormalizePath(path)
				catalog.SetFile(p.index, file)
				files[file] = true
				slog.Debug("resolved exposed module", "module", catalog.Modules[p.index].ModuleName, "path", file)
				continue
			}
			remaining = append(remaining, p)
		}
		todo = remaining
		if len(todo) == 0 {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("resolve exposed files under %s: %w", root, err)
	}

	for _, p := range todo {
		m := catalog.Modules[p.index]
		slog.Warn("exposed module file not found", "module", m.ModuleName, "path", m.Path)
	}
	return files, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchesAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// escapeGlob quotes glob metacharacters so registry-supplied names match
// literally.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\', '!':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
