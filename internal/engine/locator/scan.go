package locator

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"fedmap/internal/shared/observability"
)

// ScanOptions selects which files ScanSourceFiles returns.
type ScanOptions struct {
	Extensions   []string
	ExcludeDirs  []string
	ExcludeFiles []string
}

// ScanSourceFiles walks root and returns the normalized paths of every file
// with a supported extension that is not excluded, in walk order.
func ScanSourceFiles(ctx context.Context, root string, opts ScanOptions) ([]string, error) {
	dirGlobs, err := compileGlobs(opts.ExcludeDirs)
	if err != nil {
		return nil, err
	}
	fileGlobs, err := compileGlobs(opts.ExcludeFiles)
	if err != nil {
		return nil, err
	}
	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = true
	}

	root = NormalizePath(root)
	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		base := d.Name()
		if d.IsDir() {
			if path != root && matchesAny(dirGlobs, base) {
				return filepath.SkipDir
			}
			return nil
		}
		if !exts[strings.ToLower(filepath.Ext(base))] {
			return nil
		}
		if matchesAny(fileGlobs, base) {
			observability.FilesSkippedTotal.Inc()
			return nil
		}

		files = append(files, NormalizePath(path))
		observability.FilesScannedTotal.Inc()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
