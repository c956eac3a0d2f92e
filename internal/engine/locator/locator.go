package locator

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PackageDirectory maps a registry package name to its directory on disk.
type PackageDirectory struct {
	Package   string `json:"package"`
	Directory string `json:"directory"`
}

// Result holds the located package directories and the packages that had
// no matching subdirectory.
type Result struct {
	Dirs    []PackageDirectory
	Missing []string
}

// Directory returns the directory located for pkg.
func (r Result) Directory(pkg string) (string, bool) {
	for _, d := range r.Dirs {
		if d.Package == pkg {
			return d.Directory, true
		}
	}
	return "", false
}

// NormalizePath returns the absolute, forward-slash form of p. Every path
// handed between pipeline stages goes through here so string comparison
// between them is stable.
func NormalizePath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return filepath.ToSlash(filepath.Clean(p))
}

// ListSubdirectories returns the sorted names of root's immediate
// subdirectories.
func ListSubdirectories(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("list subdirectories of %s: %w", root, err)
	}
	dirs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// LocatePackages picks, for every package name, the subdirectory whose name
// contains it at the earliest position. Ties keep the first subdirectory in
// listing order. Packages without a candidate are logged and reported in
// Result.Missing.
func LocatePackages(subdirs, packages []string, root string) Result {
	var res Result
	for _, pkg := range packages {
		best := ""
		bestIdx := -1
		for _, dir := range subdirs {
			idx := strings.Index(dir, pkg)
			if idx < 0 {
				continue
			}
			if bestIdx < 0 || idx < bestIdx {
				best = dir
				bestIdx = idx
			}
		}
		if bestIdx < 0 {
			slog.Warn("no directory found for package", "package", pkg, "root", root)
			res.Missing = append(res.Missing, pkg)
			continue
		}
		res.Dirs = append(res.Dirs, PackageDirectory{
			Package:   pkg,
			Directory: NormalizePath(filepath.Join(root, best)),
		})
	}
	return res
}
