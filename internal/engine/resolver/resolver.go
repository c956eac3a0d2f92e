// # internal/engine/resolver/resolver.go
package resolver

import (
	"sort"

	"fedmap/internal/engine/locator"
	"fedmap/internal/engine/registry"
	"fedmap/internal/shared/util"
)

// Resolver maps file paths to logical module names.
type Resolver struct {
	byFile map[string]registry.ExposedModule
	dirs   []locator.PackageDirectory
}

// New builds a resolver from a catalog whose exposed files have already been
// back-filled and from the located package directories.
func New(catalog *registry.Catalog, dirs []locator.PackageDirectory) *Resolver {
	r := &Resolver{byFile: make(map[string]registry.ExposedModule)}
	if catalog != nil {
		for _, m := range catalog.Modules {
			if !m.Resolved() {
				continue
			}
			if _, dup := r.byFile[m.File]; dup {
				continue
			}
			r.byFile[m.File] = m
		}
	}

	r.dirs = append(r.dirs, dirs...)
	// Longest directory first so nested package roots win over their parents.
	sort.SliceStable(r.dirs, func(i, j int) bool {
		return len(r.dirs[i].Directory) > len(r.dirs[j].Directory)
	})
	return r
}

// Resolve returns the logical name for path:
// the exposed module it backs, else "<package><rest>" when it lies inside a
// package directory, else path itself.
func (r *Resolver) Resolve(path string) string {
	if m, ok := r.byFile[path]; ok {
		return m.ModuleName
	}
	for _, d := range r.dirs {
		if !util.HasPathPrefix(path, d.Directory) {
			continue
		}
		return d.Package + util.TrimPathPrefix(path, d.Directory)
	}
	return path
}

// ExposedModuleFor reports the exposed module physically backed by path.
func (r *Resolver) ExposedModuleFor(path string) (registry.ExposedModule, bool) {
	m, ok := r.byFile[path]
	return m, ok
}
