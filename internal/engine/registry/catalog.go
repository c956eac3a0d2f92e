package registry

import (
	"path/filepath"
	"strings"
)

// ExposedModule is a module a package publishes for cross-package import.
// File and FileName stay empty until filesystem resolution back-fills them.
type ExposedModule struct {
	Package    string `json:"package"`
	ModuleName string `json:"moduleName"`
	Path       string `json:"path"`
	FileName   string `json:"fileName,omitempty"`
	File       string `json:"file,omitempty"`
}

// Resolved reports whether a physical file was found for the module.
func (m ExposedModule) Resolved() bool {
	return m.File != ""
}

// Catalog is the registry snapshot for one project.
type Catalog struct {
	ProjectID    string
	PackageNames []string
	Modules      []ExposedModule
}

// ModuleNames returns the logical names of all exposed modules in catalog order.
func (c *Catalog) ModuleNames() []string {
	names := make([]string, 0, len(c.Modules))
	for _, m := range c.Modules {
		names = append(names, m.ModuleName)
	}
	return names
}

// Module looks up an exposed module by logical name.
func (c *Catalog) Module(name string) (ExposedModule, bool) {
	for _, m := range c.Modules {
		if m.ModuleName == name {
			return m, true
		}
	}
	return ExposedModule{}, false
}

// Clone returns a deep copy so each analysis run can back-fill files
// independently.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{ProjectID: c.ProjectID}
	out.PackageNames = append([]string(nil), c.PackageNames...)
	out.Modules = append([]ExposedModule(nil), c.Modules...)
	return out
}

// SetFile back-fills the physical file for the module at index i.
func (c *Catalog) SetFile(i int, path string) {
	if i < 0 || i >= len(c.Modules) {
		return
	}
	c.Modules[i].File = path
	c.Modules[i].FileName = filepath.Base(path)
}

// ResolvedCount returns how many modules have a physical file.
func (c *Catalog) ResolvedCount() int {
	n := 0
	for _, m := range c.Modules {
		if m.Resolved() {
			n++
		}
	}
	return n
}

// QualifiedModuleName namespaces a declared module name under its package:
// "./Button" in package "ui" becomes "ui/Button".
func QualifiedModuleName(pkg, declared string) string {
	name := strings.TrimSpace(declared)
	name = strings.TrimPrefix(name, "./")
	return pkg + "/" + name
}
