package registry

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// Response schemas for the registry endpoints. Bodies are validated against
// these before typed decoding so malformed snapshots are rejected at the boundary.
var (
	projectSchema = newProjectSchema()
	packageSchema = newPackageSchema()
)

func newProjectSchema() *openapi3.Schema {
	ids := openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema().WithMinLength(1))

	s := openapi3.NewObjectSchema().
		WithProperty("packages", ids).
		WithProperty("name", openapi3.NewStringSchema())
	s.Required = []string{"packages"}
	return s
}

func newPackageSchema() *openapi3.Schema {
	module := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("path", openapi3.NewStringSchema().WithMinLength(1))
	module.Required = []string{"name", "path"}

	s := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("version", openapi3.NewStringSchema()).
		WithProperty("modules", openapi3.NewArraySchema().WithItems(module)).
		WithProperty("remotes", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))
	s.Required = []string{"name", "modules"}
	return s
}

// ProjectResponse is the body of GET /projects/{id}.
type ProjectResponse struct {
	Name     string   `json:"name,omitempty"`
	Packages []string `json:"packages"`
}

// PackageResponse is the body of GET /packages/{id}.
type PackageResponse struct {
	Name    string             `json:"name"`
	Version string             `json:"version,omitempty"`
	Modules []ModuleDescriptor `json:"modules"`
	Remotes []string           `json:"remotes,omitempty"`
}

// ModuleDescriptor is one exposed module as declared in the registry.
type ModuleDescriptor struct {
	Name string `json:"name"`
	Path string `json:"path"`
}
