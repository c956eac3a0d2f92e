package history

import "time"

const SchemaVersion = 1

// Run is the stored summary of one analysis run.
type Run struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	Root            string    `json:"root"`
	Timestamp       time.Time `json:"timestamp"`
	PackageCount    int       `json:"package_count"`
	ModuleCount     int       `json:"module_count"`
	ResolvedCount   int       `json:"resolved_count"`
	MissingPackages int       `json:"missing_packages"`
	FileCount       int       `json:"file_count"`
	NodeCount       int       `json:"node_count"`
	EdgeCount       int       `json:"edge_count"`
}

// Delta is the difference between two runs of the same project.
type Delta struct {
	Previous        Run `json:"previous"`
	Packages        int `json:"packages"`
	Modules         int `json:"modules"`
	Resolved        int `json:"resolved"`
	MissingPackages int `json:"missing_packages"`
	Files           int `json:"files"`
	Nodes           int `json:"nodes"`
	Edges           int `json:"edges"`
}

// Compare returns current minus previous.
func Compare(previous, current Run) Delta {
	return Delta{
		Previous:        previous,
		Packages:        current.PackageCount - previous.PackageCount,
		Modules:         current.ModuleCount - previous.ModuleCount,
		Resolved:        current.ResolvedCount - previous.ResolvedCount,
		MissingPackages: current.MissingPackages - previous.MissingPackages,
		Files:           current.FileCount - previous.FileCount,
		Nodes:           current.NodeCount - previous.NodeCount,
		Edges:           current.EdgeCount - previous.EdgeCount,
	}
}
