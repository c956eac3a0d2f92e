package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fedmap/internal/data/history"
)

// RenderRunsTSV renders stored runs as tab-separated rows, oldest first.
func RenderRunsTSV(runs []history.Run) ([]byte, error) {
	var buf strings.Builder

	buf.WriteString("Timestamp\tRun\tPackages\tModules\tResolved\tMissing\tFiles\tNodes\tEdges\n")
	for _, run := range runs {
		buf.WriteString(fmt.Sprintf(
			"%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			run.Timestamp.Format(time.RFC3339),
			run.ID,
			run.PackageCount,
			run.ModuleCount,
			run.ResolvedCount,
			run.MissingPackages,
			run.FileCount,
			run.NodeCount,
			run.EdgeCount,
		))
	}

	return []byte(buf.String()), nil
}

func RenderRunsJSON(runs []history.Run) ([]byte, error) {
	return json.MarshalIndent(runs, "", "  ")
}
