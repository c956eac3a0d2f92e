package parser

import (
	"context"
	"log/slog"
	"os"
)

// Program is the set of successfully parsed files of one analysis run.
// Files that could not be read or parsed are absent.
type Program struct {
	files map[string]*SourceFile
	order []string
}

// NewProgram reads and parses paths. Unreadable and unsupported files are
// logged and skipped; only context cancellation is returned as an error.
func NewProgram(ctx context.Context, p *Parser, paths []string) (*Program, error) {
	prog := &Program{files: make(map[string]*SourceFile, len(paths))}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			prog.Close()
			return nil, err
		}
		if _, ok := prog.files[path]; ok {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("failed to read source file", "path", path, "error", err)
			continue
		}
		sf, err := p.Parse(path, content)
		if err != nil {
			slog.Warn("failed to parse source file", "path", path, "error", err)
			continue
		}
		prog.files[path] = sf
		prog.order = append(prog.order, path)
	}
	return prog, nil
}

// SourceFile returns the parsed file for path.
func (p *Program) SourceFile(path string) (*SourceFile, bool) {
	sf, ok := p.files[path]
	return sf, ok
}

// Files returns the parsed paths in input order.
func (p *Program) Files() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

func (p *Program) Len() int {
	return len(p.order)
}

// Close releases every syntax tree held by the program.
func (p *Program) Close() {
	for _, sf := range p.files {
		sf.Close()
	}
	p.files = map[string]*SourceFile{}
	p.order = nil
}
