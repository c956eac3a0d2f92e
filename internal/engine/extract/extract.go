package extract

import (
	"context"
	"log/slog"
	"strings"

	"fedmap/internal/engine/parser"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ExtractionResult lists the target module names one file references.
type ExtractionResult struct {
	File         string      `json:"file"`
	FoundImports *OrderedSet `json:"foundImports"`
}

// detector inspects a single node and reports a matched target name.
type detector func(sf *parser.SourceFile, n *sitter.Node, targets map[string]bool) (string, bool)

// Extractor finds references to known module names in parsed sources.
type Extractor struct {
	detectors []detector
}

func NewExtractor() *Extractor {
	return &Extractor{
		detectors: []detector{
			detectStaticImport,
			detectDynamicImport,
			detectFunctionImport,
		},
	}
}

// Extract walks file's syntax tree depth-first and collects every target it
// references. It returns false when the program holds no source for file.
func (e *Extractor) Extract(prog *parser.Program, file string, targets []string) (*ExtractionResult, bool) {
	sf, ok := prog.SourceFile(file)
	if !ok {
		slog.Warn("no parsed source for file", "path", file)
		return nil, false
	}

	want := make(map[string]bool, len(targets))
	for _, t := range targets {
		want[t] = true
	}

	result := &ExtractionResult{File: file, FoundImports: NewOrderedSet()}
	e.walk(sf, sf.Root(), want, result.FoundImports)
	return result, true
}

// ExtractAll runs Extract over files in order, skipping files without source.
func (e *Extractor) ExtractAll(ctx context.Context, prog *parser.Program, files []string, targets []string) ([]*ExtractionResult, error) {
	results := make([]*ExtractionResult, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, ok := e.Extract(prog, file, targets)
		if !ok {
			continue
		}
		results = append(results, res)
	}
	return results, nil
}

func (e *Extractor) walk(sf *parser.SourceFile, n *sitter.Node, targets map[string]bool, found *OrderedSet) {
	if n == nil {
		return
	}
	for _, detect := range e.detectors {
		if name, ok := detect(sf, n, targets); ok {
			found.Add(name)
		}
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		e.walk(sf, n.Child(i), targets, found)
	}
}

// detectStaticImport matches `import ... from "<target>"` by exact specifier.
func detectStaticImport(sf *parser.SourceFile, n *sitter.Node, targets map[string]bool) (string, bool) {
	if n.Kind() != "import_statement" {
		return "", false
	}
	source := n.ChildByFieldName("source")
	if source == nil {
		return "", false
	}
	specifier, ok := unquote(sf.Text(source))
	if !ok || !targets[specifier] {
		return "", false
	}
	return specifier, true
}

// detectDynamicImport matches call expressions that start with the import
// keyword, e.g. import("<target>").
func detectDynamicImport(sf *parser.SourceFile, n *sitter.Node, targets map[string]bool) (string, bool) {
	if n.Kind() != "call_expression" {
		return "", false
	}
	if strings.TrimSpace(sf.Text(firstToken(n))) != "import" {
		return "", false
	}
	return findStringLiteral(sf, n, targets)
}

// detectFunctionImport matches function-like nodes whose code mentions
// "import" and that contain a target literal somewhere inside.
func detectFunctionImport(sf *parser.SourceFile, n *sitter.Node, targets map[string]bool) (string, bool) {
	if !functionKinds[n.Kind()] {
		return "", false
	}
	if !strings.Contains(textWithoutComments(sf, n), "import") {
		return "", false
	}
	return findStringLiteral(sf, n, targets)
}

var functionKinds = map[string]bool{
	"function_declaration":           true,
	"function_expression":            true,
	"function":                       true,
	"arrow_function":                 true,
	"method_definition":              true,
	"generator_function":             true,
	"generator_function_declaration": true,
	"method_signature":               true,
	"function_signature":             true,
	"abstract_method_signature":      true,
	"call_signature":                 true,
	"construct_signature":            true,
	"function_type":                  true,
	"constructor_type":               true,
}

// findStringLiteral returns the first string literal at or below n, in
// document order, whose unquoted text is a target.
func findStringLiteral(sf *parser.SourceFile, n *sitter.Node, targets map[string]bool) (string, bool) {
	if n == nil {
		return "", false
	}
	if n.Kind() == "string" {
		value, ok := unquote(sf.Text(n))
		return value, ok && targets[value]
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if value, ok := findStringLiteral(sf, n.Child(i), targets); ok {
			return value, true
		}
	}
	return "", false
}

func firstToken(n *sitter.Node) *sitter.Node {
	for n != nil && n.ChildCount() > 0 {
		n = n.Child(0)
	}
	return n
}

// textWithoutComments returns n's source with comment nodes cut out.
func textWithoutComments(sf *parser.SourceFile, n *sitter.Node) string {
	var b strings.Builder
	cursor := n.StartByte()
	var visit func(*sitter.Node)
	visit = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if node.Kind() == "comment" {
			b.Write(sf.Source[cursor:node.StartByte()])
			cursor = node.EndByte()
			return
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			visit(node.Child(i))
		}
	}
	visit(n)
	b.Write(sf.Source[cursor:n.EndByte()])
	return b.String()
}

// unquote trims s and strips one pair of matching quotes.
func unquote(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return "", false
	}
	q := s[0]
	if (q != '"' && q != '\'') || s[len(s)-1] != q {
		return "", false
	}
	return s[1 : len(s)-1], true
}
