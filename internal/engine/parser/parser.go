// # internal/engine/parser/parser.go
package parser

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fedmap/internal/core/errors"
	"fedmap/internal/shared/observability"
	"fedmap/internal/shared/util"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

type Language string

const (
	LanguageTypeScript Language = "typescript"
	LanguageTSX        Language = "tsx"
)

// Parser turns TypeScript and TSX sources into syntax trees.
type Parser struct {
	pools      map[Language]*ParserPool
	extensions map[string]Language
}

func NewParser() *Parser {
	return &Parser{
		pools: map[Language]*ParserPool{
			LanguageTypeScript: NewParserPool(sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())),
			LanguageTSX:        NewParserPool(sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())),
		},
		extensions: map[string]Language{
			".ts":  LanguageTypeScript,
			".tsx": LanguageTSX,
		},
	}
}

// LanguageFor returns the grammar used for path, or "" when unsupported.
func (p *Parser) LanguageFor(path string) Language {
	return p.extensions[strings.ToLower(filepath.Ext(path))]
}

func (p *Parser) IsSupportedPath(path string) bool {
	return p.LanguageFor(path) != ""
}

func (p *Parser) SupportedExtensions() []string {
	return util.SortedStringKeys(p.extensions)
}

// Parse parses content as the language implied by path's extension.
// The caller owns the returned SourceFile and must Close it.
func (p *Parser) Parse(path string, content []byte) (*SourceFile, error) {
	lang := p.LanguageFor(path)
	if lang == "" {
		return nil, errors.AddContext(
			errors.New(errors.CodeNotSupported, fmt.Sprintf("unsupported file type %q", filepath.Ext(path))),
			errors.CtxPath, path)
	}

	pool := p.pools[lang]
	sp := pool.Get()
	defer pool.Put(sp)

	started := time.Now()
	tree := sp.Parse(content, nil)
	observability.ParsingDuration.WithLabelValues(string(lang)).Observe(time.Since(started).Seconds())
	if tree == nil {
		return nil, errors.AddContext(errors.New(errors.CodeInternal, "parse failed"), errors.CtxPath, path)
	}

	return &SourceFile{
		Path:     path,
		Language: lang,
		Source:   content,
		tree:     tree,
	}, nil
}

// SourceFile is a parsed file and its syntax tree.
type SourceFile struct {
	Path     string
	Language Language
	Source   []byte

	tree *sitter.Tree
}

func (f *SourceFile) Root() *sitter.Node {
	return f.tree.RootNode()
}

// Text returns the source text spanned by n.
func (f *SourceFile) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	start, end := n.StartByte(), n.EndByte()
	if end > uint(len(f.Source)) || start > end {
		return ""
	}
	return string(f.Source[start:end])
}

func (f *SourceFile) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}
