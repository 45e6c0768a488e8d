// Package treesitter turns tree-sitter parses into lossless green trees.
//
// Tree-sitter trees skip the text between tokens. The bridge fills every gap
// with a synthetic token so that the resulting green tree reproduces the
// source byte for byte.
package treesitter

import (
	"slices"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// Grammar is a tree-sitter grammar the bridge can parse with.
type Grammar interface {
	// Name returns the grammar identifier (e.g., "go").
	Name() string

	// Extensions returns file extensions for this grammar (e.g., [".go"]).
	Extensions() []string

	// TreeSitterLang returns the tree-sitter language.
	TreeSitterLang() *sitter.Language
}

// registry holds all registered grammars.
var registry = make(map[string]Grammar)

// Register adds a grammar to the registry.
func Register(g Grammar) {
	registry[g.Name()] = g
}

// Get returns a grammar by name, or nil if not found.
func Get(name string) Grammar {
	return registry[name]
}

// List returns all registered grammar names in sorted order.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ByExtension finds a grammar by file extension.
func ByExtension(ext string) Grammar {
	for _, g := range registry {
		if slices.Contains(g.Extensions(), ext) {
			return g
		}
	}
	return nil
}

// Go is the tree-sitter grammar for Go source code.
type Go struct{}

func init() {
	Register(Go{})
}

func (Go) Name() string                     { return "go" }
func (Go) Extensions() []string             { return []string{".go"} }
func (Go) TreeSitterLang() *sitter.Language { return golang.GetLanguage() }
