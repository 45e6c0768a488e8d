package treesitter

import (
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/cst/green"
	"github.com/arjunmahishi/cst/syntax"
)

// Kind is a tree-sitter grammar symbol, extended with three synthetic kinds
// placed right after the grammar's last symbol: Whitespace, Text and Error.
// Error is the sentinel.
type Kind uint16

// Language is the kind space of one grammar. It implements
// syntax.Language[Kind].
type Language struct {
	grammar Grammar
	names   []string
	trivia  []bool
}

var _ syntax.Language[Kind] = (*Language)(nil)

// NewLanguage derives the kind space of g.
func NewLanguage(g Grammar) *Language {
	ts := g.TreeSitterLang()
	count := int(ts.SymbolCount())

	l := &Language{
		grammar: g,
		names:   make([]string, count+3),
		trivia:  make([]bool, count+3),
	}
	for i := 0; i < count; i++ {
		name := ts.SymbolName(sitter.Symbol(i))
		l.names[i] = name
		l.trivia[i] = strings.Contains(name, "comment")
	}
	l.names[count] = "whitespace"
	l.trivia[count] = true
	l.names[count+1] = "text"
	l.names[count+2] = "ERROR"
	return l
}

// Grammar returns the grammar the kind space was derived from.
func (l *Language) Grammar() Grammar { return l.grammar }

// Whitespace is the kind of gaps made only of whitespace.
func (l *Language) Whitespace() Kind { return Kind(len(l.names) - 3) }

// Text is the kind of gaps holding other uncovered text, such as the body
// of a string literal between escape sequences.
func (l *Language) Text() Kind { return Kind(len(l.names) - 2) }

// Error is the kind of spans tree-sitter could not parse. It is also the
// highest kind of the space.
func (l *Language) Error() Kind { return Kind(len(l.names) - 1) }

// Sentinel returns the highest legal kind.
func (l *Language) Sentinel() Kind { return l.Error() }

// KindFromRaw panics if raw is above the sentinel.
func (l *Language) KindFromRaw(raw green.Kind) Kind {
	if raw > green.Kind(l.Sentinel()) {
		panic(fmt.Sprintf("treesitter: raw kind %d is outside the %s kind space (sentinel %d)", raw, l.grammar.Name(), l.Sentinel()))
	}
	return Kind(raw)
}

func (l *Language) KindToRaw(kind Kind) green.Kind { return green.Kind(kind) }

func (l *Language) IsTrivia(kind Kind) bool {
	return int(kind) < len(l.trivia) && l.trivia[kind]
}

func (l *Language) KindName(kind Kind) string {
	if int(kind) < len(l.names) {
		return l.names[kind]
	}
	return fmt.Sprintf("Kind(%d)", uint16(kind))
}

// KindByName looks up a kind by name. Tree-sitter grammars reuse names
// across symbols, for instance for aliases, so a plain name resolves to the
// lowest symbol carrying it. The form returned by UniqueName, "name#id",
// selects a specific symbol.
func (l *Language) KindByName(name string) (Kind, bool) {
	if i := strings.LastIndexByte(name, '#'); i >= 0 {
		n, err := strconv.Atoi(name[i+1:])
		if err == nil && n >= 0 && n < len(l.names) && l.names[n] == name[:i] {
			return Kind(n), true
		}
	}
	for i, n := range l.names {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// RawKindByName resolves a kind name to its raw code, for event scripts.
func (l *Language) RawKindByName(name string) (green.Kind, bool) {
	k, ok := l.KindByName(name)
	return l.KindToRaw(k), ok
}

// UniqueName returns the name that KindByName resolves back to kind: the
// plain name when kind is the lowest symbol carrying it, "name#id"
// otherwise.
func (l *Language) UniqueName(kind Kind) string {
	name := l.KindName(kind)
	if k, ok := l.KindByName(name); ok && k == kind {
		return name
	}
	return fmt.Sprintf("%s#%d", name, uint16(kind))
}

// fromSymbol maps a tree-sitter node to a kind of this space. Tree-sitter's
// own error symbol lies far above the grammar's symbols and is folded into
// Error here, so it never reaches KindFromRaw.
func (l *Language) fromSymbol(n *sitter.Node) Kind {
	if n.IsError() {
		return l.Error()
	}
	sym := int(n.Symbol())
	if sym >= int(l.Whitespace()) {
		return l.Error()
	}
	return Kind(sym)
}
