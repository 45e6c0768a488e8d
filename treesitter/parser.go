package treesitter

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/cst/green"
	"github.com/arjunmahishi/cst/syntax"
)

// Parser parses source with one grammar into green trees. A Parser is not
// safe for concurrent use; create one per goroutine.
type Parser struct {
	parser *sitter.Parser
	lang   *Language
	cache  *green.NodeCache
}

// NewParser creates a parser for the given kind space. A non-nil cache is
// used to intern the produced trees and may be shared between parsers.
func NewParser(lang *Language, cache *green.NodeCache) *Parser {
	p := sitter.NewParser()
	p.SetLanguage(lang.grammar.TreeSitterLang())
	return &Parser{
		parser: p,
		lang:   lang,
		cache:  cache,
	}
}

// Language returns the parser's kind space.
func (p *Parser) Language() *Language { return p.lang }

// Parse parses source and returns the lossless green tree.
func (p *Parser) Parse(source []byte) *green.Node {
	tree := p.parser.Parse(nil, source)

	var b *green.Builder
	if p.cache != nil {
		b = green.NewBuilderWithCache(p.cache)
	} else {
		b = green.NewBuilder()
	}
	c := &converter{b: b, lang: p.lang, src: source}
	c.root(tree.RootNode())
	return b.Finish()
}

// ParseRoot parses source and returns the root cursor.
func (p *Parser) ParseRoot(source []byte) *syntax.Node[Kind] {
	return syntax.NewRoot[Kind](p.lang, p.Parse(source))
}

type converter struct {
	b    *green.Builder
	lang *Language
	src  []byte
	pos  int
}

func (c *converter) root(n *sitter.Node) {
	c.b.StartNode(c.lang.KindToRaw(c.lang.fromSymbol(n)))
	switch {
	case n.ChildCount() > 0:
		c.children(n)
	case n.EndByte() > n.StartByte():
		c.leaf(n)
	}
	c.gap(len(c.src))
	c.b.FinishNode()
}

func (c *converter) node(n *sitter.Node) {
	if n.ChildCount() == 0 {
		c.leaf(n)
		return
	}
	c.b.StartNode(c.lang.KindToRaw(c.lang.fromSymbol(n)))
	c.children(n)
	c.gap(int(n.EndByte()))
	c.b.FinishNode()
}

func (c *converter) children(n *sitter.Node) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		c.gap(int(child.StartByte()))
		c.node(child)
	}
}

func (c *converter) leaf(n *sitter.Node) {
	start, end := int(n.StartByte()), int(n.EndByte())
	c.gap(start)
	start = max(start, c.pos)
	end = min(max(end, start), len(c.src))
	if start > end {
		return
	}
	c.b.Token(c.lang.KindToRaw(c.lang.fromSymbol(n)), string(c.src[start:end]))
	c.pos = end
}

// gap emits the uncovered text between the current position and upto.
func (c *converter) gap(upto int) {
	upto = min(upto, len(c.src))
	if upto <= c.pos {
		return
	}
	text := string(c.src[c.pos:upto])
	kind := c.lang.Text()
	if strings.TrimSpace(text) == "" {
		kind = c.lang.Whitespace()
	}
	c.b.Token(c.lang.KindToRaw(kind), text)
	c.pos = upto
}
