package syntax

import (
	"iter"

	"github.com/arjunmahishi/cst/green"
)

// Element is either a *Node or a *Token.
type Element[K Kind] interface {
	Kind() K
	TextRange() TextRange
	Text() string
	// Parent returns the enclosing node, or nil at the root.
	Parent() *Node[K]
	// Index returns the position among the parent's children.
	Index() int

	greenElement() green.Element
}

// Node is a cursor over a green node.
type Node[K Kind] struct {
	lang   Language[K]
	green  *green.Node
	parent *Node[K]
	index  int
	offset int
}

// NewRoot creates the root cursor of a green tree.
func NewRoot[K Kind](lang Language[K], root *green.Node) *Node[K] {
	return &Node[K]{lang: lang, green: root}
}

func (n *Node[K]) Kind() K                     { return n.lang.KindFromRaw(n.green.Kind()) }
func (n *Node[K]) Green() *green.Node          { return n.green }
func (n *Node[K]) Language() Language[K]       { return n.lang }
func (n *Node[K]) Parent() *Node[K]            { return n.parent }
func (n *Node[K]) Index() int                  { return n.index }
func (n *Node[K]) Offset() int                 { return n.offset }
func (n *Node[K]) greenElement() green.Element { return n.green }

func (n *Node[K]) TextRange() TextRange {
	return TextRange{Start: n.offset, End: n.offset + n.green.TextLen()}
}

// Text reconstructs the covered source text. The result is not cached.
func (n *Node[K]) Text() string { return n.green.Text() }

func (n *Node[K]) String() string { return n.Text() }

// Root walks the parent chain up to the root.
func (n *Node[K]) Root() *Node[K] {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Equal reports whether n and o are the same position in the same tree.
func (n *Node[K]) Equal(o *Node[K]) bool {
	if n == nil || o == nil {
		return n == o
	}
	return n.green == o.green && n.offset == o.offset && n.Root().green == o.Root().green
}

func (n *Node[K]) element(i, offset int) Element[K] {
	switch g := n.green.Child(i).(type) {
	case *green.Node:
		return &Node[K]{lang: n.lang, green: g, parent: n, index: i, offset: offset}
	case *green.Token:
		return &Token[K]{lang: n.lang, green: g, parent: n, index: i, offset: offset}
	}
	return nil
}

// ChildrenWithTokens yields the immediate children, nodes and tokens
// interleaved in source order.
func (n *Node[K]) ChildrenWithTokens() iter.Seq[Element[K]] {
	return func(yield func(Element[K]) bool) {
		offset := n.offset
		for i, c := range n.green.Children() {
			if !yield(n.element(i, offset)) {
				return
			}
			offset += c.TextLen()
		}
	}
}

// SignificantChildrenWithTokens is ChildrenWithTokens without trivia.
func (n *Node[K]) SignificantChildrenWithTokens() iter.Seq[Element[K]] {
	return func(yield func(Element[K]) bool) {
		for e := range n.ChildrenWithTokens() {
			if n.lang.IsTrivia(e.Kind()) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Children yields the immediate child nodes, skipping tokens.
func (n *Node[K]) Children() iter.Seq[*Node[K]] {
	return func(yield func(*Node[K]) bool) {
		for e := range n.ChildrenWithTokens() {
			if c, ok := e.(*Node[K]); ok && !yield(c) {
				return
			}
		}
	}
}

// reversed yields the immediate children from last to first.
func (n *Node[K]) reversed() iter.Seq[Element[K]] {
	return func(yield func(Element[K]) bool) {
		children := n.green.Children()
		offset := n.offset + n.green.TextLen()
		for i := len(children) - 1; i >= 0; i-- {
			offset -= children[i].TextLen()
			if !yield(n.element(i, offset)) {
				return
			}
		}
	}
}

func (n *Node[K]) FirstChild() *Node[K] {
	for c := range n.Children() {
		return c
	}
	return nil
}

func (n *Node[K]) LastChild() *Node[K] {
	for e := range n.reversed() {
		if c, ok := e.(*Node[K]); ok {
			return c
		}
	}
	return nil
}

func (n *Node[K]) FirstChildOrToken() Element[K] {
	if n.green.ChildCount() == 0 {
		return nil
	}
	return n.element(0, n.offset)
}

func (n *Node[K]) LastChildOrToken() Element[K] {
	for e := range n.reversed() {
		return e
	}
	return nil
}

// FirstToken returns the first descendant token, or nil if the subtree
// holds no tokens.
func (n *Node[K]) FirstToken() *Token[K] {
	for e := range n.ChildrenWithTokens() {
		switch c := e.(type) {
		case *Token[K]:
			return c
		case *Node[K]:
			if t := c.FirstToken(); t != nil {
				return t
			}
		}
	}
	return nil
}

// LastToken returns the last descendant token, or nil if the subtree holds
// no tokens.
func (n *Node[K]) LastToken() *Token[K] {
	for e := range n.reversed() {
		switch c := e.(type) {
		case *Token[K]:
			return c
		case *Node[K]:
			if t := c.LastToken(); t != nil {
				return t
			}
		}
	}
	return nil
}

func (n *Node[K]) NextSiblingOrToken() Element[K] { return nextSiblingOrToken[K](n) }
func (n *Node[K]) PrevSiblingOrToken() Element[K] { return prevSiblingOrToken[K](n) }

// NextSibling returns the next sibling node, skipping tokens.
func (n *Node[K]) NextSibling() *Node[K] {
	for e := nextSiblingOrToken[K](n); e != nil; e = nextSiblingOrToken(e) {
		if c, ok := e.(*Node[K]); ok {
			return c
		}
	}
	return nil
}

// PrevSibling returns the previous sibling node, skipping tokens.
func (n *Node[K]) PrevSibling() *Node[K] {
	for e := prevSiblingOrToken[K](n); e != nil; e = prevSiblingOrToken(e) {
		if c, ok := e.(*Node[K]); ok {
			return c
		}
	}
	return nil
}

// Ancestors yields n and then every enclosing node up to the root.
func (n *Node[K]) Ancestors() iter.Seq[*Node[K]] {
	return func(yield func(*Node[K]) bool) {
		for cur := n; cur != nil; cur = cur.parent {
			if !yield(cur) {
				return
			}
		}
	}
}

// Descendants yields n and every node below it in preorder.
func (n *Node[K]) Descendants() iter.Seq[*Node[K]] {
	return func(yield func(*Node[K]) bool) {
		n.descend(func(e Element[K]) bool {
			if c, ok := e.(*Node[K]); ok {
				return yield(c)
			}
			return true
		})
	}
}

// DescendantsWithTokens yields n and every node and token below it in
// preorder.
func (n *Node[K]) DescendantsWithTokens() iter.Seq[Element[K]] {
	return func(yield func(Element[K]) bool) {
		n.descend(yield)
	}
}

// Tokens yields every descendant token in source order.
func (n *Node[K]) Tokens() iter.Seq[*Token[K]] {
	return func(yield func(*Token[K]) bool) {
		n.descend(func(e Element[K]) bool {
			if t, ok := e.(*Token[K]); ok {
				return yield(t)
			}
			return true
		})
	}
}

func (n *Node[K]) descend(yield func(Element[K]) bool) bool {
	if !yield(n) {
		return false
	}
	for e := range n.ChildrenWithTokens() {
		switch c := e.(type) {
		case *Node[K]:
			if !c.descend(yield) {
				return false
			}
		default:
			if !yield(e) {
				return false
			}
		}
	}
	return true
}

// TokenAtOffset returns the token covering offset. When offset falls on a
// boundary between two tokens the right one is returned; at the very end of
// the node the last token is returned. It returns nil when offset lies
// outside the node.
func (n *Node[K]) TokenAtOffset(offset int) *Token[K] {
	r := n.TextRange()
	if offset < r.Start || offset > r.End {
		return nil
	}
	if offset == r.End {
		return n.LastToken()
	}
	cur := n
	for {
		var next *Node[K]
		for e := range cur.ChildrenWithTokens() {
			if !e.TextRange().Contains(offset) {
				continue
			}
			if t, ok := e.(*Token[K]); ok {
				return t
			}
			next = e.(*Node[K])
			break
		}
		if next == nil {
			return nil
		}
		cur = next
	}
}

// CoveringElement returns the deepest element whose range contains r. It
// returns nil when r is not inside n. An empty range on the boundary between
// two elements picks the right one, as TokenAtOffset does.
func (n *Node[K]) CoveringElement(r TextRange) Element[K] {
	if !n.TextRange().ContainsRange(r) {
		return nil
	}
	var cur Element[K] = n
	for {
		node, ok := cur.(*Node[K])
		if !ok {
			return cur
		}
		var next Element[K]
		for e := range node.ChildrenWithTokens() {
			er := e.TextRange()
			if er.Start > r.Start {
				break
			}
			if !er.ContainsRange(r) {
				continue
			}
			if r.Len() == 0 {
				next = e
				continue
			}
			if er.Len() > 0 {
				next = e
				break
			}
		}
		if next == nil {
			return cur
		}
		cur = next
	}
}

// ReplaceWith returns the root of a new tree in which this node is replaced
// by replacement. Only the ancestors of n are reallocated; the tree n
// belongs to is left unchanged.
func (n *Node[K]) ReplaceWith(replacement *green.Node) *Node[K] {
	return replaceAt(n.lang, n.parent, n.index, replacement)
}

// ReplaceChild returns the root of a new tree in which the i-th child of n
// is replaced by elem.
func (n *Node[K]) ReplaceChild(i int, elem green.Element) *Node[K] {
	return replaceAt(n.lang, n, i, elem)
}

// replaceAt rebuilds the path from parent up to the root with the child at
// index swapped for elem.
func replaceAt[K Kind](lang Language[K], parent *Node[K], index int, elem green.Element) *Node[K] {
	for cur := parent; cur != nil; cur = cur.parent {
		elem = cur.green.ReplaceChild(index, elem)
		index = cur.index
	}
	root, ok := elem.(*green.Node)
	if !ok {
		panic("syntax: a root can only be replaced by a node")
	}
	return NewRoot(lang, root)
}

func nextSiblingOrToken[K Kind](e Element[K]) Element[K] {
	parent := e.Parent()
	if parent == nil {
		return nil
	}
	i := e.Index() + 1
	if i >= parent.green.ChildCount() {
		return nil
	}
	return parent.element(i, e.TextRange().End)
}

func prevSiblingOrToken[K Kind](e Element[K]) Element[K] {
	parent := e.Parent()
	if parent == nil {
		return nil
	}
	i := e.Index() - 1
	if i < 0 {
		return nil
	}
	return parent.element(i, e.TextRange().Start-parent.green.Child(i).TextLen())
}
