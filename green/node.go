// Package green implements the immutable, position-agnostic layer of the syntax tree.
//
// Nodes and tokens never change after construction and carry no parent
// pointers, so any subtree may be shared by several trees at once. Edits
// produce new roots by copying only the path from the root to the edited
// element.
package green

import (
	"fmt"
	"strings"
)

// Kind is the raw numeric code of a node or token kind.
type Kind uint16

// Element is either a *Node or a *Token.
type Element interface {
	Kind() Kind
	// TextLen returns the length in bytes of the covered text.
	TextLen() int
	// Text reconstructs the covered text.
	Text() string

	writeText(sb *strings.Builder)
}

// Token is a leaf: a kind plus the exact source text it covers.
type Token struct {
	kind Kind
	text string
}

// NewToken creates a token.
func NewToken(kind Kind, text string) *Token {
	return &Token{kind: kind, text: text}
}

func (t *Token) Kind() Kind   { return t.kind }
func (t *Token) TextLen() int { return len(t.text) }
func (t *Token) Text() string { return t.text }

func (t *Token) writeText(sb *strings.Builder) {
	sb.WriteString(t.text)
}

func (t *Token) String() string {
	return fmt.Sprintf("%d %q", t.kind, t.text)
}

// Node is an interior element: a kind plus an ordered list of children.
type Node struct {
	kind     Kind
	textLen  int
	children []Element
}

// NewNode creates a node owning the given children. The slice is retained
// and must not be modified by the caller afterwards.
func NewNode(kind Kind, children []Element) *Node {
	n := &Node{kind: kind, children: children}
	for _, c := range children {
		n.textLen += c.TextLen()
	}
	return n
}

func (n *Node) Kind() Kind   { return n.kind }
func (n *Node) TextLen() int { return n.textLen }

// Text concatenates the text of every descendant token.
func (n *Node) Text() string {
	var sb strings.Builder
	sb.Grow(n.textLen)
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	for _, c := range n.children {
		c.writeText(sb)
	}
}

func (n *Node) String() string {
	return n.Text()
}

// ChildCount returns the number of immediate children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th child, or nil if i is out of range.
func (n *Node) Child(i int) Element {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns the children. The returned slice is shared with the node
// and must be treated as read-only.
func (n *Node) Children() []Element { return n.children }

// ReplaceChild returns a new node with the i-th child swapped for elem.
// Every other child is shared with n. It panics if i is out of range.
func (n *Node) ReplaceChild(i int, elem Element) *Node {
	if i < 0 || i >= len(n.children) {
		panic(fmt.Sprintf("green: child index %d out of range [0, %d)", i, len(n.children)))
	}
	children := make([]Element, len(n.children))
	copy(children, n.children)
	children[i] = elem
	return NewNode(n.kind, children)
}

// Replace returns a new root in which the element reached by following
// path (child indexes from n downwards) is replaced by elem. Only the nodes
// on the path are reallocated. An empty path replaces n itself and requires
// elem to be a *Node.
func (n *Node) Replace(path []int, elem Element) *Node {
	if len(path) == 0 {
		node, ok := elem.(*Node)
		if !ok {
			panic("green: replacing a root requires a node")
		}
		return node
	}
	if len(path) == 1 {
		return n.ReplaceChild(path[0], elem)
	}
	child, ok := n.Child(path[0]).(*Node)
	if !ok {
		panic(fmt.Sprintf("green: path step %d does not lead to a node", path[0]))
	}
	return n.ReplaceChild(path[0], child.Replace(path[1:], elem))
}

// Equal reports whether a and b have the same kinds, shape and text.
func Equal(a, b Element) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() || a.TextLen() != b.TextLen() {
		return false
	}
	switch x := a.(type) {
	case *Token:
		y, ok := b.(*Token)
		return ok && (x == y || x.text == y.text)
	case *Node:
		y, ok := b.(*Node)
		if !ok || len(x.children) != len(y.children) {
			return false
		}
		if x == y {
			return true
		}
		for i := range x.children {
			if !Equal(x.children[i], y.children[i]) {
				return false
			}
		}
		return true
	}
	return false
}
