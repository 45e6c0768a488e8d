package syntax

import (
	"iter"

	"github.com/arjunmahishi/cst/green"
)

// Token is a cursor over a green token.
type Token[K Kind] struct {
	lang   Language[K]
	green  *green.Token
	parent *Node[K]
	index  int
	offset int
}

func (t *Token[K]) Kind() K                     { return t.lang.KindFromRaw(t.green.Kind()) }
func (t *Token[K]) Green() *green.Token         { return t.green }
func (t *Token[K]) Text() string                { return t.green.Text() }
func (t *Token[K]) Parent() *Node[K]            { return t.parent }
func (t *Token[K]) Index() int                  { return t.index }
func (t *Token[K]) Offset() int                 { return t.offset }
func (t *Token[K]) String() string              { return t.green.Text() }
func (t *Token[K]) greenElement() green.Element { return t.green }

func (t *Token[K]) TextRange() TextRange {
	return TextRange{Start: t.offset, End: t.offset + t.green.TextLen()}
}

// IsTrivia reports whether the token is whitespace or a comment.
func (t *Token[K]) IsTrivia() bool {
	return t.lang.IsTrivia(t.Kind())
}

// Equal reports whether t and o are the same position in the same tree.
func (t *Token[K]) Equal(o *Token[K]) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.green == o.green && t.offset == o.offset && t.parent.Root().green == o.parent.Root().green
}

// Ancestors yields every enclosing node from the parent up to the root.
func (t *Token[K]) Ancestors() iter.Seq[*Node[K]] {
	return t.parent.Ancestors()
}

func (t *Token[K]) NextSiblingOrToken() Element[K] { return nextSiblingOrToken[K](t) }
func (t *Token[K]) PrevSiblingOrToken() Element[K] { return prevSiblingOrToken[K](t) }

// NextToken returns the following token in source order, crossing node
// boundaries, or nil at the end of the tree.
func (t *Token[K]) NextToken() *Token[K] {
	var cur Element[K] = t
	for {
		for e := nextSiblingOrToken(cur); e != nil; e = nextSiblingOrToken(e) {
			switch s := e.(type) {
			case *Token[K]:
				return s
			case *Node[K]:
				if first := s.FirstToken(); first != nil {
					return first
				}
			}
		}
		parent := cur.Parent()
		if parent == nil {
			return nil
		}
		cur = parent
	}
}

// PrevToken returns the preceding token in source order, crossing node
// boundaries, or nil at the start of the tree.
func (t *Token[K]) PrevToken() *Token[K] {
	var cur Element[K] = t
	for {
		for e := prevSiblingOrToken(cur); e != nil; e = prevSiblingOrToken(e) {
			switch s := e.(type) {
			case *Token[K]:
				return s
			case *Node[K]:
				if last := s.LastToken(); last != nil {
					return last
				}
			}
		}
		parent := cur.Parent()
		if parent == nil {
			return nil
		}
		cur = parent
	}
}

// NextSignificantToken is NextToken skipping trivia.
func (t *Token[K]) NextSignificantToken() *Token[K] {
	next := t.NextToken()
	for next != nil && next.IsTrivia() {
		next = next.NextToken()
	}
	return next
}

// PrevSignificantToken is PrevToken skipping trivia.
func (t *Token[K]) PrevSignificantToken() *Token[K] {
	prev := t.PrevToken()
	for prev != nil && prev.IsTrivia() {
		prev = prev.PrevToken()
	}
	return prev
}

// ReplaceWith returns the root of a new tree in which this token is
// replaced by replacement. The tree t belongs to is left unchanged.
func (t *Token[K]) ReplaceWith(replacement *green.Token) *Node[K] {
	return replaceAt(t.lang, t.parent, t.index, replacement)
}
