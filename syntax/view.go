package syntax

import (
	"iter"
	"slices"
)

// Helpers for typed views. A view is any type V with a constructor of the
// form func(*Node[K]) (V, bool) that succeeds only for the kinds it accepts.

// HasKind reports whether n is non-nil and its kind is one of kinds.
func HasKind[K Kind](n *Node[K], kinds ...K) bool {
	return n != nil && slices.Contains(kinds, n.Kind())
}

// Child returns the first child node that cast accepts.
func Child[K Kind, V any](n *Node[K], cast func(*Node[K]) (V, bool)) (V, bool) {
	for c := range n.Children() {
		if v, ok := cast(c); ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// ChildrenOf yields every child node that cast accepts, in order.
func ChildrenOf[K Kind, V any](n *Node[K], cast func(*Node[K]) (V, bool)) iter.Seq[V] {
	return func(yield func(V) bool) {
		for c := range n.Children() {
			if v, ok := cast(c); ok && !yield(v) {
				return
			}
		}
	}
}

// ChildToken returns the first child token whose kind is one of kinds, or
// nil.
func ChildToken[K Kind](n *Node[K], kinds ...K) *Token[K] {
	for t := range ChildTokens(n, kinds...) {
		return t
	}
	return nil
}

// ChildTokens yields the child tokens whose kind is one of kinds.
func ChildTokens[K Kind](n *Node[K], kinds ...K) iter.Seq[*Token[K]] {
	return func(yield func(*Token[K]) bool) {
		for e := range n.ChildrenWithTokens() {
			t, ok := e.(*Token[K])
			if !ok || !slices.Contains(kinds, t.Kind()) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}
