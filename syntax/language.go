// Package syntax provides positioned, parent-aware cursors over green trees.
//
// A cursor pairs an immutable green element with its parent cursor, its
// index among its siblings and its absolute byte offset. Cursors are derived
// top-down from a root on demand and are meant for use by a single
// goroutine; the green tree underneath may be shared freely.
package syntax

import "github.com/arjunmahishi/cst/green"

// Kind is the constraint satisfied by a grammar's kind enumeration.
type Kind interface {
	~uint16
}

// Language binds a closed kind enumeration to raw green kinds.
type Language[K Kind] interface {
	// KindFromRaw converts a raw code to a kind. Implementations panic when
	// raw exceeds the sentinel, since that means two kind spaces were mixed.
	KindFromRaw(raw green.Kind) K

	// KindToRaw converts a kind to its raw code.
	KindToRaw(kind K) green.Kind

	// IsTrivia reports whether kind is whitespace or a comment.
	IsTrivia(kind K) bool

	// KindName returns a human-readable name for kind.
	KindName(kind K) string
}

// TextRange is a half-open byte interval [Start, End).
type TextRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the length of the range.
func (r TextRange) Len() int { return r.End - r.Start }

// Contains reports whether offset lies inside the range.
func (r TextRange) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

// ContainsRange reports whether other lies entirely inside r.
func (r TextRange) ContainsRange(other TextRange) bool {
	return r.Start <= other.Start && other.End <= r.End
}
