// Package purescript binds the PureScript kind space to the generic syntax
// tree.
package purescript

import (
	"fmt"

	"github.com/arjunmahishi/cst/green"
	"github.com/arjunmahishi/cst/syntax"
)

// Node, Token and Element are the cursor types specialized to PureScript.
type (
	Node    = syntax.Node[SyntaxKind]
	Token   = syntax.Token[SyntaxKind]
	Element = syntax.Element[SyntaxKind]
)

// Language implements syntax.Language for SyntaxKind.
type Language struct{}

var _ syntax.Language[SyntaxKind] = Language{}

// KindFromRaw panics if raw is above Sentinel.
func (Language) KindFromRaw(raw green.Kind) SyntaxKind {
	if raw > green.Kind(Sentinel) {
		panic(fmt.Sprintf("purescript: raw kind %d is outside the kind space (sentinel %d)", raw, Sentinel))
	}
	return SyntaxKind(raw)
}

func (Language) KindToRaw(kind SyntaxKind) green.Kind { return green.Kind(kind) }

func (Language) IsTrivia(kind SyntaxKind) bool { return kind.IsTrivia() }

func (Language) KindName(kind SyntaxKind) string { return kind.String() }

// NewRoot creates a PureScript root cursor over a green tree.
func NewRoot(root *green.Node) *Node {
	return syntax.NewRoot[SyntaxKind](Language{}, root)
}

// Raw returns the green code of the kind, for use with green.Builder.
func (k SyntaxKind) Raw() green.Kind { return green.Kind(k) }

// IsTrivia reports whether the kind is whitespace or a comment.
func (k SyntaxKind) IsTrivia() bool {
	switch k {
	case Whitespace, LineComment, BlockComment:
		return true
	}
	return false
}

func (k SyntaxKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("SyntaxKind(%d)", uint16(k))
}

var kindsByName = func() map[string]SyntaxKind {
	m := make(map[string]SyntaxKind, len(kindNames))
	for i, name := range kindNames {
		m[name] = SyntaxKind(i)
	}
	return m
}()

// KindByName looks up a kind by its Go identifier, e.g. "ModuleKw".
func KindByName(name string) (SyntaxKind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// RawKindByName resolves a kind name to its raw code, for event scripts.
func RawKindByName(name string) (green.Kind, bool) {
	k, ok := KindByName(name)
	return k.Raw(), ok
}

// RawKindName names a raw code, for event scripts.
func RawKindName(raw green.Kind) string {
	return SyntaxKind(raw).String()
}
