// Package ast provides typed views over PureScript syntax nodes.
//
// Every view wraps a *purescript.Node whose kind matches the production the
// view represents. Views are obtained with the CastX functions, which return
// false for any other kind; a failed cast is an ordinary outcome. Accessors
// are built purely from cursor navigation and allocate no storage of their
// own.
package ast

import (
	"iter"
	"strings"

	"github.com/arjunmahishi/cst/purescript"
	"github.com/arjunmahishi/cst/syntax"
)

type (
	Node  = purescript.Node
	Token = purescript.Token
)

// identKinds are the token kinds that spell a name.
var identKinds = []purescript.SyntaxKind{purescript.Upper, purescript.Lower, purescript.Operator}

// Module is the root production of a source file.
type Module struct{ node *Node }

func CastModule(n *Node) (Module, bool) {
	if !syntax.HasKind(n, purescript.Module) {
		return Module{}, false
	}
	return Module{n}, true
}

func (m Module) Syntax() *Node { return m.node }

func (m Module) Header() (ModuleHeader, bool) {
	return syntax.Child(m.node, CastModuleHeader)
}

func (m Module) Imports() iter.Seq[ImportDeclaration] {
	return syntax.ChildrenOf(m.node, CastImportDeclaration)
}

func (m Module) ValueDeclarations() iter.Seq[ValueDeclaration] {
	return syntax.ChildrenOf(m.node, CastValueDeclaration)
}

// Errors yields the Error nodes directly below the module.
func (m Module) Errors() iter.Seq[Error] {
	return syntax.ChildrenOf(m.node, CastError)
}

// ModuleHeader is `module Name (exports) where`.
type ModuleHeader struct{ node *Node }

func CastModuleHeader(n *Node) (ModuleHeader, bool) {
	if !syntax.HasKind(n, purescript.ModuleHeader) {
		return ModuleHeader{}, false
	}
	return ModuleHeader{n}, true
}

func (h ModuleHeader) Syntax() *Node { return h.node }

func (h ModuleHeader) ModuleKw() *Token {
	return syntax.ChildToken(h.node, purescript.ModuleKw)
}

func (h ModuleHeader) Name() (ModuleName, bool) {
	return syntax.Child(h.node, CastModuleName)
}

func (h ModuleHeader) Exports() (ExportList, bool) {
	return syntax.Child(h.node, CastExportList)
}

func (h ModuleHeader) WhereKw() *Token {
	return syntax.ChildToken(h.node, purescript.WhereKw)
}

// ModuleName is a dotted sequence of upper-case segments.
type ModuleName struct{ node *Node }

func CastModuleName(n *Node) (ModuleName, bool) {
	if !syntax.HasKind(n, purescript.ModuleName) {
		return ModuleName{}, false
	}
	return ModuleName{n}, true
}

func (m ModuleName) Syntax() *Node { return m.node }

// Segments yields the Upper tokens of the name, without the separating
// periods.
func (m ModuleName) Segments() iter.Seq[*Token] {
	return syntax.ChildTokens(m.node, purescript.Upper)
}

// String joins the segments with periods, dropping any trivia in between.
func (m ModuleName) String() string {
	return joinSegments(m.Segments())
}

// ExportList is the parenthesized list after the module name.
type ExportList struct{ node *Node }

func CastExportList(n *Node) (ExportList, bool) {
	if !syntax.HasKind(n, purescript.ExportList) {
		return ExportList{}, false
	}
	return ExportList{n}, true
}

func (e ExportList) Syntax() *Node { return e.node }

func (e ExportList) Names() iter.Seq[AnyName] {
	return syntax.ChildrenOf(e.node, CastAnyName)
}

// ImportList is the parenthesized list of an import declaration.
type ImportList struct{ node *Node }

func CastImportList(n *Node) (ImportList, bool) {
	if !syntax.HasKind(n, purescript.ImportList) {
		return ImportList{}, false
	}
	return ImportList{n}, true
}

func (l ImportList) Syntax() *Node { return l.node }

func (l ImportList) Names() iter.Seq[AnyName] {
	return syntax.ChildrenOf(l.node, CastAnyName)
}

// ImportDeclaration is `import M (names) as A`.
type ImportDeclaration struct{ node *Node }

func CastImportDeclaration(n *Node) (ImportDeclaration, bool) {
	if !syntax.HasKind(n, purescript.ImportDeclaration) {
		return ImportDeclaration{}, false
	}
	return ImportDeclaration{n}, true
}

func (d ImportDeclaration) Syntax() *Node { return d.node }

func (d ImportDeclaration) ImportKw() *Token {
	return syntax.ChildToken(d.node, purescript.ImportKw)
}

// ModuleName returns the imported module, the first module name before any
// `as` keyword.
func (d ImportDeclaration) ModuleName() (ModuleName, bool) {
	as := d.AsKw()
	for name := range syntax.ChildrenOf(d.node, CastModuleName) {
		if as == nil || name.node.Offset() < as.Offset() {
			return name, true
		}
	}
	return ModuleName{}, false
}

func (d ImportDeclaration) ImportList() (ImportList, bool) {
	return syntax.Child(d.node, CastImportList)
}

func (d ImportDeclaration) AsKw() *Token {
	return syntax.ChildToken(d.node, purescript.AsKw)
}

// Alias returns the module name following `as`.
func (d ImportDeclaration) Alias() (ModuleName, bool) {
	as := d.AsKw()
	if as == nil {
		return ModuleName{}, false
	}
	for name := range syntax.ChildrenOf(d.node, CastModuleName) {
		if name.node.Offset() > as.Offset() {
			return name, true
		}
	}
	return ModuleName{}, false
}

// QualifiedPrefix is the `Data.Maybe.` part of a qualified name.
type QualifiedPrefix struct{ node *Node }

func CastQualifiedPrefix(n *Node) (QualifiedPrefix, bool) {
	if !syntax.HasKind(n, purescript.QualifiedPrefix) {
		return QualifiedPrefix{}, false
	}
	return QualifiedPrefix{n}, true
}

func (p QualifiedPrefix) Syntax() *Node { return p.node }

func (p QualifiedPrefix) Segments() iter.Seq[*Token] {
	return syntax.ChildTokens(p.node, purescript.Upper)
}

func (p QualifiedPrefix) String() string {
	return joinSegments(p.Segments())
}

// QualifiedName is a name with an optional module prefix.
type QualifiedName struct{ node *Node }

func CastQualifiedName(n *Node) (QualifiedName, bool) {
	if !syntax.HasKind(n, purescript.QualifiedName) {
		return QualifiedName{}, false
	}
	return QualifiedName{n}, true
}

func (q QualifiedName) Syntax() *Node { return q.node }

func (q QualifiedName) Prefix() (QualifiedPrefix, bool) {
	return syntax.Child(q.node, CastQualifiedPrefix)
}

// Ident returns the unqualified identifier, either a direct token child or
// the identifier of a nested Name or NameRef.
func (q QualifiedName) Ident() *Token {
	if t := syntax.ChildToken(q.node, identKinds...); t != nil {
		return t
	}
	if n, ok := syntax.Child(q.node, CastName); ok {
		return n.Ident()
	}
	if r, ok := syntax.Child(q.node, CastNameRef); ok {
		return r.Ident()
	}
	return nil
}

// Name is a simple binding occurrence.
type Name struct{ node *Node }

func CastName(n *Node) (Name, bool) {
	if !syntax.HasKind(n, purescript.Name) {
		return Name{}, false
	}
	return Name{n}, true
}

func (n Name) Syntax() *Node { return n.node }

func (n Name) Ident() *Token {
	return syntax.ChildToken(n.node, identKinds...)
}

// NameRef is a simple use occurrence.
type NameRef struct{ node *Node }

func CastNameRef(n *Node) (NameRef, bool) {
	if !syntax.HasKind(n, purescript.NameRef) {
		return NameRef{}, false
	}
	return NameRef{n}, true
}

func (r NameRef) Syntax() *Node { return r.node }

func (r NameRef) Ident() *Token {
	return syntax.ChildToken(r.node, identKinds...)
}

// AnyName accepts either a QualifiedName or a simple Name.
type AnyName struct{ node *Node }

func CastAnyName(n *Node) (AnyName, bool) {
	if !syntax.HasKind(n, purescript.QualifiedName, purescript.Name) {
		return AnyName{}, false
	}
	return AnyName{n}, true
}

func (a AnyName) Syntax() *Node { return a.node }

func (a AnyName) Qualified() (QualifiedName, bool) { return CastQualifiedName(a.node) }

func (a AnyName) Simple() (Name, bool) { return CastName(a.node) }

func (a AnyName) Ident() *Token {
	if q, ok := a.Qualified(); ok {
		return q.Ident()
	}
	return Name{a.node}.Ident()
}

// String renders the name with its prefix, if any, and without trivia.
func (a AnyName) String() string {
	var sb strings.Builder
	if q, ok := a.Qualified(); ok {
		if p, ok := q.Prefix(); ok {
			sb.WriteString(p.String())
			sb.WriteByte('.')
		}
	}
	if id := a.Ident(); id != nil {
		sb.WriteString(id.Text())
	}
	return sb.String()
}

func joinSegments(segments iter.Seq[*Token]) string {
	var parts []string
	for s := range segments {
		parts = append(parts, s.Text())
	}
	return strings.Join(parts, ".")
}
