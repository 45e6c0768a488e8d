package ast

import (
	"iter"

	"github.com/arjunmahishi/cst/purescript"
	"github.com/arjunmahishi/cst/syntax"
)

var expressionKinds = []purescript.SyntaxKind{
	purescript.AdoExpression,
	purescript.DoExpression,
	purescript.ApplicationExpression,
	purescript.ConstructorExpression,
	purescript.LiteralExpression,
	purescript.IfThenElseExpression,
	purescript.InfixChain,
	purescript.NegateExpression,
	purescript.OperatorChain,
	purescript.OperatorNameExpression,
	purescript.ParenthesizedExpression,
	purescript.TernaryExpression,
	purescript.TypedExpression,
	purescript.VariableExpression,
}

// Expression accepts any expression production.
type Expression struct{ node *Node }

func CastExpression(n *Node) (Expression, bool) {
	if !syntax.HasKind(n, expressionKinds...) {
		return Expression{}, false
	}
	return Expression{n}, true
}

func (e Expression) Syntax() *Node { return e.node }

func (e Expression) Kind() purescript.SyntaxKind { return e.node.Kind() }

func (e Expression) Application() (ApplicationExpression, bool) {
	return CastApplicationExpression(e.node)
}

// ApplicationExpression is a head expression applied to arguments.
type ApplicationExpression struct{ node *Node }

func CastApplicationExpression(n *Node) (ApplicationExpression, bool) {
	if !syntax.HasKind(n, purescript.ApplicationExpression) {
		return ApplicationExpression{}, false
	}
	return ApplicationExpression{n}, true
}

func (a ApplicationExpression) Syntax() *Node { return a.node }

func (a ApplicationExpression) Head() (Expression, bool) {
	return syntax.Child(a.node, CastExpression)
}

func (a ApplicationExpression) Arguments() iter.Seq[Argument] {
	return syntax.ChildrenOf(a.node, CastArgument)
}

// Argument accepts a term argument or a visible type argument.
type Argument struct{ node *Node }

func CastArgument(n *Node) (Argument, bool) {
	if !syntax.HasKind(n, purescript.TermArgument, purescript.TypeArgument) {
		return Argument{}, false
	}
	return Argument{n}, true
}

func (a Argument) Syntax() *Node { return a.node }

func (a Argument) IsType() bool { return a.node.Kind() == purescript.TypeArgument }

func (a Argument) Expression() (Expression, bool) {
	return syntax.Child(a.node, CastExpression)
}

// ValueDeclaration is `name = expression`.
type ValueDeclaration struct{ node *Node }

func CastValueDeclaration(n *Node) (ValueDeclaration, bool) {
	if !syntax.HasKind(n, purescript.ValueDeclaration) {
		return ValueDeclaration{}, false
	}
	return ValueDeclaration{n}, true
}

func (d ValueDeclaration) Syntax() *Node { return d.node }

func (d ValueDeclaration) Name() (Name, bool) {
	return syntax.Child(d.node, CastName)
}

func (d ValueDeclaration) Equal() *Token {
	return syntax.ChildToken(d.node, purescript.Equal)
}

func (d ValueDeclaration) Body() (Expression, bool) {
	return syntax.Child(d.node, CastExpression)
}

// Error wraps a span the parser could not make sense of.
type Error struct{ node *Node }

func CastError(n *Node) (Error, bool) {
	if !syntax.HasKind(n, purescript.Error) {
		return Error{}, false
	}
	return Error{n}, true
}

func (e Error) Syntax() *Node { return e.node }

func (e Error) Text() string { return e.node.Text() }
