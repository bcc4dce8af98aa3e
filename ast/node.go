// Package ast defines the typed AST node families spec §3/§4.C require:
// declarations, statements, expressions, patterns, and type references. Every
// node carries a span.Span (spec §3 invariant: "every node's span lies within
// the file whose text the lexer consumed"). Nodes are pure data, constructed
// once by the parser and immutable afterward except for the side annotations
// `sema` attaches by node identity and the declarations `variantgen` appends
// to a Program's top-level list (spec §3 "Lifecycle").
//
// Polymorphism is via the generic Visitor[R] in visitor.go rather than type
// switches scattered through `sema`/`codegen`, per spec §9's design note
// ("Polymorphism over AST... tagged unions plus a visitor abstraction
// parameterized by return type").
package ast

import "github.com/razorforge-lang/rfc/span"

// Node is the capability every AST node has in common: a source span.
type Node interface {
	NodeSpan() span.Span
}

// Decl is a top-level or nested declaration.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement inside a function body or block.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// Pattern is a `when` (pattern-match) arm pattern.
type Pattern interface {
	Node
	patternNode()
}

// TypeExpr is a parsed reference to a type (named, pointer, or slice form).
type TypeExpr interface {
	Node
	typeExprNode()
}

// Program is the root node: an ordered list of top-level declarations.
// `variantgen` (spec §4.F) may append synthesized declarations to Decls
// after parsing; `sema` never removes or reorders entries.
type Program struct {
	File  string
	Decls []Decl
	Span  span.Span
}

func (p *Program) NodeSpan() span.Span { return p.Span }
