package ast

import (
	"github.com/razorforge-lang/rfc/span"
	"github.com/razorforge-lang/rfc/token"
)

// LiteralExpr wraps one literal token verbatim — the parsed numeric/text
// value and concrete type tag the lexer attached (spec §3) travel with it
// unchanged, rather than being re-derived by the parser.
type LiteralExpr struct {
	Tok  token.Token
	Span span.Span
}

func (e *LiteralExpr) NodeSpan() span.Span { return e.Span }
func (e *LiteralExpr) exprNode()           {}

// IdentExpr is a bare name reference. Its resolved symbol id is attached by
// `sema` in a side table keyed by node identity (spec §3 Lifecycle), not
// stored here — the AST stays immutable once built.
type IdentExpr struct {
	Name string
	Span span.Span
}

func (e *IdentExpr) NodeSpan() span.Span { return e.Span }
func (e *IdentExpr) exprNode()           {}

// BinaryExpr's Op is the lexical operator Kind directly (Plus, PlusWrap,
// Lt, LogicalAnd, ...) rather than a duplicate operator enum — token.Kind
// already distinguishes the overflow-variant families spec §4.B/§4.E.4 need.
type BinaryExpr struct {
	Op    token.Kind
	Left  Expr
	Right Expr
	Span  span.Span
}

func (e *BinaryExpr) NodeSpan() span.Span { return e.Span }
func (e *BinaryExpr) exprNode()           {}

// UnaryExpr covers prefix `-`, `~`, `not`/`!`.
type UnaryExpr struct {
	Op      token.Kind
	Operand Expr
	Span    span.Span
}

func (e *UnaryExpr) NodeSpan() span.Span { return e.Span }
func (e *UnaryExpr) exprNode()           {}

// CallExpr is a plain function call `callee(args...)`.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Span   span.Span
}

func (e *CallExpr) NodeSpan() span.Span { return e.Span }
func (e *CallExpr) exprNode()           {}

// MethodCallExpr is `receiver.method(args...)` with no generic arguments.
type MethodCallExpr struct {
	Receiver Expr
	Method   string
	Args     []Expr
	Span     span.Span
}

func (e *MethodCallExpr) NodeSpan() span.Span { return e.Span }
func (e *MethodCallExpr) exprNode()           {}

// GenericMethodCallExpr is `receiver.method<T, ...>(args)` or the free-name
// form `name<T, ...>(args)` (Receiver nil). The parser only produces this
// node once it has committed to the generic reading of a balanced `<...>`
// followed by `(` or `!` (spec §4.D).
type GenericMethodCallExpr struct {
	Receiver Expr // nil for the free-name form
	Method   string
	TypeArgs []TypeExpr
	Args     []Expr
	Span     span.Span
}

func (e *GenericMethodCallExpr) NodeSpan() span.Span { return e.Span }
func (e *GenericMethodCallExpr) exprNode()           {}

// IndexExpr is `x[i]`.
type IndexExpr struct {
	X     Expr
	Index Expr
	Span  span.Span
}

func (e *IndexExpr) NodeSpan() span.Span { return e.Span }
func (e *IndexExpr) exprNode()           {}

// FieldAccessExpr is `x.field`.
type FieldAccessExpr struct {
	X     Expr
	Field string
	Span  span.Span
}

func (e *FieldAccessExpr) NodeSpan() span.Span { return e.Span }
func (e *FieldAccessExpr) exprNode()           {}

// RangeExpr lowers `a to b [by s]` (spec §4.D). Step is nil when `by` is
// omitted (implicit step of 1).
type RangeExpr struct {
	Start Expr
	End   Expr
	Step  Expr
	Span  span.Span
}

func (e *RangeExpr) NodeSpan() span.Span { return e.Span }
func (e *RangeExpr) exprNode()           {}

// ConditionalExpr is the expression-level `if A then B else C` form (spec
// §4.D), distinct from the statement-level IfStmt.
type ConditionalExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	Span span.Span
}

func (e *ConditionalExpr) NodeSpan() span.Span { return e.Span }
func (e *ConditionalExpr) exprNode()           {}

// LambdaExpr is an anonymous function value.
type LambdaExpr struct {
	Params []Param
	Body   Expr
	Span   span.Span
}

func (e *LambdaExpr) NodeSpan() span.Span { return e.Span }
func (e *LambdaExpr) exprNode()           {}

// FormatStringPart is one piece of a parsed f"...{expr}..." literal: either a
// decoded literal chunk (Value Expr nil) or a re-parsed sub-expression
// (Chunk empty, Value set) — the lexer hands the parser raw FormatPart text
// per hole (token.FormatPart) and the parser re-tokenizes/re-parses each one.
type FormatStringPart struct {
	Chunk string
	Value Expr
}

// FormatStringExpr is a parsed `f"..."` literal with its interpolation holes
// resolved to sub-expressions.
type FormatStringExpr struct {
	Parts []FormatStringPart
	Span  span.Span
}

func (e *FormatStringExpr) NodeSpan() span.Span { return e.Span }
func (e *FormatStringExpr) exprNode()           {}
