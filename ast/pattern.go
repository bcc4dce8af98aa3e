package ast

import "github.com/razorforge-lang/rfc/span"

// LiteralPattern matches a literal value exactly.
type LiteralPattern struct {
	Value Expr // a *LiteralExpr
	Span  span.Span
}

func (p *LiteralPattern) NodeSpan() span.Span { return p.Span }
func (p *LiteralPattern) patternNode()        {}

// WildcardPattern is `_`: matches anything, binds nothing. Required by sema
// exhaustiveness checking as the universal fallback arm (spec §4.E.4).
type WildcardPattern struct {
	Span span.Span
}

func (p *WildcardPattern) NodeSpan() span.Span { return p.Span }
func (p *WildcardPattern) patternNode()        {}

// BindingPattern matches anything and binds it to Name.
type BindingPattern struct {
	Name string
	Span span.Span
}

func (p *BindingPattern) NodeSpan() span.Span { return p.Span }
func (p *BindingPattern) patternNode()        {}

// TypeTagPattern is `is T name`: matches a variant case by type tag and
// binds the payload to Name (empty if not bound).
type TypeTagPattern struct {
	Type TypeExpr
	Name string
	Span span.Span
}

func (p *TypeTagPattern) NodeSpan() span.Span { return p.Span }
func (p *TypeTagPattern) patternNode()        {}

// TuplePattern destructures a fixed-arity tuple positionally.
type TuplePattern struct {
	Elems []Pattern
	Span  span.Span
}

func (p *TuplePattern) NodeSpan() span.Span { return p.Span }
func (p *TuplePattern) patternNode()        {}

// RecordFieldPattern binds one named field of a RecordDestructurePattern.
type RecordFieldPattern struct {
	Field   string
	Binding Pattern
}

// RecordDestructurePattern destructures a record/entity by field name.
type RecordDestructurePattern struct {
	TypeName string
	Fields   []RecordFieldPattern
	Span     span.Span
}

func (p *RecordDestructurePattern) NodeSpan() span.Span { return p.Span }
func (p *RecordDestructurePattern) patternNode()        {}
