package ast

import "github.com/razorforge-lang/rfc/span"

// NamedType is a reference to a type by name, with optional generic
// arguments (`T<A, B>`). A bare template name at a use-site that requires
// instantiation is diagnosed by sema pass 3 (spec §4.E.3).
type NamedType struct {
	Name string
	Args []TypeExpr
	Span span.Span
}

func (t *NamedType) NodeSpan() span.Span { return t.Span }
func (t *NamedType) typeExprNode()       {}

// PointerKind distinguishes the address-form flavors spec §4.G's danger-block
// model needs: a plain managed pointer vs. a raw address-typed form used
// inside `danger!` blocks.
type PointerKind int

const (
	PointerManaged PointerKind = iota
	PointerRaw
)

// PointerType is `*T` (managed) or an `addr<T>`-style raw address form.
type PointerType struct {
	Kind PointerKind
	Elem TypeExpr
	Span span.Span
}

func (t *PointerType) NodeSpan() span.Span { return t.Span }
func (t *PointerType) typeExprNode()       {}

// SliceKind distinguishes the two slice forms spec §4.E.5 names.
type SliceKind int

const (
	DynamicSlice SliceKind = iota
	TemporarySlice
)

// SliceType is a `DynamicSlice<T>`/`TemporarySlice<T>` reference.
type SliceType struct {
	Kind SliceKind
	Elem TypeExpr
	Span span.Span
}

func (t *SliceType) NodeSpan() span.Span { return t.Span }
func (t *SliceType) typeExprNode()       {}
