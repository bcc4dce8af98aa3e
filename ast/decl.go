package ast

import (
	"github.com/razorforge-lang/rfc/span"
	"github.com/razorforge-lang/rfc/token"
)

// Param is a function parameter: name, declared type, and span.
type Param struct {
	Name string
	Type TypeExpr
	Span span.Span
}

// GenericParam is a `<T, U>` template parameter on a declaration.
type GenericParam struct {
	Name string
	Span span.Span
}

// FailureMode records which "can fail" marker (spec §4.F) a function
// declaration carries, if any; drives variantgen's try_/check_/find_
// synthesis.
type FailureMode int

const (
	NeverFails FailureMode = iota
	ThrowsFailure
	ReturnsResultSum
	ReturnsAbsent
)

// VariantKind discriminates which of the three synthesized wrapper shapes
// (spec §4.F) a Generated FunctionDecl is, so `codegen` can dispatch a
// dedicated lowering for each without re-deriving it from the name prefix.
type VariantKind int

const (
	NoVariant VariantKind = iota
	TryVariant
	CheckVariant
	FindVariant
)

// FunctionDecl is an internal function declaration — always carries a Body
// unless Abstract is set (a protocol method signature, spec §3 invariant:
// "internal declarations always carry one unless the function is abstract
// in a protocol").
type FunctionDecl struct {
	Name        string
	Generics    []GenericParam
	Params      []Param
	ReturnType  TypeExpr // nil for void
	Body        *BlockStmt
	Abstract    bool
	Failure     FailureMode
	Generated   bool // set by variantgen; skips re-analysis (spec §4.F)
	GeneratedOf string // name of the original function this was synthesized from
	VariantKind VariantKind
	Span        span.Span
}

func (d *FunctionDecl) NodeSpan() span.Span { return d.Span }
func (d *FunctionDecl) declNode()           {}

// ExternalFunctionDecl declares a function defined outside the compilation
// unit (runtime ABI, C library). Never carries a body (spec §3 invariant).
// CallingConvention names one of the annotations spec §4.G maps to LLVM
// attributes ("ccc", "x86_stdcallcc", ...); empty means the platform default.
type ExternalFunctionDecl struct {
	Name               string
	Params             []Param
	ReturnType         TypeExpr
	CallingConvention  string
	Span               span.Span
}

func (d *ExternalFunctionDecl) NodeSpan() span.Span { return d.Span }
func (d *ExternalFunctionDecl) declNode()           {}

// Field is a record/entity member.
type Field struct {
	Name string
	Type TypeExpr
	Span span.Span
}

// RecordDecl is a value-type aggregate (spec §3: "record (value type)").
type RecordDecl struct {
	Name     string
	Generics []GenericParam
	Fields   []Field
	Span     span.Span
}

func (d *RecordDecl) NodeSpan() span.Span { return d.Span }
func (d *RecordDecl) declNode()           {}

// EntityDecl is a reference-type aggregate supporting single inheritance
// (spec §3: "entity (reference type, supports single inheritance)").
type EntityDecl struct {
	Name     string
	Generics []GenericParam
	Extends  string // base entity name, "" if none
	Fields   []Field
	Methods  []*FunctionDecl
	Span     span.Span
}

func (d *EntityDecl) NodeSpan() span.Span { return d.Span }
func (d *EntityDecl) declNode()           {}

// VariantCase is one constructor of a sum type: a tag name plus its payload
// fields (empty for a unit case).
type VariantCase struct {
	Name   string
	Fields []Field
	Span   span.Span
}

// VariantDecl is a sum type / choice type (spec §3: "variant/choice (sum
// type)"); `when` exhaustiveness checking (spec §4.E pass 4) walks Cases.
type VariantDecl struct {
	Name     string
	Generics []GenericParam
	Cases    []VariantCase
	Span     span.Span
}

func (d *VariantDecl) NodeSpan() span.Span { return d.Span }
func (d *VariantDecl) declNode()           {}

// ProtocolMethod is one method signature inside a protocol; it is never
// itself a Decl (it only exists nested inside a ProtocolDecl), so it stays a
// plain struct rather than reusing FunctionDecl's Body-carrying shape.
type ProtocolMethod struct {
	Name       string
	Params     []Param
	ReturnType TypeExpr
	Span       span.Span
}

// ProtocolDecl is an interface (spec §3: "protocol (interface)").
type ProtocolDecl struct {
	Name     string
	Generics []GenericParam
	Methods  []ProtocolMethod
	Span     span.Span
}

func (d *ProtocolDecl) NodeSpan() span.Span { return d.Span }
func (d *ProtocolDecl) declNode()           {}

// ImportDecl resolves `import path` against the search-path list in sema
// pass 1 (spec §4.E.1).
type ImportDecl struct {
	Path string
	Span span.Span
}

func (d *ImportDecl) NodeSpan() span.Span { return d.Span }
func (d *ImportDecl) declNode()           {}

// RedefineDecl is a `redefine` declaration: a module-scoped alias/override of
// an existing name (spec §3: "redefinition").
type RedefineDecl struct {
	Name   string
	Target TypeExpr
	Span   span.Span
}

func (d *RedefineDecl) NodeSpan() span.Span { return d.Span }
func (d *RedefineDecl) declNode()           {}

// VariableDecl is a top-level `let`/`var` binding. Mutable is false for
// `let`. Kind carries the originating keyword for diagnostics.
type VariableDecl struct {
	Name     string
	Mutable  bool
	Kind     token.Kind // KwLet or KwVar
	Type     TypeExpr   // nil if inferred from Init
	Init     Expr       // nil if declared without an initializer
	Span     span.Span
}

func (d *VariableDecl) NodeSpan() span.Span { return d.Span }
func (d *VariableDecl) declNode()           {}
