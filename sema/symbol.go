// Package sema implements spec component E: the five-pass semantic analyzer
// (module loading, declaration collection, type resolution, function-body
// analysis, memory/capability checks). Modeled on the teacher's
// `ysem/analyzer.go` (`Analyzer` struct, flat `map[string]*X` symbol tables,
// `a.error`/`a.errorAt` slice-accumulating diagnostics) but generalized per
// SPEC_FULL.md §3: symbol tables are scoped trees rather than one global
// map, and the AST is annotated through side tables keyed by node identity
// instead of the teacher's `SetType` mutation on the node itself.
package sema

import (
	"sort"

	"github.com/samber/lo"

	"github.com/razorforge-lang/rfc/span"
)

// SymbolKind discriminates what a Symbol names.
type SymbolKind int

const (
	SymFunction SymbolKind = iota
	SymExternalFunction
	SymRecord
	SymEntity
	SymVariant
	SymProtocol
	SymVariable
)

func (k SymbolKind) String() string {
	switch k {
	case SymFunction:
		return "function"
	case SymExternalFunction:
		return "external function"
	case SymRecord:
		return "record"
	case SymEntity:
		return "entity"
	case SymVariant:
		return "variant"
	case SymProtocol:
		return "protocol"
	case SymVariable:
		return "variable"
	default:
		return "symbol"
	}
}

// Symbol is one entry in a Scope. Declarations reference their Decl node via
// Data (so sema can recover generics/fields/cases without a second lookup
// table); variables instead carry their resolved *types.Type directly in
// Data, set once at definition time (spec §9: "the symbol table references
// declarations by stable numeric id rather than by an owning back-pointer").
type Symbol struct {
	ID   uint64
	Name string
	Kind SymbolKind
	Span span.Span
	Data any
}

// Scope is one lexical level of the symbol-table tree spec §3 requires
// ("symbol tables must be scoped trees"), parented for lookup fallthrough.
type Scope struct {
	parent *Scope
	names  map[string]*Symbol
}

// NewScope creates a scope chained to parent (nil for the global scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, names: make(map[string]*Symbol)}
}

// Define registers sym under its own Name. It returns (existing, false) if
// the name is already bound in this scope (not a parent) — the caller turns
// that into an ES005 diagnostic with a back-reference to existing.Span.
func (s *Scope) Define(sym *Symbol) (*Symbol, bool) {
	if existing, ok := s.names[sym.Name]; ok {
		return existing, false
	}
	s.names[sym.Name] = sym
	return sym, true
}

// Lookup searches this scope and its ancestors.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if sym, ok := sc.names[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal searches only this scope, ignoring parents.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := s.names[name]
	return sym, ok
}

// Names returns every name bound directly in this scope (not its ancestors),
// sorted for deterministic iteration, so a caller walking every symbol in a
// scope does not depend on Go's unordered map iteration.
func (s *Scope) Names() []string {
	names := lo.Keys(s.names)
	sort.Strings(names)
	return names
}

// All returns every Symbol bound directly in this scope, in Names() order.
func (s *Scope) All() []*Symbol {
	return lo.Map(s.Names(), func(name string, _ int) *Symbol {
		return s.names[name]
	})
}
