package sema

import (
	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/diag"
	"github.com/razorforge-lang/rfc/types"
)

// resolveTypes is sema pass 3 (spec §4.E.3): every ast.TypeExpr reachable
// from a top-level declaration is resolved to an interned *types.Type and
// cached in a.typeExprs, keyed by node identity rather than mutated onto the
// node (spec §9).
func (a *Analyzer) resolveTypes(prog *ast.Program) {
	for _, mod := range a.orderedModules() {
		for _, d := range mod.Program.Decls {
			a.resolveDeclTypes(d)
		}
	}
}

func (a *Analyzer) resolveDeclTypes(d ast.Decl) {
	switch decl := d.(type) {
	case *ast.FunctionDecl:
		for _, p := range decl.Params {
			a.resolveTypeExpr(p.Type)
		}
		if decl.ReturnType != nil {
			a.resolveTypeExpr(decl.ReturnType)
		}
	case *ast.ExternalFunctionDecl:
		for _, p := range decl.Params {
			a.resolveTypeExpr(p.Type)
		}
		if decl.ReturnType != nil {
			a.resolveTypeExpr(decl.ReturnType)
		}
	case *ast.RecordDecl:
		for _, f := range decl.Fields {
			a.resolveTypeExpr(f.Type)
		}
	case *ast.EntityDecl:
		for _, f := range decl.Fields {
			a.resolveTypeExpr(f.Type)
		}
		for _, m := range decl.Methods {
			a.resolveDeclTypes(m)
		}
	case *ast.VariantDecl:
		for _, c := range decl.Cases {
			for _, f := range c.Fields {
				a.resolveTypeExpr(f.Type)
			}
		}
	case *ast.ProtocolDecl:
		for _, m := range decl.Methods {
			for _, p := range m.Params {
				a.resolveTypeExpr(p.Type)
			}
			if m.ReturnType != nil {
				a.resolveTypeExpr(m.ReturnType)
			}
		}
	case *ast.RedefineDecl:
		a.resolveTypeExpr(decl.Target)
	case *ast.VariableDecl:
		if decl.Type != nil {
			a.resolveTypeExpr(decl.Type)
		}
	}
}

// resolveTypeExpr resolves one TypeExpr and caches the result, even on
// failure (as the Invalid/Error type) so later passes can look it up once
// without re-deriving the diagnostic.
func (a *Analyzer) resolveTypeExpr(te ast.TypeExpr) *types.Type {
	if te == nil {
		return nil
	}
	if t, ok := a.typeExprs[te]; ok {
		return t
	}
	t := a.resolveTypeExprUncached(te)
	a.typeExprs[te] = t
	return t
}

func (a *Analyzer) resolveTypeExprUncached(te ast.TypeExpr) *types.Type {
	switch t := te.(type) {
	case *ast.NamedType:
		return a.resolveNamedType(t)
	case *ast.PointerType:
		elem := a.resolveTypeExpr(t.Elem)
		kind := types.ManagedPointer
		if t.Kind == ast.PointerRaw {
			kind = types.RawAddress
		}
		return a.interner.Pointer(kind, elem)
	case *ast.SliceType:
		elem := a.resolveTypeExpr(t.Elem)
		kind := types.DynamicSlice
		if t.Kind == ast.TemporarySlice {
			kind = types.TemporarySlice
		}
		return a.interner.SliceOf(kind, elem)
	default:
		a.diags.Add(diag.New("ES003", te.NodeSpan(), "unresolvable type expression"))
		return a.interner.ErrorType()
	}
}

func (a *Analyzer) resolveNamedType(t *ast.NamedType) *types.Type {
	if prim, ok := a.interner.FromPrimitiveName(t.Name); ok {
		return prim
	}
	if prim, ok := a.interner.FromPlatformPrimitive(t.Name, a.platform); ok {
		return prim
	}

	sym, ok := a.global.Lookup(t.Name)
	if !ok {
		a.diags.Add(diag.New("ES003", t.Span, "undefined type %q", t.Name))
		return a.interner.ErrorType()
	}

	switch sym.Kind {
	case SymRecord, SymEntity, SymVariant, SymProtocol:
		if len(t.Args) == 0 && declHasGenerics(sym.Data) {
			a.diags.Add(diag.New("ES003", t.Span, "%q is generic and requires type arguments, e.g. %s<...>", t.Name, t.Name))
			return a.interner.ErrorType()
		}
		return a.interner.Named(t.Name)
	default:
		a.diags.Add(diag.New("ES003", t.Span, "%q is not a type", t.Name))
		return a.interner.ErrorType()
	}
}

func declHasGenerics(data any) bool {
	switch d := data.(type) {
	case *ast.RecordDecl:
		return len(d.Generics) > 0
	case *ast.EntityDecl:
		return len(d.Generics) > 0
	case *ast.VariantDecl:
		return len(d.Generics) > 0
	case *ast.ProtocolDecl:
		return len(d.Generics) > 0
	default:
		return false
	}
}
