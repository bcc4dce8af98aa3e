package sema

import (
	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/diag"
)

// collectDecls is sema pass 2 (spec §4.E.2): every top-level declaration,
// in this file and in every loaded module, is registered into the global
// scope. Duplicates across two different declarations (not redeclaration of
// an import) raise ES005 with a back-reference to the first definition.
func (a *Analyzer) collectDecls(prog *ast.Program) {
	for _, mod := range a.orderedModules() {
		for _, d := range mod.Program.Decls {
			a.defineTopLevel(d)
		}
	}
}

func (a *Analyzer) defineTopLevel(d ast.Decl) {
	sym := a.symbolFor(d)
	if sym == nil {
		return
	}
	if existing, ok := a.global.Define(sym); !ok {
		a.diags.Add(diag.New("ES005", sym.Span, "%q is already declared", sym.Name).
			WithRelated("first declared here", existing.Span))
	}
}

// symbolFor builds the Symbol a declaration contributes to the global scope,
// or nil for declarations that don't bind a name there (imports, redefines —
// redefine binds in resolveTypes once its target type is known).
func (a *Analyzer) symbolFor(d ast.Decl) *Symbol {
	switch decl := d.(type) {
	case *ast.FunctionDecl:
		return &Symbol{ID: a.newSymbolID(), Name: decl.Name, Kind: SymFunction, Span: decl.Span, Data: decl}
	case *ast.ExternalFunctionDecl:
		return &Symbol{ID: a.newSymbolID(), Name: decl.Name, Kind: SymExternalFunction, Span: decl.Span, Data: decl}
	case *ast.RecordDecl:
		return &Symbol{ID: a.newSymbolID(), Name: decl.Name, Kind: SymRecord, Span: decl.Span, Data: decl}
	case *ast.EntityDecl:
		return &Symbol{ID: a.newSymbolID(), Name: decl.Name, Kind: SymEntity, Span: decl.Span, Data: decl}
	case *ast.VariantDecl:
		return &Symbol{ID: a.newSymbolID(), Name: decl.Name, Kind: SymVariant, Span: decl.Span, Data: decl}
	case *ast.ProtocolDecl:
		return &Symbol{ID: a.newSymbolID(), Name: decl.Name, Kind: SymProtocol, Span: decl.Span, Data: decl}
	case *ast.VariableDecl:
		return &Symbol{ID: a.newSymbolID(), Name: decl.Name, Kind: SymVariable, Span: decl.Span, Data: decl}
	default:
		return nil
	}
}
