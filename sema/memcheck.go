package sema

import (
	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/diag"
	"github.com/razorforge-lang/rfc/types"
)

// checkMemory is sema pass 5 (spec §4.E.5): the slice-lifetime check. A
// TemporarySlice is only valid for the lexical extent it was produced in; it
// must never escape through a return value or a stored field, unlike a
// DynamicSlice, which is heap-owned and may escape freely.
func (a *Analyzer) checkMemory(prog *ast.Program) {
	for _, mod := range a.orderedModules() {
		for _, d := range mod.Program.Decls {
			a.checkMemoryDecl(d)
		}
	}
}

func (a *Analyzer) checkMemoryDecl(d ast.Decl) {
	switch decl := d.(type) {
	case *ast.FunctionDecl:
		if decl.Generated || decl.Body == nil {
			return
		}
		retType := a.resolveTypeExpr(decl.ReturnType)
		a.checkMemoryBlock(decl.Body, retType)
	case *ast.EntityDecl:
		for _, m := range decl.Methods {
			a.checkMemoryDecl(m)
		}
	}
}

func (a *Analyzer) checkMemoryBlock(b *ast.BlockStmt, retType *types.Type) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		a.checkMemoryStmt(s, retType)
	}
}

func (a *Analyzer) checkMemoryStmt(s ast.Stmt, retType *types.Type) {
	switch stmt := s.(type) {
	case *ast.ReturnStmt:
		if stmt.Value != nil {
			a.checkNoEscapingTemporary(stmt.Value, "returned")
		}
	case *ast.BlockStmt:
		a.checkMemoryBlock(stmt, retType)
	case *ast.IfStmt:
		a.checkMemoryBlock(stmt.Then, retType)
		for _, elif := range stmt.Elifs {
			a.checkMemoryBlock(elif.Body, retType)
		}
		a.checkMemoryBlock(stmt.Else, retType)
	case *ast.WhileStmt:
		a.checkMemoryBlock(stmt.Body, retType)
	case *ast.ForStmt:
		a.checkMemoryBlock(stmt.Body, retType)
	case *ast.LoopStmt:
		a.checkMemoryBlock(stmt.Body, retType)
	case *ast.DangerStmt:
		a.checkMemoryBlock(stmt.Body, retType)
	case *ast.WhenStmt:
		for _, arm := range stmt.Arms {
			a.checkMemoryBlock(arm.Body, retType)
		}
	case *ast.DeclStmt:
		if vd, ok := stmt.Decl.(*ast.VariableDecl); ok && vd.Init != nil && vd.Type != nil {
			a.checkNoEscapingTemporary(vd.Init, "stored")
		}
	}
}

// checkNoEscapingTemporary diagnoses binding a TemporarySlice-typed
// expression into a context (return, field) that outlives the lexical scope
// it was produced in.
func (a *Analyzer) checkNoEscapingTemporary(e ast.Expr, verb string) {
	t, ok := a.exprTypes[e]
	if !ok || t == nil || t.Kind != types.Slice || t.SlcKind != types.TemporarySlice {
		return
	}
	a.diags.Add(diag.New("ES012", e.NodeSpan(), "a TemporarySlice cannot be %s outside the scope it was created in", verb).
		WithHint("copy into a DynamicSlice first if the data must outlive this scope"))
}
