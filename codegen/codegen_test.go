package codegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/codegen"
	"github.com/razorforge-lang/rfc/diag"
	"github.com/razorforge-lang/rfc/sema"
	"github.com/razorforge-lang/rfc/span"
	"github.com/razorforge-lang/rfc/target"
	"github.com/razorforge-lang/rfc/token"
	"github.com/razorforge-lang/rfc/types"
)

func sp() span.Span { return span.Point("t.rf", 1, 1, 0) }

func newResult() *sema.Result {
	return &sema.Result{
		Global:    sema.NewScope(nil),
		ExprTypes: make(map[ast.Expr]*types.Type),
		TypeExprs: make(map[ast.TypeExpr]*types.Type),
		Refs:      make(map[*ast.IdentExpr]*sema.Symbol),
		Fallible:  make(map[ast.Expr]bool),
	}
}

// TestEmitSimpleReturn covers spec §8 scenario 5: `routine main() -> s32 {
// return 42 }` must produce a function named main returning i32 with a
// `ret i32 42` terminator.
func TestEmitSimpleReturn(t *testing.T) {
	interner := types.NewInterner()
	s32 := interner.Scalar(types.Signed, 32)

	retTypeExpr := &ast.NamedType{Name: "s32", Span: sp()}
	litExpr := &ast.LiteralExpr{Tok: token.Token{Kind: token.IntLiteral, IntValue: 42}, Span: sp()}
	fn := &ast.FunctionDecl{
		Name:       "main",
		ReturnType: retTypeExpr,
		Body: &ast.BlockStmt{
			Stmts: []ast.Stmt{&ast.ReturnStmt{Value: litExpr, Span: sp()}},
			Span:  sp(),
		},
		Span: sp(),
	}
	prog := &ast.Program{File: "t.rf", Decls: []ast.Decl{fn}, Span: sp()}

	result := newResult()
	result.TypeExprs[retTypeExpr] = s32
	result.ExprTypes[litExpr] = s32

	ctx := codegen.NewContext(target.Default, interner, result, &diag.Bag{}, codegen.Options{})
	out := codegen.Emit(ctx, prog)

	require.Contains(t, out, "define i32 @main()")
	require.Contains(t, out, "ret i32 42")
}

// TestEmitDangerBlock covers spec §8 scenario 6: a danger block with
// write_as!/read_as! must produce the START/END marker comments, an
// inttoptr conversion, a `store i32 999`, and a matching `load i32`.
func TestEmitDangerBlock(t *testing.T) {
	interner := types.NewInterner()
	s32 := interner.Scalar(types.Signed, 32)
	s64 := interner.Scalar(types.Signed, 64)

	addrLit := &ast.LiteralExpr{Tok: token.Token{Kind: token.IntLiteral, IntValue: 0x1000}, Span: sp()}
	addrDecl := &ast.VariableDecl{Name: "addr", Kind: token.KwLet, Init: addrLit, Span: sp()}
	addrIdent := &ast.IdentExpr{Name: "addr", Span: sp()}

	valueLit := &ast.LiteralExpr{Tok: token.Token{Kind: token.IntLiteral, IntValue: 999}, Span: sp()}
	s32TypeArg := &ast.NamedType{Name: "s32", Span: sp()}
	writeCall := &ast.GenericMethodCallExpr{
		Method:   "write_as!",
		TypeArgs: []ast.TypeExpr{s32TypeArg},
		Args:     []ast.Expr{addrIdent, valueLit},
		Span:     sp(),
	}
	readCall := &ast.GenericMethodCallExpr{
		Method:   "read_as!",
		TypeArgs: []ast.TypeExpr{s32TypeArg},
		Args:     []ast.Expr{addrIdent},
		Span:     sp(),
	}
	vDecl := &ast.VariableDecl{Name: "v", Kind: token.KwLet, Init: readCall, Span: sp()}

	danger := &ast.DangerStmt{
		Body: &ast.BlockStmt{
			Stmts: []ast.Stmt{
				&ast.DeclStmt{Decl: addrDecl, Span: sp()},
				&ast.ExprStmt{X: writeCall, Span: sp()},
				&ast.DeclStmt{Decl: vDecl, Span: sp()},
			},
			Span: sp(),
		},
		Span: sp(),
	}
	fn := &ast.FunctionDecl{
		Name: "test",
		Body: &ast.BlockStmt{Stmts: []ast.Stmt{danger}, Span: sp()},
		Span: sp(),
	}
	prog := &ast.Program{File: "t.rf", Decls: []ast.Decl{fn}, Span: sp()}

	result := newResult()
	result.TypeExprs[s32TypeArg] = s32
	result.ExprTypes[addrLit] = s64
	result.ExprTypes[addrIdent] = s64
	result.ExprTypes[valueLit] = s32
	result.ExprTypes[writeCall] = nil
	result.ExprTypes[readCall] = s32

	ctx := codegen.NewContext(target.Default, interner, result, &diag.Bag{}, codegen.Options{})
	out := codegen.Emit(ctx, prog)

	require.Contains(t, out, "; === DANGER BLOCK START ===")
	require.Contains(t, out, "; === DANGER BLOCK END ===")
	require.Contains(t, out, "inttoptr")
	require.Contains(t, out, "store i32 999")
	require.True(t, strings.Contains(out, "load i32"))
}

func TestEmitExternalFunctionCallingConvention(t *testing.T) {
	interner := types.NewInterner()
	ext := &ast.ExternalFunctionDecl{
		Name:              "Win32Sleep",
		CallingConvention: "stdcall",
		Span:              sp(),
	}
	prog := &ast.Program{File: "t.rf", Decls: []ast.Decl{ext}, Span: sp()}
	result := newResult()

	ctx := codegen.NewContext(target.Windows64, interner, result, &diag.Bag{}, codegen.Options{})
	out := codegen.Emit(ctx, prog)

	require.Contains(t, out, "declare x86_stdcallcc void @Win32Sleep()")
}
