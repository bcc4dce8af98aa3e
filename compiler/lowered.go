package compiler

import (
	"fmt"
	"strings"

	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/sema"
)

// writeLowered renders the readable lowered form spec §6 writes to `X.out`
// for a source file `X.{rf|sf}`: one line per top-level declaration naming
// its kind and resolved type, in the teacher's own `IR.Write` style
// (`ysem/ir.go`: "FUNC %s\n", "  RETURN %s\n", "  PARAMS %d\n" — a flat,
// line-oriented, indent-nested dump built with plain fmt.Fprintf calls, not
// a structured serialization format).
func writeLowered(ctx Context, dialect interface{ String() string }, prog *ast.Program, result *sema.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#lowered 1\n")
	fmt.Fprintf(&b, "#run %s\n", ctx.ID)
	fmt.Fprintf(&b, "#source %s\n", prog.File)
	fmt.Fprintf(&b, "#dialect %s\n", dialect.String())

	for _, d := range prog.Decls {
		writeDecl(&b, d, result)
	}
	return b.String()
}

func writeDecl(b *strings.Builder, d ast.Decl, result *sema.Result) {
	switch decl := d.(type) {
	case *ast.FunctionDecl:
		writeFunctionDecl(b, decl, result)
	case *ast.ExternalFunctionDecl:
		fmt.Fprintf(b, "EXTERNFUNC %s\n", decl.Name)
		fmt.Fprintf(b, "  CALLCONV %s\n", callConvOrDefault(decl.CallingConvention))
		fmt.Fprintf(b, "  PARAMS %d\n", len(decl.Params))
	case *ast.RecordDecl:
		fmt.Fprintf(b, "RECORD %s\n", decl.Name)
		for _, f := range decl.Fields {
			fmt.Fprintf(b, "  FIELD %s %s\n", f.Name, typeOf(result, f.Type))
		}
	case *ast.EntityDecl:
		fmt.Fprintf(b, "ENTITY %s", decl.Name)
		if decl.Extends != "" {
			fmt.Fprintf(b, " : %s", decl.Extends)
		}
		b.WriteByte('\n')
		for _, f := range decl.Fields {
			fmt.Fprintf(b, "  FIELD %s %s\n", f.Name, typeOf(result, f.Type))
		}
		for _, m := range decl.Methods {
			fmt.Fprintf(b, "  METHOD %s\n", m.Name)
		}
	case *ast.VariantDecl:
		fmt.Fprintf(b, "VARIANT %s\n", decl.Name)
		for i, vc := range decl.Cases {
			fmt.Fprintf(b, "  CASE %d %s\n", i, vc.Name)
		}
	case *ast.ProtocolDecl:
		fmt.Fprintf(b, "PROTOCOL %s\n", decl.Name)
		for _, m := range decl.Methods {
			fmt.Fprintf(b, "  METHOD %s\n", m.Name)
		}
	case *ast.ImportDecl:
		fmt.Fprintf(b, "IMPORT %s\n", decl.Path)
	case *ast.RedefineDecl:
		fmt.Fprintf(b, "REDEFINE %s\n", decl.Name)
	case *ast.VariableDecl:
		fmt.Fprintf(b, "GLOBAL %s %s\n", decl.Name, typeOf(result, decl.Type))
	default:
		fmt.Fprintf(b, "UNKNOWN %T\n", decl)
	}
}

func writeFunctionDecl(b *strings.Builder, decl *ast.FunctionDecl, result *sema.Result) {
	fmt.Fprintf(b, "FUNC %s\n", decl.Name)
	if decl.Generated {
		fmt.Fprintf(b, "  GENERATED %s %s\n", variantKindName(decl.VariantKind), decl.GeneratedOf)
	}
	fmt.Fprintf(b, "  RETURN %s\n", typeOf(result, decl.ReturnType))
	fmt.Fprintf(b, "  PARAMS %d\n", len(decl.Params))
	for _, p := range decl.Params {
		fmt.Fprintf(b, "    PARAM %s %s\n", p.Name, typeOf(result, p.Type))
	}
}

func variantKindName(k ast.VariantKind) string {
	switch k {
	case ast.TryVariant:
		return "try"
	case ast.CheckVariant:
		return "check"
	case ast.FindVariant:
		return "find"
	default:
		return "none"
	}
}

func callConvOrDefault(cc string) string {
	if cc == "" {
		return "default"
	}
	return cc
}

func typeOf(result *sema.Result, te ast.TypeExpr) string {
	if te == nil {
		return "void"
	}
	if result == nil || result.TypeExprs == nil {
		return "?"
	}
	if t, ok := result.TypeExprs[te]; ok && t != nil {
		return t.String()
	}
	return "?"
}
