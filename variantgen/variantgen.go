// Package variantgen implements spec component F: it scans a parsed
// program's function declarations and, for every one carrying a "can fail"
// marker, synthesizes up to three sibling declarations (try_/check_/find_)
// sharing the original's parameter list. There is no teacher analogue
// (`gmofishsauce-wut4`'s `lang/` pipeline has no fallible-function notion at
// all — WUT-4 assembly has no exceptions); this package is grounded instead
// directly in spec.md §4.F's contract, built in the surrounding packages'
// "small pass over a Program's Decls, plain Go control flow" texture (see
// `sema.collectDecls`, whose top-level-declaration loop this mirrors).
package variantgen

import "github.com/razorforge-lang/rfc/ast"

// Generate scans prog's top-level declarations and appends a try_/check_/
// find_ sibling for every FunctionDecl whose Failure marker is not
// ast.NeverFails (spec §4.F). It mutates prog.Decls in place (spec §3
// Lifecycle: "the variant generator F may append to the top-level
// declaration list") and returns the synthesized declarations for callers
// that want to inspect them separately (tests, a trace writer). A function
// whose siblings are already in prog.Decls is not expanded again.
func Generate(prog *ast.Program) []*ast.FunctionDecl {
	var generated []*ast.FunctionDecl

	// Functions whose siblings an earlier run already appended.
	expanded := make(map[string]bool)
	for _, d := range prog.Decls {
		if fn, ok := d.(*ast.FunctionDecl); ok && fn.Generated {
			expanded[fn.GeneratedOf] = true
		}
	}

	// Snapshot the original decl count: entity methods are not scanned, only
	// free functions get top-level siblings appended, and we must not range
	// over decls we are appending to.
	n := len(prog.Decls)
	for i := 0; i < n; i++ {
		fn, ok := prog.Decls[i].(*ast.FunctionDecl)
		if !ok || fn.Generated || fn.Failure == ast.NeverFails || expanded[fn.Name] {
			continue
		}
		siblings := variantsFor(fn)
		generated = append(generated, siblings...)
		for _, sib := range siblings {
			prog.Decls = append(prog.Decls, sib)
		}
	}
	return generated
}

// variantsFor builds the three synthesized siblings of fn. Each copies fn's
// span (spec §4.F: "synthesized declarations carry spans copied from the
// original") and parameter list; bodies stay a thin call-through to fn so
// the AST invariant "internal declarations always carry one [body]" holds,
// but `codegen` never walks a generated body expression-by-expression — it
// dispatches on VariantKind+GeneratedOf directly (spec §4.F: "semantic
// re-analysis of generated nodes is skipped; they are guaranteed well-typed
// by construction", which extends here to "well-formed by construction" for
// codegen's dedicated lowering).
func variantsFor(fn *ast.FunctionDecl) []*ast.FunctionDecl {
	return []*ast.FunctionDecl{
		wrapper(fn, "try_"+fn.Name, ast.TryVariant),
		wrapper(fn, "check_"+fn.Name, ast.CheckVariant),
		wrapper(fn, "find_"+fn.Name, ast.FindVariant),
	}
}

func wrapper(fn *ast.FunctionDecl, name string, kind ast.VariantKind) *ast.FunctionDecl {
	callee := &ast.IdentExpr{Name: fn.Name, Span: fn.Span}
	args := make([]ast.Expr, len(fn.Params))
	for i, p := range fn.Params {
		args[i] = &ast.IdentExpr{Name: p.Name, Span: p.Span}
	}
	call := &ast.CallExpr{Callee: callee, Args: args, Span: fn.Span}
	body := &ast.BlockStmt{
		Span: fn.Span,
		Stmts: []ast.Stmt{
			&ast.ReturnStmt{Value: call, Span: fn.Span},
		},
	}
	return &ast.FunctionDecl{
		Name:        name,
		Generics:    fn.Generics,
		Params:      fn.Params,
		Body:        body,
		Generated:   true,
		GeneratedOf: fn.Name,
		VariantKind: kind,
		Span:        fn.Span,
	}
}
