package sema

import (
	"sort"

	"github.com/samber/lo"

	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/diag"
	"github.com/razorforge-lang/rfc/target"
	"github.com/razorforge-lang/rfc/types"
)

// ModuleLoader resolves an `import path` against the search-path list (spec
// §4.E pass 1). It is an interface rather than a direct filesystem call so
// tests can supply an in-memory map; `compiler` wires the real
// os.ReadFile-backed implementation (spec §6's file-suffix selection stays
// that package's job, not sema's).
type ModuleLoader interface {
	// Load returns the module's source text and a display filename for
	// diagnostics. ok is false if path cannot be resolved.
	Load(path string) (source string, filename string, ok bool)
}

// Result is everything sema produces for one compilation unit: diagnostics
// plus the side tables codegen consumes (spec §9: the AST itself is never
// mutated).
type Result struct {
	Global    *Scope
	ExprTypes map[ast.Expr]*types.Type
	TypeExprs map[ast.TypeExpr]*types.Type
	Refs      map[*ast.IdentExpr]*Symbol
	Fallible  map[ast.Expr]bool
	Modules   map[string]*Module
}

// Module is one imported compilation unit (spec §4.E pass 1).
type Module struct {
	Path    string
	Program *ast.Program
	Scope   *Scope
}

// Analyzer runs the five passes over one ast.Program. A fresh Analyzer is
// the supported mode per compilation (spec §5); nothing here is process-
// global.
type Analyzer struct {
	diags    *diag.Bag
	interner *types.Interner
	platform target.Platform
	loader   ModuleLoader

	global  *Scope
	modules map[string]*Module

	exprTypes map[ast.Expr]*types.Type
	typeExprs map[ast.TypeExpr]*types.Type
	refs      map[*ast.IdentExpr]*Symbol
	fallible  map[ast.Expr]bool

	currentScope *Scope
	currentFn    *ast.FunctionDecl
	currentRet   *types.Type
	inDanger     bool

	nextSymID uint64
}

// NewAnalyzer constructs an Analyzer. loader may be nil if the program under
// analysis has no import declarations.
func NewAnalyzer(interner *types.Interner, plat target.Platform, loader ModuleLoader, diags *diag.Bag) *Analyzer {
	return &Analyzer{
		diags:     diags,
		interner:  interner,
		platform:  plat,
		loader:    loader,
		modules:   make(map[string]*Module),
		exprTypes: make(map[ast.Expr]*types.Type),
		typeExprs: make(map[ast.TypeExpr]*types.Type),
		refs:      make(map[*ast.IdentExpr]*Symbol),
		fallible:  make(map[ast.Expr]bool),
	}
}

func (a *Analyzer) newSymbolID() uint64 {
	a.nextSymID++
	return a.nextSymID
}

// orderedModules returns a.modules in a stable, deterministic order (sorted
// by import path), so that passes 2-5 accumulate diagnostics in the same
// order on every run rather than whatever order Go's map iteration happens
// to pick. lo.Keys collects the map's keys; sort.Strings imposes the stable
// order a plain `for range` over the map cannot give.
func (a *Analyzer) orderedModules() []*Module {
	paths := lo.Keys(a.modules)
	sort.Strings(paths)
	return lo.Map(paths, func(path string, _ int) *Module {
		return a.modules[path]
	})
}

// Analyze runs all five passes (spec §4.E) and returns the accumulated
// annotations. Later passes still run after earlier ones report errors
// (spec §7: "accumulates diagnostics into a list"); only codegen refuses to
// proceed on Error/Fatal.
func (a *Analyzer) Analyze(prog *ast.Program) *Result {
	a.global = NewScope(nil)
	a.currentScope = a.global

	a.loadModules(prog)      // pass 1
	a.collectDecls(prog)     // pass 2
	a.resolveTypes(prog)     // pass 3
	a.analyzeFunctions(prog) // pass 4
	a.checkMemory(prog)      // pass 5

	return &Result{
		Global:    a.global,
		ExprTypes: a.exprTypes,
		TypeExprs: a.typeExprs,
		Refs:      a.refs,
		Fallible:  a.fallible,
		Modules:   a.modules,
	}
}

// checkExpr/checkStmt/checkDecl instantiate the generic ast.Visitor dispatch
// functions at *types.Type (spec §9's visitor design note); Go's type
// inference can't recover the instantiation from an interface value alone,
// so every call site goes through these thin wrappers instead of repeating
// the explicit type argument.
func (a *Analyzer) checkExpr(e ast.Expr) *types.Type {
	if e == nil {
		return nil
	}
	return ast.VisitExpr[*types.Type](a, e)
}

func (a *Analyzer) checkStmt(s ast.Stmt) {
	if s == nil {
		return
	}
	ast.VisitStmt[*types.Type](a, s)
}

func (a *Analyzer) checkDecl(d ast.Decl) {
	if d == nil {
		return
	}
	ast.VisitDecl[*types.Type](a, d)
}
