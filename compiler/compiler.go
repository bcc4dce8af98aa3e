// Package compiler provides the library-level orchestration spec.md's
// out-of-scope CLI front end would otherwise drive: lexer -> parser -> sema
// -> variantgen -> codegen, in one process. The teacher (`gmofishsauce-wut4`)
// wires the same five stages together as four separate binaries piping flat
// text over stdin/stdout (`ya/main.go`'s runPipeline: ylex | yparse | ysem |
// ygen, each launched with os/exec and its stdout fed to the next stage's
// stdin). Since spec.md scopes the CLI/IPC layer out of this core, Pipeline
// calls the same five stages as ordinary Go function calls against shared
// in-memory values instead of forking subprocesses — the one structural
// departure from the teacher's texture, recorded in DESIGN.md.
package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/codegen"
	"github.com/razorforge-lang/rfc/diag"
	"github.com/razorforge-lang/rfc/lexer"
	"github.com/razorforge-lang/rfc/parser"
	"github.com/razorforge-lang/rfc/sema"
	"github.com/razorforge-lang/rfc/target"
	"github.com/razorforge-lang/rfc/token"
	"github.com/razorforge-lang/rfc/types"
	"github.com/razorforge-lang/rfc/variantgen"
)

// Options configures a Pipeline. Everything here is set programmatically by
// the embedding caller — argument parsing is explicitly out of scope (spec
// §0/§6), so there is no flag or env var handling anywhere in this package.
type Options struct {
	// Dialect overrides the suffix-based dialect selection (spec §6:
	// ".rf" => Systems, ".sf" => Surface, anything else => Systems). Nil
	// means "detect from the filename passed to Compile".
	Dialect *token.Dialect

	// SearchPaths is consulted, in order, by the default ModuleLoader when
	// resolving an `import path` (spec §4.E pass 1). Ignored if Loader is
	// set directly.
	SearchPaths []string

	// Loader overrides the default filesystem-backed ModuleLoader, mainly
	// for tests that want an in-memory module graph (mirrors
	// sema.ModuleLoader's own doc comment on why it's an interface).
	Loader sema.ModuleLoader

	// EmitEvenWithErrors asks codegen to still lower the AST after sema
	// reported Error diagnostics (spec §7: "a phase emitting any Error or
	// Fatal stops downstream emission of executables but still produces
	// intermediate artifacts when feasible"). Fatal diagnostics are never
	// overridden; the compiler never continues past one (spec §7).
	EmitEvenWithErrors bool

	// Trace, if non-nil, receives a phase-by-phase execution trace in the
	// teacher's own `fmt.Fprintf(os.Stderr, "Running lexer...\n")` style
	// (`ya/main.go`'s -v flag), written by Pipeline.Compile itself rather
	// than left to a caller that doesn't have phase visibility.
	Trace io.Writer
}

// Context is the per-compilation-run identity and mutable state a Pipeline
// hands to a single Compile call. ID disambiguates this run's diagnostics
// and stack traces from any other (spec's GLOSSARY "Context" entry: "no
// process-global state"); it is distinct from the codegen.Context.ID minted
// for the IR-emission pass. Compile mints a new Context.ID on every call and
// creates at most one codegen.Context per call.
type Context struct {
	ID   uuid.UUID
	File string
}

// Result is everything one Compile call produces: the parsed/analyzed
// program, its diagnostics, and — when codegen ran — the two artifacts spec
// §6 names for a source file `X.{rf|sf}`: the readable lowered form (`X.out`)
// and LLVM textual IR (`X.ll`).
type Result struct {
	Ctx     Context
	Dialect token.Dialect
	Program *ast.Program
	Sema    *sema.Result
	Diags   *diag.Bag

	// Lowered is the readable lowered form written to `X.out`, modeled on
	// the teacher's `IR.Write` line-oriented dump (`ysem/ir.go`). Empty if
	// parsing failed before sema could run.
	Lowered string

	// IR is the LLVM textual IR written to `X.ll`. Empty if sema reported
	// Error/Fatal diagnostics and Options.EmitEvenWithErrors was false, or
	// if an earlier phase already failed.
	IR string
}

// Pipeline is a reusable driver over one target platform and type interner.
// A fresh Pipeline per compilation is the default (simplest) mode; a caller
// may keep one around and call Compile repeatedly (spec §5: "A reusable
// analyzer/emitter instance, if kept between compilations, must be reset" —
// Compile builds a fresh sema.Analyzer and codegen.Context on every call, so
// reuse is safe across calls without any extra caller-side bookkeeping).
type Pipeline struct {
	Platform target.Platform
	Interner *types.Interner
	Opts     Options
}

// NewPipeline constructs a Pipeline for one platform. A fresh *types.Interner
// is created if interner is nil, matching the teacher's "each run owns its
// tables" discipline (spec §9: "Global state... live inside the... context
// object; nothing is process-global").
func NewPipeline(plat target.Platform, interner *types.Interner, opts Options) *Pipeline {
	if interner == nil {
		interner = types.NewInterner()
	}
	return &Pipeline{Platform: plat, Interner: interner, Opts: opts}
}

func (p *Pipeline) trace(format string, args ...any) {
	if p.Opts.Trace == nil {
		return
	}
	fmt.Fprintf(p.Opts.Trace, format, args...)
}

// Compile runs the full pipeline against one source file's already-read
// text. file is used for dialect suffix detection (spec §6), diagnostic
// spans, and module-loader display names; it need not exist on disk (tests
// pass synthetic names).
func (p *Pipeline) Compile(file, source string) *Result {
	ctx := Context{ID: uuid.New(), File: file}
	dialect := p.dialect(file)
	diags := &diag.Bag{}

	p.trace("Running lexer...\n")
	toks := lexer.New(file, source, dialect, diags).Tokenize()

	p.trace("Running parser...\n")
	prog := parser.New(file, toks, dialect, diags).Parse()

	result := &Result{Ctx: ctx, Dialect: dialect, Program: prog, Diags: diags}
	if diags.HasFatal() {
		return result
	}

	loader := p.Opts.Loader
	if loader == nil && len(p.Opts.SearchPaths) > 0 {
		loader = newFSLoader(p.Opts.SearchPaths, dialect)
	}

	p.trace("Running semantic analyzer...\n")
	analyzer := sema.NewAnalyzer(p.Interner, p.Platform, loader, diags)
	semaResult := analyzer.Analyze(prog)
	result.Sema = semaResult

	if diags.HasFatal() {
		return result
	}

	p.trace("Running variant generator...\n")
	generated := variantgen.Generate(prog)
	prog.Decls = append(prog.Decls, toDecls(generated)...)

	result.Lowered = writeLowered(ctx, dialect, prog, semaResult)

	if diags.HasErrors() && !p.Opts.EmitEvenWithErrors {
		return result
	}

	p.trace("Running code generator...\n")
	cgCtx := codegen.NewContext(p.Platform, p.Interner, semaResult, diags, codegen.Options{
		EmitEvenWithErrors: p.Opts.EmitEvenWithErrors,
		Trace:              p.Opts.Trace,
	})
	result.IR = codegen.Emit(cgCtx, prog)

	return result
}

func toDecls(fns []*ast.FunctionDecl) []ast.Decl {
	out := make([]ast.Decl, len(fns))
	for i, fn := range fns {
		out[i] = fn
	}
	return out
}

// dialect resolves the effective dialect for one file: an explicit
// Options.Dialect override wins outright, otherwise the suffix rule in
// dialect.go applies (spec §6).
func (p *Pipeline) dialect(file string) token.Dialect {
	if p.Opts.Dialect != nil {
		return *p.Opts.Dialect
	}
	return DialectForFile(file)
}

// Artifacts returns the two output filenames spec §6 names for a source
// file `X.{rf|sf}`: `X.out` and `X.ll`.
func Artifacts(file string) (loweredPath, irPath string) {
	base := strings.TrimSuffix(file, ".rf")
	base = strings.TrimSuffix(base, ".sf")
	return base + ".out", base + ".ll"
}
