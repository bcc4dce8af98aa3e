// Package codegen implements spec component G: lowering an annotated
// ast.Program to LLVM textual IR. Modeled on the teacher's `ysem/ir.go`
// IRGen (`analyzer`/`prog`/`currentFn`/`tempCount`/`labelCount`/
// `loopLabels`/`loopCont` fields, `newTemp`/`newLabel`/`emit` helpers writing
// into an append-only buffer) but retargeted from WUT-4 assembly mnemonics
// to LLVM IR text, and from the teacher's single fixed machine to the
// `target.Platform`-parameterized preamble spec §4.G requires.
package codegen

import (
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/diag"
	"github.com/razorforge-lang/rfc/sema"
	"github.com/razorforge-lang/rfc/target"
	"github.com/razorforge-lang/rfc/types"
)

// FuncState is the function-emission state machine spec §4.G names:
// Outside-function, Building-prologue, Emitting-body, Block-terminated,
// Function-complete.
type FuncState int

const (
	StateOutside FuncState = iota
	StatePrologue
	StateBody
	StateTerminated
	StateComplete
)

// Options configures one Context. EmitEvenWithErrors lets a caller ask for
// best-effort IR despite semantic errors (spec §7: "unless the caller
// explicitly requests run-after-error"); the compiler package's Options
// mirrors this field and forwards it here.
type Options struct {
	EmitEvenWithErrors bool
	Trace              io.Writer
}

// Context is the per-compilation mutable state the IR emitter owns
// exclusively: the string-constant pool, temp/label counters, and current-
// function context (spec §9: "Global state... live inside the IR-emission
// context object; nothing is process-global. A fresh context per
// compilation is the supported mode"). ID identifies this emission pass for
// diagnostics/crash reporting; it does not feed temp or label naming — those
// stay plain counter-numbered (%t0, %t1, ...) and are already reset-safe on
// their own, since Reset zeros tempCount/labelCount along with everything
// else (spec §5: "must be reset... if not intentionally warmed").
type Context struct {
	ID uuid.UUID

	Platform target.Platform
	Interner *types.Interner
	Sema     *sema.Result
	Diags    *diag.Bag
	Opts     Options

	body     strings.Builder
	preamble strings.Builder

	stringPool  map[string]string // literal text -> constant label
	poolLabels  []string          // insertion order, for deterministic preamble emission
	poolCounter int

	tempCount  int
	labelCount int

	valueTypes map[string]*types.Type // SSA temp name -> its type (spec §4.G "side table keyed by temp name")

	currentFn    *ast.FunctionDecl
	currentBlock string
	state        FuncState
	locals       map[string]localSlot // name -> stack-slot address + type, current function only

	loopBreakLabels    []string // stack of loop-exit labels, for `break`
	loopContinueLabels []string // stack of loop-continue labels, for `continue`

	inDanger bool

	structs         map[string]*StructLayout  // record/entity name -> field layout, for GEP-based field access; variant name -> case names, for `when` tag dispatch
	funcReturnTypes map[string]*types.Type    // function name -> return type, for variant.go's wrapper lowering

	pendingFns    []*ast.FunctionDecl // lambdas synthesized into top-level functions, drained after the main pass
	lambdaCounter int
}

// StructLayout records one record/entity's field order and types so
// VisitFieldAccessExpr can emit a `getelementptr` against the named LLVM
// struct type decl.go declares for it, instead of treating every Named
// value as a fully opaque blob.
type StructLayout struct {
	Name   string
	Fields []string   // field names, in declaration order
	Types  []*types.Type
}

// FieldIndex returns the GEP index of field name, or -1 if absent.
func (s *StructLayout) FieldIndex(name string) int {
	for i, f := range s.Fields {
		if f == name {
			return i
		}
	}
	return -1
}

// NewContext builds a fresh, per-compilation Context (spec §5/§9: never
// process-global).
func NewContext(plat target.Platform, interner *types.Interner, semaResult *sema.Result, diags *diag.Bag, opts Options) *Context {
	return &Context{
		ID:         uuid.New(),
		Platform:   plat,
		Interner:   interner,
		Sema:       semaResult,
		Diags:      diags,
		Opts:       opts,
		stringPool: make(map[string]string),
		valueTypes: make(map[string]*types.Type),
		structs:         make(map[string]*StructLayout),
		funcReturnTypes: make(map[string]*types.Type),
	}
}

// Reset clears every buffer and counter so the Context can be reused for a
// second compilation (spec §5: "A reusable analyzer/emitter instance, if
// kept between compilations, must be reset"). ID is refreshed so the next
// emission pass gets its own identity; temp and label names restart at %t0
// and L...0 because their counters are zeroed here.
func (c *Context) Reset() {
	c.ID = uuid.New()
	c.body.Reset()
	c.preamble.Reset()
	c.stringPool = make(map[string]string)
	c.poolLabels = nil
	c.poolCounter = 0
	c.tempCount = 0
	c.labelCount = 0
	c.valueTypes = make(map[string]*types.Type)
	c.currentFn = nil
	c.currentBlock = ""
	c.state = StateOutside
	c.locals = nil
	c.loopBreakLabels = nil
	c.loopContinueLabels = nil
	c.inDanger = false
	c.structs = make(map[string]*StructLayout)
	c.funcReturnTypes = make(map[string]*types.Type)
	c.pendingFns = nil
	c.lambdaCounter = 0
}

// newTemp allocates a fresh SSA temp name (spec §4.G: "each intermediate is
// a freshly numbered SSA value").
func (c *Context) newTemp() string {
	name := "%t" + strconv.Itoa(c.tempCount)
	c.tempCount++
	return name
}

// newTempTyped is newTemp plus recording the temp's type in the side table
// codegen's typed lowering consults when an expression needs its operand's
// type back (e.g. a subsequent store/ret).
func (c *Context) newTempTyped(t *types.Type) string {
	name := c.newTemp()
	c.valueTypes[name] = t
	return name
}

// newLabel allocates a fresh basic-block label, mirroring the teacher's
// `newLabel(prefix)` (ysem/ir.go) but LLVM-legal (must start with a letter).
func (c *Context) newLabel(prefix string) string {
	name := "L" + prefix + strconv.Itoa(c.labelCount)
	c.labelCount++
	return name
}
