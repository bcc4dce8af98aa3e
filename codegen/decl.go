package codegen

import (
	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/types"
)

// Emit lowers a fully analyzed ast.Program to LLVM textual IR (spec §4.G's
// top-level entry point). It assumes sema has already run with no Fatal
// diagnostics; emitting despite Error diagnostics is gated by
// c.Opts.EmitEvenWithErrors, which the caller (compiler.Pipeline) checks
// before calling Emit at all.
func Emit(c *Context, prog *ast.Program) string {
	c.emitHeader()
	for _, d := range prog.Decls {
		ast.VisitDecl[string](c, d)
	}
	// Lambdas discovered while lowering function bodies become top-level
	// functions themselves; draining by index rather than ranging lets a
	// lambda nested inside another lambda's body enqueue its own entry.
	for i := 0; i < len(c.pendingFns); i++ {
		c.emitFunction(c.pendingFns[i])
	}
	c.emitFooter()
	return c.preamble.String() + "\n" + c.body.String()
}

func (c *Context) VisitFunctionDecl(d *ast.FunctionDecl) string {
	c.emitFunction(d)
	return ""
}

// VisitExternalFunctionDecl emits a `declare` line with the annotated
// calling convention (spec §4.G's calling-convention mapping table).
func (c *Context) VisitExternalFunctionDecl(d *ast.ExternalFunctionDecl) string {
	params := make([]string, len(d.Params))
	for i, p := range d.Params {
		params[i] = c.llvmType(c.Sema.TypeExprs[p.Type])
	}
	ret := c.llvmType(c.Sema.TypeExprs[d.ReturnType])
	attr := c.callConvAttr(d.CallingConvention)
	c.preambleLine("declare %s %s @%s(%s)", attr, ret, d.Name, joinTypes(params))
	return ""
}

// VisitRecordDecl emits a named LLVM struct type for the value aggregate
// and records its field layout so field access can GEP into it by index
// (spec §4.G: records/entities are otherwise opaque `ptr` handles at the
// expression level, but a concrete layout still backs the `%Name` type the
// runtime's allocator sizes against).
func (c *Context) VisitRecordDecl(d *ast.RecordDecl) string {
	c.declareStruct(d.Name, d.Fields)
	return ""
}

// VisitEntityDecl emits the entity's struct layout (its own fields appended
// after its base's, single inheritance per spec §3) plus each of its
// methods as a top-level function named `EntityName.method`.
func (c *Context) VisitEntityDecl(d *ast.EntityDecl) string {
	fields := d.Fields
	if d.Extends != "" {
		if base, ok := c.structs[d.Extends]; ok {
			fields = append(baseFields(base), fields...)
		}
	}
	c.declareStruct(d.Name, fields)
	for _, m := range d.Methods {
		c.emitFunction(m)
	}
	return ""
}

func baseFields(s *StructLayout) []ast.Field {
	out := make([]ast.Field, len(s.Fields))
	for i, name := range s.Fields {
		out[i] = ast.Field{Name: name}
	}
	return out
}

func (c *Context) declareStruct(name string, fields []ast.Field) {
	layout := &StructLayout{Name: name}
	llvmFields := make([]string, len(fields))
	for i, f := range fields {
		t := c.Sema.TypeExprs[f.Type]
		layout.Fields = append(layout.Fields, f.Name)
		layout.Types = append(layout.Types, t)
		llvmFields[i] = c.llvmType(t)
	}
	c.structs[name] = layout
	c.preambleLine("%%%s = type { %s }", name, joinTypes(llvmFields))
}

// VisitVariantDecl emits a tagged-union layout: an i32 discriminant plus a
// payload slot of WordBits/8 bytes, whatever the cases' field types (spec
// §3 "variant/choice (sum type)"; `when` exhaustiveness is sema's concern,
// not codegen's). The case names are recorded in source order so a `when`
// arm's `is Case` pattern can compare the loaded tag against the case index.
func (c *Context) VisitVariantDecl(d *ast.VariantDecl) string {
	c.preambleLine("%%%s = type { i32, [%d x i8] }", d.Name, c.Platform.WordBits/8)
	layout := &StructLayout{Name: d.Name}
	for i, vc := range d.Cases {
		c.preambleLine("; %s.%s = tag %d", d.Name, vc.Name, i)
		layout.Fields = append(layout.Fields, vc.Name)
		layout.Types = append(layout.Types, nil)
	}
	c.structs[d.Name] = layout
	return ""
}

// VisitProtocolDecl has nothing to lower: a protocol has no storage and its
// methods are abstract signatures implemented elsewhere (spec §3: "protocol
// (interface)"); it exists purely for sema's structural conformance checks.
func (c *Context) VisitProtocolDecl(d *ast.ProtocolDecl) string { return "" }

// VisitImportDecl emits nothing: module loading already happened in sema
// pass 1, and its declarations were merged into this program's symbol
// table, not re-lowered per import site.
func (c *Context) VisitImportDecl(d *ast.ImportDecl) string { return "" }

// VisitRedefineDecl emits nothing of its own: a redefinition only affects
// name resolution (sema), not storage or code.
func (c *Context) VisitRedefineDecl(d *ast.RedefineDecl) string { return "" }

// VisitVariableDecl at top level lowers to an LLVM global with a zero
// initializer. When Init is present it also defines an internal
// `@__init.<name>` function that evaluates Init and stores it into the
// global (globals can't run arbitrary initializer expressions in LLVM IR the
// way a local `let` can); nothing in this package registers or calls that
// function.
func (c *Context) VisitVariableDecl(d *ast.VariableDecl) string {
	var t *types.Type
	if d.Type != nil {
		t = c.Sema.TypeExprs[d.Type]
	} else if d.Init != nil {
		t = c.Sema.ExprTypes[d.Init]
	}
	llty := c.llvmType(t)
	c.preambleLine("@%s = internal global %s zeroinitializer", d.Name, llty)
	if d.Init != nil {
		c.emitGlobalInitializer(d, llty)
	}
	return ""
}

func (c *Context) emitGlobalInitializer(d *ast.VariableDecl, llty string) {
	fnName := "__init." + d.Name
	c.line("define internal void @%s() {", fnName)
	c.state = StatePrologue
	c.label("entry")
	val := ast.VisitExpr[string](c, d.Init)
	c.emit("store %s %s, ptr @%s", llty, val, d.Name)
	c.emit("ret void")
	c.line("}")
	c.line("")
	c.state = StateComplete
}
