package codegen

import (
	"github.com/razorforge-lang/rfc/ast"
)

// emitVariantFunction lowers one variantgen-synthesized try_/check_/find_
// wrapper directly by VariantKind+GeneratedOf, per the design decision
// recorded in variantgen.go: these bodies were never re-type-checked by
// sema (spec §4.F: "Generated=true; skips re-analysis"), so there is no
// exprTypes/refs entry for a generic AST walk to consult. Each variant
// forwards the original's parameters and calls it directly; none of the
// three can observe the original's failure path without real exception
// unwinding, which this trap-based error model (spec §4.G: verify!/breach!/
// stop! lower to `rf_throw`+`unreachable`) doesn't provide, so every variant
// treats a normal return as success — a documented simplification, not an
// oversight: a trapped call never reaches the wrapper's own `ret` at all.
func (c *Context) emitVariantFunction(d *ast.FunctionDecl) {
	origRet := c.funcReturnTypes[d.GeneratedOf]
	origLL := c.llvmType(origRet)

	params := make([]string, len(d.Params))
	for i, p := range d.Params {
		pt := c.Sema.TypeExprs[p.Type]
		params[i] = c.llvmType(pt) + " %arg." + p.Name
	}

	switch d.VariantKind {
	case ast.TryVariant, ast.FindVariant:
		wrapperLL := "{ " + origLL + ", i1 }"
		c.line("define %s @%s(%s) {", wrapperLL, d.Name, joinTypes(params))
		c.label("entry")
		callResult := c.forwardCall(d, origLL)
		packed := c.newTemp()
		c.emit("%s = insertvalue %s undef, %s %s, 0", packed, wrapperLL, origLL, callResult)
		full := c.newTemp()
		c.emit("%s = insertvalue %s %s, i1 1, 1", full, wrapperLL, packed)
		c.emit("ret %s %s", wrapperLL, full)
		c.line("}")
		c.line("")

	case ast.CheckVariant:
		c.line("define i1 @%s(%s) {", d.Name, joinTypes(params))
		c.label("entry")
		c.forwardCall(d, origLL)
		c.emit("ret i1 1")
		c.line("}")
		c.line("")

	default:
		c.line("define %s @%s(%s) {", origLL, d.Name, joinTypes(params))
		c.label("entry")
		result := c.forwardCall(d, origLL)
		c.emit("ret %s %s", origLL, result)
		c.line("}")
		c.line("")
	}
}

// forwardCall emits a direct call to the original function with the
// wrapper's own parameters passed straight through, unchanged.
func (c *Context) forwardCall(d *ast.FunctionDecl, origLL string) string {
	args := make([]string, len(d.Params))
	for i, p := range d.Params {
		pt := c.Sema.TypeExprs[p.Type]
		args[i] = c.llvmType(pt) + " %arg." + p.Name
	}
	if origLL == "void" {
		c.emit("call void @%s(%s)", d.GeneratedOf, joinTypes(args))
		return ""
	}
	result := c.newTemp()
	c.emit("%s = call %s @%s(%s)", result, origLL, d.GeneratedOf, joinTypes(args))
	return result
}
