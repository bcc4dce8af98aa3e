package codegen

import (
	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/types"
)

// emitFunction lowers one FunctionDecl through the Outside -> Prologue ->
// Body -> Terminated -> Complete state machine spec §4.G names. Generated
// (variantgen-synthesized) functions skip straight to variant.go's dedicated
// lowering instead of walking their placeholder body, per the design
// decision recorded in variantgen.go: sema never re-analyzed these bodies,
// so there is no exprTypes/refs entry for codegen to consult here.
func (c *Context) emitFunction(d *ast.FunctionDecl) {
	if d.Abstract {
		return
	}
	if d.Generated {
		c.emitVariantFunction(d)
		return
	}

	prevFn, prevBlock, prevLocals, prevState := c.currentFn, c.currentBlock, c.locals, c.state
	c.currentFn = d
	c.locals = make(map[string]localSlot)
	c.state = StatePrologue

	retType := c.Sema.TypeExprs[d.ReturnType]
	retLL := c.llvmType(retType)
	c.funcReturnTypes[d.Name] = retType

	params := make([]string, len(d.Params))
	for i, p := range d.Params {
		pt := c.Sema.TypeExprs[p.Type]
		params[i] = c.llvmType(pt) + " %arg." + p.Name
	}
	c.line("define %s @%s(%s) {", retLL, d.Name, joinTypes(params))
	c.label("entry")

	// Parameters are stored to stack slots immediately so later reads/writes
	// of the same name (re-bound locals, danger-block stores) are uniform
	// `alloca`+`load`/`store` traffic rather than special-cased SSA operands,
	// mirroring how LLVM frontends universally lower mutable parameters.
	for _, p := range d.Params {
		pt := c.Sema.TypeExprs[p.Type]
		ll := c.llvmType(pt)
		slot := c.newTemp()
		c.emit("%s = alloca %s", slot, ll)
		c.emit("store %s %%arg.%s, ptr %s", ll, p.Name, slot)
		c.locals[p.Name] = localSlot{addr: slot, typ: pt}
	}

	ast.VisitStmt[string](c, d.Body)

	if c.state != StateTerminated {
		c.emitImplicitReturn(retType)
	}
	c.line("}")
	c.line("")
	c.state = StateComplete

	c.currentFn, c.currentBlock, c.locals = prevFn, prevBlock, prevLocals
	if prevState != StateOutside {
		c.state = prevState
	}
}

// localSlot is one local's stack-allocated address plus its static type,
// looked up by name inside the current function.
type localSlot struct {
	addr string
	typ  *types.Type
}

// emitImplicitReturn synthesizes the fallthrough `ret` a block ending
// without an explicit return needs: `ret void` for a void function, or
// `ret <ty> zeroinitializer`-equivalent default for a typed one (sema
// already rejected any function whose checked paths don't all return, so
// this only fires for a void function's final block).
func (c *Context) emitImplicitReturn(retType *types.Type) {
	if retType == nil || retType.Kind == types.Void {
		c.emit("ret void")
	} else {
		c.emit("ret %s %s", c.llvmType(retType), c.zeroValue(retType))
	}
	c.state = StateTerminated
}
