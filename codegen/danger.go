package codegen

import (
	"github.com/razorforge-lang/rfc/ast"
)

// lowerDangerIntrinsic lowers the raw address-typed operations legal only
// inside a `danger!` block (spec §4.G): read_as!/write_as! do a plain
// inttoptr+load/store pair; volatile_read_as!/volatile_write_as! do the
// same with LLVM's `volatile` qualifier; address_of takes a local's stack
// address as an integer; invalidate_memory lowers to a plain call into the
// runtime's `invalidate_memory` (the allocator, not codegen, owns what
// "invalidated" means at runtime).
// sema's function-body pass (pass 4) already rejected any use of these
// outside a danger block with ES011, so codegen never re-checks c.inDanger
// here — by the time a call reaches this dispatch, it is known-legal.
func (c *Context) lowerDangerIntrinsic(e *ast.GenericMethodCallExpr) (string, bool) {
	if e.Receiver != nil || len(e.TypeArgs) == 0 {
		return "", false
	}
	t := c.Sema.TypeExprs[e.TypeArgs[0]]
	ll := c.llvmType(t)
	word := c.Platform.WordBits

	switch trimBang(e.Method) {
	case "read_as":
		addr := ast.VisitExpr[string](c, e.Args[0])
		ptr := c.newTemp()
		c.emit("%s = inttoptr i%d %s to ptr", ptr, word, addr)
		val := c.newTempTyped(t)
		c.emit("%s = load %s, ptr %s", val, ll, ptr)
		return val, true
	case "write_as":
		addr := ast.VisitExpr[string](c, e.Args[0])
		value := ast.VisitExpr[string](c, e.Args[1])
		ptr := c.newTemp()
		c.emit("%s = inttoptr i%d %s to ptr", ptr, word, addr)
		c.emit("store %s %s, ptr %s", ll, value, ptr)
		return "", true
	case "volatile_read_as":
		addr := ast.VisitExpr[string](c, e.Args[0])
		ptr := c.newTemp()
		c.emit("%s = inttoptr i%d %s to ptr", ptr, word, addr)
		val := c.newTempTyped(t)
		c.emit("%s = load volatile %s, ptr %s", val, ll, ptr)
		return val, true
	case "volatile_write_as":
		addr := ast.VisitExpr[string](c, e.Args[0])
		value := ast.VisitExpr[string](c, e.Args[1])
		ptr := c.newTemp()
		c.emit("%s = inttoptr i%d %s to ptr", ptr, word, addr)
		c.emit("store volatile %s %s, ptr %s", ll, value, ptr)
		return "", true
	default:
		return "", false
	}
}

// trimBang strips the trailing `!` the parser keeps on danger-intrinsic
// names (spec §8 scenario 6: `write_as<s32>!(addr, 999)`), so this dispatch
// matches regardless of whether the parser attached it to Method or left it
// for a separate Bang token the postfix parser folded in.
func trimBang(name string) string {
	if len(name) > 0 && name[len(name)-1] == '!' {
		return name[:len(name)-1]
	}
	return name
}

// lowerAddressOf and lowerInvalidateMemory handle the two danger-block
// intrinsics that take a plain expression rather than a `<T>` type argument,
// so they're dispatched from CallExpr (see VisitCallExpr) rather than
// GenericMethodCallExpr.
func (c *Context) lowerAddressOf(args []ast.Expr) (string, bool) {
	if len(args) == 0 {
		return "", false
	}
	if ident, ok := args[0].(*ast.IdentExpr); ok {
		if slot, ok := c.locals[ident.Name]; ok {
			word := c.Platform.WordBits
			result := c.newTemp()
			c.emit("%s = ptrtoint ptr %s to i%d", result, slot.addr, word)
			return result, true
		}
	}
	val := ast.VisitExpr[string](c, args[0])
	return val, true
}

func (c *Context) lowerInvalidateMemory(args []ast.Expr) (string, bool) {
	if len(args) == 0 {
		return "", false
	}
	addr := ast.VisitExpr[string](c, args[0])
	word := c.Platform.WordBits
	c.emit("call void @invalidate_memory(i%d %s)", word, addr)
	return "", true
}
