package codegen

import (
	"fmt"
	"strconv"

	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/token"
	"github.com/razorforge-lang/rfc/types"
)

// VisitLiteralExpr lowers a literal token straight to its LLVM constant
// spelling; text/letter literals are interned into the string pool and
// returned as a pointer to the pool entry.
func (c *Context) VisitLiteralExpr(e *ast.LiteralExpr) string {
	tok := e.Tok
	switch tok.Kind {
	case token.IntLiteral, token.MemoryLiteral, token.DurationLiteral:
		return strconv.FormatInt(tok.IntValue, 10)
	case token.FloatLiteral, token.DecimalLiteral:
		return strconv.FormatFloat(tok.FloatValue, 'g', -1, 64)
	case token.TextLiteral, token.FormatTextLiteral:
		label := c.internString(tok.StringValue)
		ptr := c.newTemp()
		c.emit("%s = getelementptr inbounds [%d x i8], ptr @%s, i64 0, i64 0", ptr, len(tok.StringValue)+1, label)
		return ptr
	case token.LetterLiteral:
		return strconv.Itoa(int(tok.RuneValue))
	case token.KwTrue:
		return "1"
	case token.KwFalse:
		return "0"
	case token.KwNone:
		return "null"
	default:
		return "0"
	}
}

// VisitIdentExpr loads a local's value from its stack slot. sema resolved
// the reference already (Refs side table); codegen only needs the name to
// find the slot this function's prologue allocated.
func (c *Context) VisitIdentExpr(e *ast.IdentExpr) string {
	slot, ok := c.locals[e.Name]
	if !ok {
		// A module-level function/global reference: its "value" is the
		// symbol itself, used directly as a callee or global pointer.
		return "@" + e.Name
	}
	t := c.Sema.ExprTypes[e]
	val := c.newTempTyped(t)
	c.emit("%s = load %s, ptr %s", val, c.llvmType(t), slot.addr)
	return val
}

// VisitBinaryExpr lowers an operator to its LLVM instruction, dispatching
// the four overflow-variant families (spec §4.B/§4.E.4) to their own
// lowering in overflow.go; logical and/or short-circuit through the same
// block-splitting shape IfStmt uses.
func (c *Context) VisitBinaryExpr(e *ast.BinaryExpr) string {
	if e.Op == token.LogicalAnd || e.Op == token.LogicalOr {
		return c.lowerShortCircuit(e)
	}
	if token.IsOverflowVariant(e.Op) {
		return c.lowerOverflowBinary(e)
	}
	switch e.Op {
	case token.Plus, token.Minus, token.Star, token.SlashSlash:
		return c.lowerCheckedArith(e)
	}

	lhs := ast.VisitExpr[string](c, e.Left)
	rhs := ast.VisitExpr[string](c, e.Right)
	opType := c.Sema.ExprTypes[e.Left]
	ll := c.llvmType(opType)

	result := c.newTemp()
	instr, ok := simpleBinOp(e.Op, opType)
	if !ok {
		c.comment("unsupported operator %s", e.Op)
		return lhs
	}
	c.emit("%s = %s %s %s, %s", result, instr, ll, lhs, rhs)
	return result
}

func simpleBinOp(op token.Kind, t *types.Type) (string, bool) {
	unsigned := t != nil && t.Kind == types.Unsigned
	float := t != nil && t.Kind == types.Float
	switch op {
	case token.Plus:
		if float {
			return "fadd", true
		}
		return "add", true
	case token.Minus:
		if float {
			return "fsub", true
		}
		return "sub", true
	case token.Star:
		if float {
			return "fmul", true
		}
		return "mul", true
	case token.Slash, token.SlashSlash:
		if float {
			return "fdiv", true
		}
		if unsigned {
			return "udiv", true
		}
		return "sdiv", true
	case token.Percent:
		if float {
			return "frem", true
		}
		if unsigned {
			return "urem", true
		}
		return "srem", true
	case token.Amp:
		return "and", true
	case token.Pipe:
		return "or", true
	case token.Caret:
		return "xor", true
	case token.Shl:
		return "shl", true
	case token.Shr:
		if unsigned {
			return "lshr", true
		}
		return "ashr", true
	case token.Eq:
		if float {
			return "fcmp oeq", true
		}
		return "icmp eq", true
	case token.NotEq:
		if float {
			return "fcmp one", true
		}
		return "icmp ne", true
	case token.Lt:
		return cmpOp("lt", unsigned, float), true
	case token.LtEq:
		return cmpOp("le", unsigned, float), true
	case token.Gt:
		return cmpOp("gt", unsigned, float), true
	case token.GtEq:
		return cmpOp("ge", unsigned, float), true
	default:
		return "", false
	}
}

func cmpOp(suffix string, unsigned, float bool) string {
	if float {
		return "fcmp o" + suffix
	}
	if unsigned {
		return "icmp u" + suffix
	}
	return "icmp s" + suffix
}

// lowerShortCircuit lowers `and`/`or` without evaluating the right operand
// when the left already decides the result.
func (c *Context) lowerShortCircuit(e *ast.BinaryExpr) string {
	lhs := ast.VisitExpr[string](c, e.Left)
	rhsLabel := c.newLabel("sc.rhs")
	endLabel := c.newLabel("sc.end")
	shortLabel := c.currentBlock

	if e.Op == token.LogicalAnd {
		c.emit("br i1 %s, label %%%s, label %%%s", lhs, rhsLabel, endLabel)
	} else {
		c.emit("br i1 %s, label %%%s, label %%%s", lhs, endLabel, rhsLabel)
	}

	c.label(rhsLabel)
	rhs := ast.VisitExpr[string](c, e.Right)
	rhsBlock := c.currentBlock
	c.emit("br label %%%s", endLabel)

	c.label(endLabel)
	result := c.newTemp()
	c.emit("%s = phi i1 [ %s, %%%s ], [ %s, %%%s ]", result, lhs, shortLabel, rhs, rhsBlock)
	return result
}

func (c *Context) VisitUnaryExpr(e *ast.UnaryExpr) string {
	operand := ast.VisitExpr[string](c, e.Operand)
	t := c.Sema.ExprTypes[e.Operand]
	ll := c.llvmType(t)
	result := c.newTemp()
	switch e.Op {
	case token.Minus:
		if t != nil && t.Kind == types.Float {
			c.emit("%s = fneg %s %s", result, ll, operand)
		} else {
			c.emit("%s = sub %s 0, %s", result, ll, operand)
		}
	case token.Tilde:
		c.emit("%s = xor %s %s, -1", result, ll, operand)
	case token.LogicalNot, token.Bang:
		c.emit("%s = xor i1 %s, 1", result, operand)
	default:
		return operand
	}
	return result
}

// VisitCallExpr dispatches the `verify!`/`breach!`/`stop!` error-throw
// intrinsics (parsed as a call to a bare IdentExpr named with its trailing
// `!`) to intrinsics.go, and otherwise lowers a plain direct call.
func (c *Context) VisitCallExpr(e *ast.CallExpr) string {
	if ident, ok := e.Callee.(*ast.IdentExpr); ok {
		if result, handled := c.lowerThrowIntrinsic(ident.Name, e.Args); handled {
			return result
		}
		switch ident.Name {
		case "address_of":
			if result, handled := c.lowerAddressOf(e.Args); handled {
				return result
			}
		case "invalidate_memory":
			if result, handled := c.lowerInvalidateMemory(e.Args); handled {
				return result
			}
		}
	}
	callee := ast.VisitExpr[string](c, e.Callee)
	args := make([]string, len(e.Args))
	argTypes := make([]*types.Type, len(e.Args))
	for i, a := range e.Args {
		args[i] = ast.VisitExpr[string](c, a)
		argTypes[i] = c.Sema.ExprTypes[a]
	}
	retType := c.Sema.ExprTypes[e]
	return c.emitCall(callee, args, argTypes, retType)
}

func (c *Context) emitCall(callee string, args []string, argTypes []*types.Type, retType *types.Type) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = c.llvmType(argTypes[i]) + " " + a
	}
	retLL := c.llvmType(retType)
	if retType == nil || retType.Kind == types.Void {
		c.emit("call void %s(%s)", callee, joinTypes(parts))
		return ""
	}
	result := c.newTempTyped(retType)
	c.emit("%s = call %s %s(%s)", result, retLL, callee, joinTypes(parts))
	return result
}

// VisitMethodCallExpr lowers `receiver.method(args)`. Slice/text built-in
// methods (spec §4.G) forward straight to the matching runtime ABI symbol;
// a user-defined entity method lowers to a direct call to `Entity.method`
// with the receiver prepended as the first argument.
func (c *Context) VisitMethodCallExpr(e *ast.MethodCallExpr) string {
	recv := ast.VisitExpr[string](c, e.Receiver)
	recvType := c.Sema.ExprTypes[e.Receiver]

	if runtimeFn, ok := sliceMethodRuntimeFn(e.Method); ok && recvType != nil && recvType.Kind == types.Slice {
		args := []string{recv}
		argTypes := []*types.Type{recvType}
		for _, a := range e.Args {
			args = append(args, ast.VisitExpr[string](c, a))
			argTypes = append(argTypes, c.Sema.ExprTypes[a])
		}
		return c.emitCall("@"+runtimeFn, args, argTypes, c.Sema.ExprTypes[e])
	}

	args := []string{recv}
	argTypes := []*types.Type{recvType}
	for _, a := range e.Args {
		args = append(args, ast.VisitExpr[string](c, a))
		argTypes = append(argTypes, c.Sema.ExprTypes[a])
	}
	callee := "@" + recvTypeName(recvType) + "." + e.Method
	return c.emitCall(callee, args, argTypes, c.Sema.ExprTypes[e])
}

func recvTypeName(t *types.Type) string {
	if t == nil {
		return ""
	}
	return t.Name
}

func sliceMethodRuntimeFn(method string) (string, bool) {
	switch method {
	case "size":
		return "slice_size", true
	case "address":
		return "slice_address", true
	case "is_valid":
		return "slice_is_valid", true
	case "hijack":
		return "slice_hijack", true
	case "refer":
		return "slice_refer", true
	default:
		return "", false
	}
}

// VisitGenericMethodCallExpr dispatches compile-time intrinsics
// (size_of<T>, align_of<T>, get_compile_type_name<T>, field_count<T>,
// field_names<T>, has_method<T>) and the source-location intrinsics to
// intrinsics.go; any other generic call lowers like a plain method/free
// call with its type arguments erased (this core never emits monomorphized
// instantiations per-callsite — spec §4.E.3 resolves generics at the type
// level only).
func (c *Context) VisitGenericMethodCallExpr(e *ast.GenericMethodCallExpr) string {
	if result, handled := c.lowerDangerIntrinsic(e); handled {
		return result
	}
	if result, handled := c.lowerCompileTimeIntrinsic(e); handled {
		return result
	}
	if e.Receiver == nil {
		callee := "@" + e.Method
		args := make([]string, len(e.Args))
		argTypes := make([]*types.Type, len(e.Args))
		for i, a := range e.Args {
			args[i] = ast.VisitExpr[string](c, a)
			argTypes[i] = c.Sema.ExprTypes[a]
		}
		return c.emitCall(callee, args, argTypes, c.Sema.ExprTypes[e])
	}
	recv := ast.VisitExpr[string](c, e.Receiver)
	recvType := c.Sema.ExprTypes[e.Receiver]
	args := []string{recv}
	argTypes := []*types.Type{recvType}
	for _, a := range e.Args {
		args = append(args, ast.VisitExpr[string](c, a))
		argTypes = append(argTypes, c.Sema.ExprTypes[a])
	}
	callee := "@" + recvTypeName(recvType) + "." + e.Method
	return c.emitCall(callee, args, argTypes, c.Sema.ExprTypes[e])
}

// VisitIndexExpr lowers `x[i]` over a slice via the runtime ABI, or over a
// tuple via a direct GEP (tuples have a statically known field order).
func (c *Context) VisitIndexExpr(e *ast.IndexExpr) string {
	base := ast.VisitExpr[string](c, e.X)
	baseType := c.Sema.ExprTypes[e.X]
	idx := ast.VisitExpr[string](c, e.Index)

	elemType := c.Sema.ExprTypes[e]
	if baseType != nil && baseType.Kind == types.Slice {
		word := c.Platform.WordBits
		addr := c.newTemp()
		c.emit("%s = call i%d @slice_unsafe_ptr(ptr %s, i%d %s)", addr, word, base, word, idx)
		ptr := c.newTemp()
		c.emit("%s = inttoptr i%d %s to ptr", ptr, word, addr)
		val := c.newTempTyped(elemType)
		c.emit("%s = load %s, ptr %s", val, c.llvmType(elemType), ptr)
		return val
	}

	fieldPtr := c.newTemp()
	c.emit("%s = getelementptr %s, ptr %s, i32 0, i32 %s", fieldPtr, c.llvmType(baseType), base, idx)
	val := c.newTempTyped(elemType)
	c.emit("%s = load %s, ptr %s", val, c.llvmType(elemType), fieldPtr)
	return val
}

// VisitFieldAccessExpr GEPs into the receiver's StructLayout by field index
// (recorded when its RecordDecl/EntityDecl was emitted).
func (c *Context) VisitFieldAccessExpr(e *ast.FieldAccessExpr) string {
	base := ast.VisitExpr[string](c, e.X)
	baseType := c.Sema.ExprTypes[e.X]
	fieldType := c.Sema.ExprTypes[e]

	if baseType == nil || baseType.Kind != types.Named {
		c.comment("field access on non-named type, field %s", e.Field)
		return base
	}
	layout, ok := c.structs[baseType.Name]
	idx := 0
	if ok {
		idx = layout.FieldIndex(e.Field)
		if idx < 0 {
			idx = 0
		}
	}
	fieldPtr := c.newTemp()
	c.emit("%s = getelementptr %%%s, ptr %s, i32 0, i32 %d", fieldPtr, baseType.Name, base, idx)
	val := c.newTempTyped(fieldType)
	c.emit("%s = load %s, ptr %s", val, c.llvmType(fieldType), fieldPtr)
	return val
}

// VisitRangeExpr has no standalone value: a RangeExpr is only ever consumed
// directly by ForStmt's lowering, which reads Start/End/Step itself.
func (c *Context) VisitRangeExpr(e *ast.RangeExpr) string {
	return ast.VisitExpr[string](c, e.Start)
}

// VisitConditionalExpr lowers the expression-level `if A then B else C`
// form to a phi over the two arm blocks.
func (c *Context) VisitConditionalExpr(e *ast.ConditionalExpr) string {
	condVal := ast.VisitExpr[string](c, e.Cond)
	thenLabel := c.newLabel("cond.then")
	elseLabel := c.newLabel("cond.else")
	endLabel := c.newLabel("cond.end")

	c.emit("br i1 %s, label %%%s, label %%%s", condVal, thenLabel, elseLabel)

	c.label(thenLabel)
	thenVal := ast.VisitExpr[string](c, e.Then)
	thenBlock := c.currentBlock
	c.emit("br label %%%s", endLabel)

	c.label(elseLabel)
	elseVal := ast.VisitExpr[string](c, e.Else)
	elseBlock := c.currentBlock
	c.emit("br label %%%s", endLabel)

	c.label(endLabel)
	resultType := c.Sema.ExprTypes[e]
	result := c.newTempTyped(resultType)
	c.emit("%s = phi %s [ %s, %%%s ], [ %s, %%%s ]", result, c.llvmType(resultType), thenVal, thenBlock, elseVal, elseBlock)
	return result
}

// VisitLambdaExpr synthesizes a top-level function for the lambda body and
// enqueues it for emission once the current function is complete (Go's
// single-pass buffer writer can't interleave a nested function's text
// mid-instruction), returning a pointer to it as the expression's value.
func (c *Context) VisitLambdaExpr(e *ast.LambdaExpr) string {
	c.lambdaCounter++
	name := fmt.Sprintf("lambda.%d", c.lambdaCounter)

	retExpr := e.Body
	body := &ast.BlockStmt{
		Stmts: []ast.Stmt{&ast.ReturnStmt{Value: retExpr, Span: e.Span}},
		Span:  e.Span,
	}
	fn := &ast.FunctionDecl{
		Name:   name,
		Params: e.Params,
		Body:   body,
		Span:   e.Span,
	}
	c.pendingFns = append(c.pendingFns, fn)
	return "@" + name
}

// VisitFormatStringExpr lowers each chunk/hole in source order, building the
// result by repeated calls into the fixed runtime ABI (spec §6): literal
// chunks copy their pooled bytes directly; each interpolated hole is
// evaluated to a text/slice value and its bytes (read via slice_address/
// slice_size, the same pair slice method calls use elsewhere) are copied in
// after it, so no interpolation is silently dropped.
func (c *Context) VisitFormatStringExpr(e *ast.FormatStringExpr) string {
	word := c.Platform.WordBits
	result := c.newTemp()
	c.emit("%s = call ptr @heap_alloc(i%d 0)", result, word)
	for _, part := range e.Parts {
		if part.Value == nil {
			label := c.internString(part.Chunk)
			ptr := c.newTemp()
			c.emit("%s = getelementptr inbounds [%d x i8], ptr @%s, i64 0, i64 0", ptr, len(part.Chunk)+1, label)
			c.emit("call void @memory_copy(ptr %s, ptr %s, i%d %d)", result, ptr, word, len(part.Chunk))
			continue
		}
		holeVal := ast.VisitExpr[string](c, part.Value)
		holeAddr := c.newTemp()
		c.emit("%s = call i%d @slice_address(ptr %s)", holeAddr, word, holeVal)
		holeSize := c.newTemp()
		c.emit("%s = call i%d @slice_size(ptr %s)", holeSize, word, holeVal)
		holePtr := c.newTemp()
		c.emit("%s = inttoptr i%d %s to ptr", holePtr, word, holeAddr)
		c.emit("call void @memory_copy(ptr %s, ptr %s, i%d %s)", result, holePtr, word, holeSize)
	}
	return result
}
