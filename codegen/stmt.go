package codegen

import (
	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/types"
)

// VisitBlockStmt lowers each statement in sequence. A block never
// introduces its own LLVM basic block by itself — if/while/for/loop do that
// at their own boundaries — so this is a straight-line walk.
func (c *Context) VisitBlockStmt(s *ast.BlockStmt) string {
	for _, stmt := range s.Stmts {
		if c.state == StateTerminated {
			// Dead code after a return/break/continue/throw in the same
			// block (sema doesn't reject this, it's merely unreachable);
			// skip rather than emit instructions after a terminator, which
			// LLVM textual IR disallows within one basic block.
			break
		}
		ast.VisitStmt[string](c, stmt)
	}
	return ""
}

// VisitIfStmt lowers the statement-level conditional to a `br` plus one
// block per arm, rejoining at a shared continuation label unless every arm
// terminates (spec §3 "if/elif/else").
func (c *Context) VisitIfStmt(s *ast.IfStmt) string {
	endLabel := c.newLabel("if.end")
	c.lowerIfChain(s.Cond, s.Then, s.Elifs, s.Else, endLabel)
	c.label(endLabel)
	return ""
}

func (c *Context) lowerIfChain(cond ast.Expr, then *ast.BlockStmt, elifs []ast.ElifClause, els *ast.BlockStmt, endLabel string) {
	condVal := ast.VisitExpr[string](c, cond)
	thenLabel := c.newLabel("if.then")
	elseLabel := c.newLabel("if.else")
	c.emit("br i1 %s, label %%%s, label %%%s", condVal, thenLabel, elseLabel)

	c.label(thenLabel)
	ast.VisitStmt[string](c, then)
	if c.state != StateTerminated {
		c.emit("br label %%%s", endLabel)
		c.state = StateTerminated
	}

	c.label(elseLabel)
	switch {
	case len(elifs) > 0:
		c.lowerIfChain(elifs[0].Cond, elifs[0].Body, elifs[1:], els, endLabel)
	case els != nil:
		ast.VisitStmt[string](c, els)
		if c.state != StateTerminated {
			c.emit("br label %%%s", endLabel)
			c.state = StateTerminated
		}
	default:
		c.emit("br label %%%s", endLabel)
		c.state = StateTerminated
	}
}

// VisitWhenStmt lowers the pattern-match statement (spec §3 "when (pattern
// match)"). The subject's variant tag is loaded once; each arm becomes a
// comparison-and-branch in source order (sema pass 4 already proved
// exhaustiveness, so codegen doesn't need to synthesize a trap default —
// but it emits an `unreachable` fallthrough defensively in case every arm
// carries a guard).
func (c *Context) VisitWhenStmt(s *ast.WhenStmt) string {
	subjectVal := ast.VisitExpr[string](c, s.Subject)
	subjectType := c.Sema.ExprTypes[s.Subject]
	endLabel := c.newLabel("when.end")

	var tagVal string
	if subjectType != nil && subjectType.Kind == types.Named {
		tagPtr := c.newTemp()
		c.emit("%s = getelementptr %%%s, ptr %s, i32 0, i32 0", tagPtr, subjectType.Name, subjectVal)
		tagVal = c.newTemp()
		c.emit("%s = load i32, ptr %s", tagVal, tagPtr)
	}

	for _, arm := range s.Arms {
		nextLabel := c.newLabel("when.arm")
		bodyLabel := c.newLabel("when.body")
		c.lowerWhenArm(arm, subjectVal, subjectType, tagVal, bodyLabel, nextLabel, endLabel)
		c.label(nextLabel)
	}
	c.emit("unreachable")
	c.state = StateTerminated
	c.label(endLabel)
	return ""
}

func (c *Context) lowerWhenArm(arm ast.WhenArm, subjectVal string, subjectType *types.Type, tagVal string, bodyLabel, nextLabel, endLabel string) {
	switch pat := arm.Pattern.(type) {
	case *ast.WildcardPattern, *ast.BindingPattern:
		if name, ok := bindingName(pat); ok {
			c.locals[name] = localSlot{addr: subjectVal, typ: subjectType}
		}
		c.emit("br label %%%s", bodyLabel)
	case *ast.LiteralPattern:
		litVal := ast.VisitExpr[string](c, pat.Value)
		ll := c.llvmType(subjectType)
		cmp := c.newTemp()
		c.emit("%s = icmp eq %s %s, %s", cmp, ll, subjectVal, litVal)
		c.emit("br i1 %s, label %%%s, label %%%s", cmp, bodyLabel, nextLabel)
	case *ast.TypeTagPattern:
		caseIdx, ok := c.variantCaseIndex(subjectType, typeExprName(pat.Type))
		cmp := c.newTemp()
		if ok {
			c.emit("%s = icmp eq i32 %s, %d", cmp, tagVal, caseIdx)
		} else {
			c.emit("%s = icmp eq i32 1, 1", cmp)
		}
		if pat.Name != "" {
			c.locals[pat.Name] = localSlot{addr: subjectVal, typ: subjectType}
		}
		c.emit("br i1 %s, label %%%s, label %%%s", cmp, bodyLabel, nextLabel)
	default:
		// Tuple/record destructuring arms match unconditionally at this
		// layer; sema has already checked shape compatibility, and
		// binding their sub-fields is deferred to a future extension of
		// this lowering.
		c.emit("br label %%%s", bodyLabel)
	}

	c.label(bodyLabel)
	if arm.Guard != nil {
		guardVal := ast.VisitExpr[string](c, arm.Guard)
		guardBody := c.newLabel("when.guard.body")
		c.emit("br i1 %s, label %%%s, label %%%s", guardVal, guardBody, nextLabel)
		c.label(guardBody)
	}
	ast.VisitStmt[string](c, arm.Body)
	if c.state != StateTerminated {
		c.emit("br label %%%s", endLabel)
		c.state = StateTerminated
	}
}

func bindingName(p ast.Pattern) (string, bool) {
	if b, ok := p.(*ast.BindingPattern); ok {
		return b.Name, true
	}
	return "", false
}

func typeExprName(t ast.TypeExpr) string {
	if n, ok := t.(*ast.NamedType); ok {
		return n.Name
	}
	return ""
}

func (c *Context) variantCaseIndex(subjectType *types.Type, caseName string) (int, bool) {
	if subjectType == nil {
		return 0, false
	}
	layout, ok := c.structs[subjectType.Name]
	if !ok {
		return 0, false
	}
	idx := layout.FieldIndex(caseName)
	return idx, idx >= 0
}

// VisitWhileStmt lowers to the canonical header/body/exit three-block shape.
func (c *Context) VisitWhileStmt(s *ast.WhileStmt) string {
	headerLabel := c.newLabel("while.header")
	bodyLabel := c.newLabel("while.body")
	exitLabel := c.newLabel("while.exit")

	c.emit("br label %%%s", headerLabel)
	c.label(headerLabel)
	condVal := ast.VisitExpr[string](c, s.Cond)
	c.emit("br i1 %s, label %%%s, label %%%s", condVal, bodyLabel, exitLabel)

	c.label(bodyLabel)
	c.loopBreakLabels = append(c.loopBreakLabels, exitLabel)
	c.loopContinueLabels = append(c.loopContinueLabels, headerLabel)
	ast.VisitStmt[string](c, s.Body)
	c.popLoopLabels()
	if c.state != StateTerminated {
		c.emit("br label %%%s", headerLabel)
		c.state = StateTerminated
	}

	c.label(exitLabel)
	return ""
}

// VisitForStmt lowers `for x in iterable { ... }` over a RangeExpr to an
// induction-variable loop; a non-range iterable lowers through the runtime
// slice-iteration ABI instead (slice_size/slice_unsafe_ptr).
func (c *Context) VisitForStmt(s *ast.ForStmt) string {
	headerLabel := c.newLabel("for.header")
	bodyLabel := c.newLabel("for.body")
	stepLabel := c.newLabel("for.step")
	exitLabel := c.newLabel("for.exit")

	word := c.Platform.WordBits
	indVar := c.newTemp()
	c.emit("%s = alloca i%d", indVar, word)

	if rng, ok := s.Iterable.(*ast.RangeExpr); ok {
		startVal := ast.VisitExpr[string](c, rng.Start)
		c.emit("store i%d %s, ptr %s", word, startVal, indVar)
		endVal := ast.VisitExpr[string](c, rng.End)
		stepVal := "1"
		if rng.Step != nil {
			stepVal = ast.VisitExpr[string](c, rng.Step)
		}

		c.emit("br label %%%s", headerLabel)
		c.label(headerLabel)
		cur := c.newTemp()
		c.emit("%s = load i%d, ptr %s", cur, word, indVar)
		cmp := c.newTemp()
		c.emit("%s = icmp slt i%d %s, %s", cmp, word, cur, endVal)
		c.emit("br i1 %s, label %%%s, label %%%s", cmp, bodyLabel, exitLabel)

		c.label(bodyLabel)
		c.locals[s.Var] = localSlot{addr: indVar, typ: c.Sema.ExprTypes[rng.Start]}
		c.loopBreakLabels = append(c.loopBreakLabels, exitLabel)
		c.loopContinueLabels = append(c.loopContinueLabels, stepLabel)
		ast.VisitStmt[string](c, s.Body)
		c.popLoopLabels()
		if c.state != StateTerminated {
			c.emit("br label %%%s", stepLabel)
			c.state = StateTerminated
		}

		c.label(stepLabel)
		cur2 := c.newTemp()
		c.emit("%s = load i%d, ptr %s", cur2, word, indVar)
		next := c.newTemp()
		c.emit("%s = add i%d %s, %s", next, word, cur2, stepVal)
		c.emit("store i%d %s, ptr %s", word, next, indVar)
		c.emit("br label %%%s", headerLabel)
		c.state = StateTerminated

		c.label(exitLabel)
		return ""
	}

	// Arbitrary iterable: drive via the runtime slice ABI (spec §6).
	sliceVal := ast.VisitExpr[string](c, s.Iterable)
	sizeVal := c.newTemp()
	c.emit("%s = call i%d @slice_size(ptr %s)", sizeVal, word, sliceVal)
	c.emit("store i%d 0, ptr %s", word, indVar)

	c.emit("br label %%%s", headerLabel)
	c.label(headerLabel)
	cur := c.newTemp()
	c.emit("%s = load i%d, ptr %s", cur, word, indVar)
	cmp := c.newTemp()
	c.emit("%s = icmp slt i%d %s, %s", cmp, word, cur, sizeVal)
	c.emit("br i1 %s, label %%%s, label %%%s", cmp, bodyLabel, exitLabel)

	c.label(bodyLabel)
	elemAddr := c.newTemp()
	c.emit("%s = call i%d @slice_unsafe_ptr(ptr %s, i%d %s)", elemAddr, word, sliceVal, word, cur)
	c.locals[s.Var] = localSlot{addr: elemAddr, typ: c.Sema.ExprTypes[s.Iterable]}
	c.loopBreakLabels = append(c.loopBreakLabels, exitLabel)
	c.loopContinueLabels = append(c.loopContinueLabels, stepLabel)
	ast.VisitStmt[string](c, s.Body)
	c.popLoopLabels()
	if c.state != StateTerminated {
		c.emit("br label %%%s", stepLabel)
		c.state = StateTerminated
	}

	c.label(stepLabel)
	cur2 := c.newTemp()
	c.emit("%s = load i%d, ptr %s", cur2, word, indVar)
	next := c.newTemp()
	c.emit("%s = add i%d %s, 1", next, word, cur2)
	c.emit("store i%d %s, ptr %s", word, next, indVar)
	c.emit("br label %%%s", headerLabel)
	c.state = StateTerminated

	c.label(exitLabel)
	return ""
}

// VisitLoopStmt lowers an unconditional loop, exited only via break/return/
// throw (spec §3).
func (c *Context) VisitLoopStmt(s *ast.LoopStmt) string {
	bodyLabel := c.newLabel("loop.body")
	exitLabel := c.newLabel("loop.exit")

	c.emit("br label %%%s", bodyLabel)
	c.label(bodyLabel)
	c.loopBreakLabels = append(c.loopBreakLabels, exitLabel)
	c.loopContinueLabels = append(c.loopContinueLabels, bodyLabel)
	ast.VisitStmt[string](c, s.Body)
	c.popLoopLabels()
	if c.state != StateTerminated {
		c.emit("br label %%%s", bodyLabel)
		c.state = StateTerminated
	}

	c.label(exitLabel)
	return ""
}

func (c *Context) popLoopLabels() {
	c.loopBreakLabels = c.loopBreakLabels[:len(c.loopBreakLabels)-1]
	c.loopContinueLabels = c.loopContinueLabels[:len(c.loopContinueLabels)-1]
}

func (c *Context) VisitBreakStmt(s *ast.BreakStmt) string {
	target := c.loopBreakLabels[len(c.loopBreakLabels)-1]
	c.emit("br label %%%s", target)
	c.state = StateTerminated
	return ""
}

func (c *Context) VisitContinueStmt(s *ast.ContinueStmt) string {
	target := c.loopContinueLabels[len(c.loopContinueLabels)-1]
	c.emit("br label %%%s", target)
	c.state = StateTerminated
	return ""
}

func (c *Context) VisitReturnStmt(s *ast.ReturnStmt) string {
	if s.Value == nil {
		c.emit("ret void")
		c.state = StateTerminated
		return ""
	}
	val := ast.VisitExpr[string](c, s.Value)
	retType := c.Sema.ExprTypes[s.Value]
	c.emit("ret %s %s", c.llvmType(retType), val)
	c.state = StateTerminated
	return ""
}

// VisitDangerStmt delegates to danger.go's marker-comment-wrapped lowering
// (spec §4.G: "; === DANGER BLOCK START ===" / "END").
func (c *Context) VisitDangerStmt(s *ast.DangerStmt) string {
	prev := c.inDanger
	c.inDanger = true
	c.comment("=== DANGER BLOCK START ===")
	ast.VisitStmt[string](c, s.Body)
	c.comment("=== DANGER BLOCK END ===")
	c.inDanger = prev
	return ""
}

func (c *Context) VisitExprStmt(s *ast.ExprStmt) string {
	ast.VisitExpr[string](c, s.X)
	return ""
}

// VisitDeclStmt lowers a local `let`/`var` binding to a stack alloca plus an
// optional store of its initializer.
func (c *Context) VisitDeclStmt(s *ast.DeclStmt) string {
	vd, ok := s.Decl.(*ast.VariableDecl)
	if !ok {
		return ""
	}
	var t *types.Type
	if vd.Type != nil {
		t = c.Sema.TypeExprs[vd.Type]
	} else if vd.Init != nil {
		t = c.Sema.ExprTypes[vd.Init]
	}
	ll := c.llvmType(t)
	slot := c.newTemp()
	c.emit("%s = alloca %s", slot, ll)
	if vd.Init != nil {
		val := ast.VisitExpr[string](c, vd.Init)
		c.emit("store %s %s, ptr %s", ll, val, slot)
	}
	c.locals[vd.Name] = localSlot{addr: slot, typ: t}
	return ""
}
