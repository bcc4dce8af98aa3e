package sema

import (
	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/diag"
	"github.com/razorforge-lang/rfc/token"
	"github.com/razorforge-lang/rfc/types"
)

// analyzeFunctions is sema pass 4 (spec §4.E.4): every function body is
// walked with the Analyzer as an ast.Visitor[*types.Type], resolving each
// expression's type and checking statement-level invariants (danger-block
// gating, when-exhaustiveness, return-type compatibility). Synthesized
// functions (variantgen's try_/check_/find_ siblings) are skipped — they are
// guaranteed well-typed by construction (spec §4.F).
func (a *Analyzer) analyzeFunctions(prog *ast.Program) {
	for _, mod := range a.orderedModules() {
		for _, d := range mod.Program.Decls {
			a.checkDecl(d)
		}
	}
}

// --- Declarations ---

func (a *Analyzer) VisitFunctionDecl(d *ast.FunctionDecl) *types.Type {
	if d.Generated {
		return nil
	}
	prevScope, prevFn, prevRet, prevDanger := a.currentScope, a.currentFn, a.currentRet, a.inDanger
	a.currentScope = NewScope(a.global)
	a.currentFn = d
	a.currentRet = a.resolveTypeExpr(d.ReturnType)
	a.inDanger = false

	for _, p := range d.Params {
		sym := &Symbol{ID: a.newSymbolID(), Name: p.Name, Kind: SymVariable, Span: p.Span, Data: a.resolveTypeExpr(p.Type)}
		a.currentScope.Define(sym)
	}
	if d.Body != nil {
		a.checkStmt(d.Body)
	}

	a.currentScope, a.currentFn, a.currentRet, a.inDanger = prevScope, prevFn, prevRet, prevDanger
	return nil
}

func (a *Analyzer) VisitExternalFunctionDecl(d *ast.ExternalFunctionDecl) *types.Type {
	return nil
}

func (a *Analyzer) VisitRecordDecl(d *ast.RecordDecl) *types.Type { return nil }
func (a *Analyzer) VisitEntityDecl(d *ast.EntityDecl) *types.Type {
	for _, m := range d.Methods {
		a.checkDecl(m)
	}
	return nil
}
func (a *Analyzer) VisitVariantDecl(d *ast.VariantDecl) *types.Type   { return nil }
func (a *Analyzer) VisitProtocolDecl(d *ast.ProtocolDecl) *types.Type { return nil }
func (a *Analyzer) VisitImportDecl(d *ast.ImportDecl) *types.Type     { return nil }
func (a *Analyzer) VisitRedefineDecl(d *ast.RedefineDecl) *types.Type { return nil }

func (a *Analyzer) VisitVariableDecl(d *ast.VariableDecl) *types.Type {
	var declared *types.Type
	if d.Type != nil {
		declared = a.resolveTypeExpr(d.Type)
	}
	var initType *types.Type
	if d.Init != nil {
		initType = a.checkExpr(d.Init)
	}
	result := declared
	if result == nil {
		result = initType
	}
	if result == nil {
		result = a.interner.ErrorType()
	}
	if declared != nil && initType != nil && !assignableTo(declared, initType) {
		a.diags.Add(diag.New("ES004", d.Span, "cannot assign %s to variable %q of type %s", initType, d.Name, declared))
	}

	if a.currentScope == a.global {
		if sym, ok := a.global.LookupLocal(d.Name); ok {
			sym.Data = result
		}
		return result
	}
	sym := &Symbol{ID: a.newSymbolID(), Name: d.Name, Kind: SymVariable, Span: d.Span, Data: result}
	if existing, ok := a.currentScope.Define(sym); !ok {
		a.diags.Add(diag.New("ES005", d.Span, "%q is already declared", d.Name).
			WithRelated("first declared here", existing.Span))
	}
	return result
}

// --- Statements ---

func (a *Analyzer) VisitBlockStmt(s *ast.BlockStmt) *types.Type {
	prev := a.currentScope
	a.currentScope = NewScope(prev)
	for _, stmt := range s.Stmts {
		a.checkStmt(stmt)
	}
	a.currentScope = prev
	return nil
}

func (a *Analyzer) VisitIfStmt(s *ast.IfStmt) *types.Type {
	a.checkBoolCond(s.Cond)
	a.checkStmt(s.Then)
	for _, elif := range s.Elifs {
		a.checkBoolCond(elif.Cond)
		a.checkStmt(elif.Body)
	}
	if s.Else != nil {
		a.checkStmt(s.Else)
	}
	return nil
}

func (a *Analyzer) VisitWhenStmt(s *ast.WhenStmt) *types.Type {
	subjectType := a.checkExpr(s.Subject)
	for _, arm := range s.Arms {
		prev := a.currentScope
		a.currentScope = NewScope(prev)
		a.bindPattern(arm.Pattern, subjectType)
		if arm.Guard != nil {
			a.checkBoolCond(arm.Guard)
		}
		a.checkStmt(arm.Body)
		a.currentScope = prev
	}
	a.checkExhaustiveness(s, subjectType)
	return nil
}

// checkExhaustiveness is spec §4.E.4's when-exhaustiveness check: every
// constructor of a closed sum type needs a covering arm, or one
// WildcardPattern/BindingPattern arm that matches anything.
func (a *Analyzer) checkExhaustiveness(s *ast.WhenStmt, subjectType *types.Type) {
	if subjectType == nil || subjectType.Kind != types.Named {
		return
	}
	sym, ok := a.global.Lookup(subjectType.Name)
	if !ok {
		return
	}
	variant, ok := sym.Data.(*ast.VariantDecl)
	if !ok {
		return
	}

	for _, arm := range s.Arms {
		switch arm.Pattern.(type) {
		case *ast.WildcardPattern, *ast.BindingPattern:
			return // catch-all arm covers every remaining constructor
		}
	}

	covered := make(map[string]bool, len(s.Arms))
	for _, arm := range s.Arms {
		switch pat := arm.Pattern.(type) {
		case *ast.TypeTagPattern:
			if named, ok := pat.Type.(*ast.NamedType); ok {
				covered[named.Name] = true
			}
		case *ast.RecordDestructurePattern:
			covered[pat.TypeName] = true
		}
	}

	var missing []string
	for _, c := range variant.Cases {
		if !covered[c.Name] {
			missing = append(missing, c.Name)
		}
	}
	if len(missing) > 0 {
		a.diags.Add(diag.New("ES008", s.Span, "non-exhaustive when over %q: missing case(s) %v", variant.Name, missing).
			WithHint("add a case for each remaining constructor, or a wildcard `_` arm"))
	}
}

func (a *Analyzer) bindPattern(p ast.Pattern, subject *types.Type) {
	switch pat := p.(type) {
	case *ast.BindingPattern:
		a.currentScope.Define(&Symbol{ID: a.newSymbolID(), Name: pat.Name, Kind: SymVariable, Span: pat.Span, Data: subject})
	case *ast.TypeTagPattern:
		if pat.Name != "" {
			// A type-tag pattern's Type names a variant *case*, not a
			// standalone declared type (spec §3's "is T name" form), so it
			// is interned directly by case name rather than routed through
			// resolveTypeExpr/resolveNamedType, which would report it as an
			// undefined type.
			var bound *types.Type
			if named, ok := pat.Type.(*ast.NamedType); ok {
				bound = a.interner.Named(named.Name)
			} else {
				bound = a.resolveTypeExpr(pat.Type)
			}
			a.currentScope.Define(&Symbol{ID: a.newSymbolID(), Name: pat.Name, Kind: SymVariable, Span: pat.Span, Data: bound})
		}
	case *ast.TuplePattern:
		for _, elem := range pat.Elems {
			a.bindPattern(elem, nil)
		}
	case *ast.RecordDestructurePattern:
		for _, f := range pat.Fields {
			a.bindPattern(f.Binding, a.variantCaseFieldType(pat.TypeName, f.Field))
		}
	case *ast.LiteralPattern:
		a.checkExpr(pat.Value)
	}
}

func (a *Analyzer) VisitWhileStmt(s *ast.WhileStmt) *types.Type {
	a.checkBoolCond(s.Cond)
	a.checkStmt(s.Body)
	return nil
}

func (a *Analyzer) VisitForStmt(s *ast.ForStmt) *types.Type {
	iterType := a.checkExpr(s.Iterable)
	prev := a.currentScope
	a.currentScope = NewScope(prev)
	var elemType *types.Type
	if iterType != nil && iterType.Kind == types.Slice {
		elemType = iterType.Elem
	} else {
		elemType = iterType
	}
	a.currentScope.Define(&Symbol{ID: a.newSymbolID(), Name: s.Var, Kind: SymVariable, Span: s.Span, Data: elemType})
	a.checkStmt(s.Body)
	a.currentScope = prev
	return nil
}

func (a *Analyzer) VisitLoopStmt(s *ast.LoopStmt) *types.Type {
	a.checkStmt(s.Body)
	return nil
}

func (a *Analyzer) VisitBreakStmt(s *ast.BreakStmt) *types.Type       { return nil }
func (a *Analyzer) VisitContinueStmt(s *ast.ContinueStmt) *types.Type { return nil }

func (a *Analyzer) VisitReturnStmt(s *ast.ReturnStmt) *types.Type {
	var got *types.Type
	if s.Value != nil {
		got = a.checkExpr(s.Value)
	}
	if a.currentFn == nil {
		return nil
	}
	want := a.currentRet
	if want == nil && got != nil {
		a.diags.Add(diag.New("ES004", s.Span, "function %q returns void but this return has a value", a.currentFn.Name))
	} else if want != nil && got == nil {
		a.diags.Add(diag.New("ES004", s.Span, "function %q must return a value of type %s", a.currentFn.Name, want))
	} else if want != nil && got != nil && !assignableTo(want, got) {
		a.diags.Add(diag.New("ES004", s.Span, "cannot return %s from function %q declared to return %s", got, a.currentFn.Name, want))
	}
	return nil
}

func (a *Analyzer) VisitDangerStmt(s *ast.DangerStmt) *types.Type {
	prev := a.inDanger
	a.inDanger = true
	a.checkStmt(s.Body)
	a.inDanger = prev
	return nil
}

func (a *Analyzer) VisitExprStmt(s *ast.ExprStmt) *types.Type {
	a.checkExpr(s.X)
	return nil
}

func (a *Analyzer) VisitDeclStmt(s *ast.DeclStmt) *types.Type {
	a.checkDecl(s.Decl)
	return nil
}

func (a *Analyzer) checkBoolCond(e ast.Expr) {
	t := a.checkExpr(e)
	if t != nil && t.Kind != types.Bool && t.Kind != types.Error {
		a.diags.Add(diag.New("ES004", e.NodeSpan(), "condition must be bool, got %s", t))
	}
}

// --- Expressions ---

func (a *Analyzer) VisitLiteralExpr(e *ast.LiteralExpr) *types.Type {
	var t *types.Type
	switch e.Tok.Kind {
	case token.IntLiteral:
		if e.Tok.NumType == token.NumNone {
			t = a.interner.DefaultInt()
		} else {
			t = a.interner.FromNumType(e.Tok.NumType)
		}
	case token.FloatLiteral:
		if e.Tok.NumType == token.NumNone {
			t = a.interner.DefaultFloat()
		} else {
			t = a.interner.FromNumType(e.Tok.NumType)
		}
	case token.DecimalLiteral:
		t = a.interner.FromNumType(e.Tok.NumType)
	case token.TextLiteral:
		t = a.interner.Text()
	case token.LetterLiteral:
		t = a.interner.LetterOf(32)
	case token.KwTrue, token.KwFalse:
		t = a.interner.Bool()
	case token.MemoryLiteral, token.DurationLiteral:
		t = a.interner.DefaultInt()
	default:
		t = a.interner.ErrorType()
	}
	a.exprTypes[e] = t
	return t
}

func (a *Analyzer) VisitIdentExpr(e *ast.IdentExpr) *types.Type {
	sym, ok := a.currentScope.Lookup(e.Name)
	if !ok {
		sym, ok = a.global.Lookup(e.Name)
	}
	if !ok {
		a.diags.Add(diag.New("ES003", e.Span, "undefined name %q", e.Name))
		t := a.interner.ErrorType()
		a.exprTypes[e] = t
		return t
	}
	a.refs[e] = sym
	t, _ := sym.Data.(*types.Type)
	if t == nil {
		t = a.interner.ErrorType()
	}
	a.exprTypes[e] = t
	return t
}

func (a *Analyzer) VisitBinaryExpr(e *ast.BinaryExpr) *types.Type {
	lt := a.checkExpr(e.Left)
	rt := a.checkExpr(e.Right)
	t := a.binaryResultType(e, lt, rt)
	a.exprTypes[e] = t
	if token.IsFallible(e.Op) {
		a.fallible[e] = true
	}
	return t
}

func (a *Analyzer) binaryResultType(e *ast.BinaryExpr, lt, rt *types.Type) *types.Type {
	switch e.Op {
	case token.LogicalAnd, token.LogicalOr:
		return a.interner.Bool()
	case token.Eq, token.NotEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return a.interner.Bool()
	default:
		return a.arithmeticResultType(e, lt, rt)
	}
}

func (a *Analyzer) arithmeticResultType(e *ast.BinaryExpr, lt, rt *types.Type) *types.Type {
	if lt == nil || rt == nil || lt.Kind == types.Error || rt.Kind == types.Error {
		return a.interner.ErrorType()
	}
	if token.IsOverflowVariant(e.Op) && !lt.IsInteger() {
		a.diags.Add(diag.New("ES004", e.Span, "overflow-variant operator %s requires an integer operand, got %s", e.Op, lt))
		return a.interner.ErrorType()
	}
	common := widen(lt, rt)
	if common == nil {
		a.diags.Add(diag.New("ES004", e.Span, "mismatched operand types %s and %s", lt, rt))
		return a.interner.ErrorType()
	}
	if token.IsFallible(e.Op) {
		return a.interner.FallibleOf(common)
	}
	return common
}

// widen implements the common-type resolution rule spec §4.E.4 names:
// identical types unify to themselves; otherwise an integer of the same
// signedness widens to the larger width, and f32 widens to f64. Mismatched
// signedness or an integer/float mix has no common type.
func widen(a, b *types.Type) *types.Type {
	if a == b {
		return a
	}
	if a.Kind != b.Kind {
		return nil
	}
	switch a.Kind {
	case types.Signed, types.Unsigned, types.Float, types.Decimal:
		if a.Width >= b.Width {
			return a
		}
		return b
	default:
		return nil
	}
}

// assignableTo reports whether a value of type got may initialize/assign to
// a binding declared as want.
func assignableTo(want, got *types.Type) bool {
	if want == got {
		return true
	}
	if want == nil || got == nil {
		return true
	}
	if want.Kind == types.Error || got.Kind == types.Error {
		return true
	}
	return widen(want, got) == want
}

func (a *Analyzer) VisitUnaryExpr(e *ast.UnaryExpr) *types.Type {
	t := a.checkExpr(e.Operand)
	var result *types.Type
	switch e.Op {
	case token.LogicalNot:
		result = a.interner.Bool()
	case token.Minus, token.Tilde:
		result = t
	case token.Question:
		if t != nil && t.Kind == types.Fallible {
			result = t.Elem
		} else {
			result = t
		}
	default:
		result = t
	}
	a.exprTypes[e] = result
	return result
}

func (a *Analyzer) VisitCallExpr(e *ast.CallExpr) *types.Type {
	calleeType := a.checkExpr(e.Callee)
	for _, arg := range e.Args {
		a.checkExpr(arg)
	}
	var result *types.Type
	if calleeType != nil && calleeType.Kind == types.Function {
		result = calleeType.Ret
	} else {
		result = a.interner.ErrorType()
	}
	a.exprTypes[e] = result
	return result
}

func (a *Analyzer) VisitMethodCallExpr(e *ast.MethodCallExpr) *types.Type {
	a.checkExpr(e.Receiver)
	for _, arg := range e.Args {
		a.checkExpr(arg)
	}
	t := a.interner.ErrorType()
	a.exprTypes[e] = t
	return t
}

// VisitGenericMethodCallExpr checks the danger-block intrinsics spec §4.G
// names (read_as!/write_as!, the Bang-suffixed Method forms the parser
// produces, spec scenario 6) along with ordinary generic calls.
func (a *Analyzer) VisitGenericMethodCallExpr(e *ast.GenericMethodCallExpr) *types.Type {
	if e.Receiver != nil {
		a.checkExpr(e.Receiver)
	}
	var typeArgs []*types.Type
	for _, ta := range e.TypeArgs {
		typeArgs = append(typeArgs, a.resolveTypeExpr(ta))
	}
	for _, arg := range e.Args {
		a.checkExpr(arg)
	}

	if isRawMemoryIntrinsic(e.Method) && !a.inDanger {
		a.diags.Add(diag.New("ES011", e.Span, "%s is only legal inside a danger! block", e.Method))
	}

	var result *types.Type
	switch {
	case e.Method == "write_as!":
		result = a.interner.Void()
	case e.Method == "read_as!" && len(typeArgs) == 1:
		result = typeArgs[0]
	case (e.Method == "size_of" || e.Method == "align_of") && len(typeArgs) == 1:
		result = a.interner.FromNumType(token.NumNone)
	default:
		result = a.interner.ErrorType()
	}
	a.exprTypes[e] = result
	return result
}

func isRawMemoryIntrinsic(method string) bool {
	return method == "read_as!" || method == "write_as!" ||
		method == "volatile_read_as!" || method == "volatile_write_as!"
}

func (a *Analyzer) VisitIndexExpr(e *ast.IndexExpr) *types.Type {
	xt := a.checkExpr(e.X)
	a.checkExpr(e.Index)
	var result *types.Type
	if xt != nil && xt.Kind == types.Slice {
		result = xt.Elem
	} else {
		result = a.interner.ErrorType()
	}
	a.exprTypes[e] = result
	return result
}

func (a *Analyzer) VisitFieldAccessExpr(e *ast.FieldAccessExpr) *types.Type {
	xt := a.checkExpr(e.X)
	var result *types.Type
	if xt != nil && xt.Kind == types.Named {
		if sym, ok := a.global.Lookup(xt.Name); ok {
			result = a.fieldType(sym, e.Field)
		} else {
			result = a.variantCaseFieldType(xt.Name, e.Field)
		}
	}
	if result == nil {
		result = a.interner.ErrorType()
	}
	a.exprTypes[e] = result
	return result
}

// variantCaseFieldType handles field access on a value bound by a type-tag
// pattern (`is Circle c` then `c.radius`), where caseName ("Circle") is a
// variant case rather than a top-level symbol: it searches every loaded
// variant's cases for one matching caseName.
func (a *Analyzer) variantCaseFieldType(caseName, field string) *types.Type {
	for _, mod := range a.orderedModules() {
		for _, d := range mod.Program.Decls {
			variant, ok := d.(*ast.VariantDecl)
			if !ok {
				continue
			}
			for _, c := range variant.Cases {
				if c.Name != caseName {
					continue
				}
				for _, f := range c.Fields {
					if f.Name == field {
						return a.resolveTypeExpr(f.Type)
					}
				}
			}
		}
	}
	return nil
}

func (a *Analyzer) fieldType(sym *Symbol, field string) *types.Type {
	var fields []ast.Field
	switch d := sym.Data.(type) {
	case *ast.RecordDecl:
		fields = d.Fields
	case *ast.EntityDecl:
		fields = d.Fields
	default:
		return nil
	}
	for _, f := range fields {
		if f.Name == field {
			return a.resolveTypeExpr(f.Type)
		}
	}
	return nil
}

func (a *Analyzer) VisitRangeExpr(e *ast.RangeExpr) *types.Type {
	startType := a.checkExpr(e.Start)
	a.checkExpr(e.End)
	if e.Step != nil {
		a.checkExpr(e.Step)
	}
	result := a.interner.SliceOf(types.DynamicSlice, startType)
	a.exprTypes[e] = result
	return result
}

func (a *Analyzer) VisitConditionalExpr(e *ast.ConditionalExpr) *types.Type {
	a.checkBoolCond(e.Cond)
	thenType := a.checkExpr(e.Then)
	elseType := a.checkExpr(e.Else)
	result := widen(thenType, elseType)
	if result == nil {
		if thenType != nil {
			result = thenType
		} else {
			result = elseType
		}
		if thenType != nil && elseType != nil && thenType != elseType {
			a.diags.Add(diag.New("ES004", e.Span, "if-then-else branches have mismatched types %s and %s", thenType, elseType))
		}
	}
	a.exprTypes[e] = result
	return result
}

func (a *Analyzer) VisitLambdaExpr(e *ast.LambdaExpr) *types.Type {
	prev := a.currentScope
	a.currentScope = NewScope(prev)
	params := make([]*types.Type, len(e.Params))
	for i, p := range e.Params {
		pt := a.resolveTypeExpr(p.Type)
		params[i] = pt
		a.currentScope.Define(&Symbol{ID: a.newSymbolID(), Name: p.Name, Kind: SymVariable, Span: p.Span, Data: pt})
	}
	bodyType := a.checkExpr(e.Body)
	a.currentScope = prev
	result := a.interner.Function(params, bodyType)
	a.exprTypes[e] = result
	return result
}

func (a *Analyzer) VisitFormatStringExpr(e *ast.FormatStringExpr) *types.Type {
	for _, part := range e.Parts {
		if part.Value != nil {
			a.checkExpr(part.Value)
		}
	}
	t := a.interner.Text()
	a.exprTypes[e] = t
	return t
}
