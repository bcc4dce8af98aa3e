package parser

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/diag"
	"github.com/razorforge-lang/rfc/lexer"
	"github.com/razorforge-lang/rfc/token"
)

// paramShape strips spans and other position-dependent fields so two
// independently parsed declarations can be compared structurally regardless
// of which block style (brace vs. indent) produced them.
type paramShape struct {
	Name     string
	TypeName string
}

func paramShapes(params []ast.Param) []paramShape {
	out := make([]paramShape, len(params))
	for i, p := range params {
		name := ""
		if named, ok := p.Type.(*ast.NamedType); ok {
			name = named.Name
		}
		out[i] = paramShape{Name: p.Name, TypeName: name}
	}
	return out
}

func parseSrc(t *testing.T, src string) (*ast.Program, *diag.Bag) {
	t.Helper()
	bag := &diag.Bag{}
	lx := lexer.New("test.rf", src, token.Systems, bag)
	toks := lx.Tokenize()
	p := New("test.rf", toks, token.Systems, bag)
	return p.Parse(), bag
}

func TestParseSimpleFunctionDecl(t *testing.T) {
	prog, bag := parseSrc(t, "routine add(a: s32, b: s32) -> s32 { return a + b }")
	require.False(t, bag.HasErrors())
	require.Len(t, prog.Decls, 1)
	fn, ok := prog.Decls[0].(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	require.Len(t, fn.Body.Stmts, 1)
	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	bin, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.Plus, bin.Op)
}

func TestParseRecordDecl(t *testing.T) {
	prog, bag := parseSrc(t, "record Point { x: s32, y: s32 }")
	require.False(t, bag.HasErrors())
	rec, ok := prog.Decls[0].(*ast.RecordDecl)
	require.True(t, ok)
	assert.Equal(t, "Point", rec.Name)
	require.Len(t, rec.Fields, 2)
	assert.Equal(t, "x", rec.Fields[0].Name)
}

func TestParseVariantDecl(t *testing.T) {
	prog, bag := parseSrc(t, "variant Shape { Circle(radius: f64), Square(side: f64) }")
	require.False(t, bag.HasErrors())
	v, ok := prog.Decls[0].(*ast.VariantDecl)
	require.True(t, ok)
	require.Len(t, v.Cases, 2)
	assert.Equal(t, "Circle", v.Cases[0].Name)
	assert.Equal(t, "radius", v.Cases[0].Fields[0].Name)
}

func TestParseIfElifElseStmt(t *testing.T) {
	prog, bag := parseSrc(t, `routine classify(n: s32) -> s32 {
	if n < 0 { return 0 } elif n == 0 { return 1 } else { return 2 }
}`)
	require.False(t, bag.HasErrors())
	fn := prog.Decls[0].(*ast.FunctionDecl)
	ifs, ok := fn.Body.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	require.Len(t, ifs.Elifs, 1)
	require.NotNil(t, ifs.Else)
}

func TestParseChainedComparisonLowersToAnd(t *testing.T) {
	prog, bag := parseSrc(t, "routine f(a: s32, b: s32, c: s32) -> bool { return a < b <= c }")
	require.False(t, bag.HasErrors())
	fn := prog.Decls[0].(*ast.FunctionDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	top, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.LogicalAnd, top.Op)
	left, ok := top.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.Lt, left.Op)
	right, ok := top.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.LtEq, right.Op)
}

func TestParseRangeForStmt(t *testing.T) {
	prog, bag := parseSrc(t, "routine f() { for i in 0 to 10 by 2 { } }")
	require.False(t, bag.HasErrors())
	fn := prog.Decls[0].(*ast.FunctionDecl)
	forS, ok := fn.Body.Stmts[0].(*ast.ForStmt)
	require.True(t, ok)
	rng, ok := forS.Iterable.(*ast.RangeExpr)
	require.True(t, ok)
	require.NotNil(t, rng.Step)
}

func TestParseConditionalExpr(t *testing.T) {
	prog, bag := parseSrc(t, "routine f(a: s32) -> s32 { return if a > 0 then 1 else 0 }")
	require.False(t, bag.HasErrors())
	fn := prog.Decls[0].(*ast.FunctionDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	cond, ok := ret.Value.(*ast.ConditionalExpr)
	require.True(t, ok)
	require.NotNil(t, cond.Cond)
	require.NotNil(t, cond.Then)
	require.NotNil(t, cond.Else)
}

func TestParseGenericMethodCallDisambiguation(t *testing.T) {
	prog, bag := parseSrc(t, "routine f(xs: DynamicSlice<s32>) { xs.map<s32>(1) }")
	require.False(t, bag.HasErrors())
	fn := prog.Decls[0].(*ast.FunctionDecl)
	exprStmt, ok := fn.Body.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	call, ok := exprStmt.X.(*ast.GenericMethodCallExpr)
	require.True(t, ok)
	assert.Equal(t, "map", call.Method)
	require.Len(t, call.TypeArgs, 1)
}

func TestParseLessThanNotMisreadAsGeneric(t *testing.T) {
	prog, bag := parseSrc(t, "routine f(a: s32, b: s32) -> bool { return a < b }")
	require.False(t, bag.HasErrors())
	fn := prog.Decls[0].(*ast.FunctionDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	bin, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.Lt, bin.Op)
}

func TestParseWhenStmtPatterns(t *testing.T) {
	prog, bag := parseSrc(t, `routine f(s: Shape) -> s32 {
	when s {
		Circle(radius: r) => 1,
		_ => 0,
	}
}`)
	require.False(t, bag.HasErrors())
	fn := prog.Decls[0].(*ast.FunctionDecl)
	whenS, ok := fn.Body.Stmts[0].(*ast.WhenStmt)
	require.True(t, ok)
	require.Len(t, whenS.Arms, 2)
	destructure, ok := whenS.Arms[0].Pattern.(*ast.RecordDestructurePattern)
	require.True(t, ok)
	assert.Equal(t, "Circle", destructure.TypeName)
	_, ok = whenS.Arms[1].Pattern.(*ast.WildcardPattern)
	require.True(t, ok)
}

func TestParseDangerStmt(t *testing.T) {
	prog, bag := parseSrc(t, "routine f() { danger! { verify!(1) } }")
	require.False(t, bag.HasErrors())
	fn := prog.Decls[0].(*ast.FunctionDecl)
	d, ok := fn.Body.Stmts[0].(*ast.DangerStmt)
	require.True(t, ok)
	require.Len(t, d.Body.Stmts, 1)
	exprStmt := d.Body.Stmts[0].(*ast.ExprStmt)
	call, ok := exprStmt.X.(*ast.CallExpr)
	require.True(t, ok)
	callee, ok := call.Callee.(*ast.IdentExpr)
	require.True(t, ok)
	assert.Equal(t, "verify!", callee.Name)
}

func TestParseDangerZoneRawMemoryIntrinsics(t *testing.T) {
	prog, bag := parseSrc(t, `routine test() {
	danger! {
		let addr = 4096
		write_as<s32>!(addr, 999)
		let v = read_as<s32>!(addr)
	}
}`)
	require.False(t, bag.HasErrors())
	fn := prog.Decls[0].(*ast.FunctionDecl)
	d := fn.Body.Stmts[0].(*ast.DangerStmt)
	require.Len(t, d.Body.Stmts, 3)
	writeCall := d.Body.Stmts[1].(*ast.ExprStmt).X.(*ast.GenericMethodCallExpr)
	assert.Equal(t, "write_as!", writeCall.Method)
	require.Len(t, writeCall.TypeArgs, 1)
	require.Len(t, writeCall.Args, 2)
	readDecl := d.Body.Stmts[2].(*ast.DeclStmt).Decl.(*ast.VariableDecl)
	readCall := readDecl.Init.(*ast.GenericMethodCallExpr)
	assert.Equal(t, "read_as!", readCall.Method)
}

func TestParseOverflowVariantOperators(t *testing.T) {
	prog, bag := parseSrc(t, "routine f(a: s32, b: s32) -> s32 { return a +% b }")
	require.False(t, bag.HasErrors())
	fn := prog.Decls[0].(*ast.FunctionDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	bin, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.PlusWrap, bin.Op)
}

func TestParseFormatStringSubExpression(t *testing.T) {
	prog, bag := parseSrc(t, `routine f(name: text) -> text { return f"hello {name}!" }`)
	require.False(t, bag.HasErrors())
	fn := prog.Decls[0].(*ast.FunctionDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	fs, ok := ret.Value.(*ast.FormatStringExpr)
	require.True(t, ok)
	require.Len(t, fs.Parts, 3)
	assert.Equal(t, "hello ", fs.Parts[0].Chunk)
	ident, ok := fs.Parts[1].Value.(*ast.IdentExpr)
	require.True(t, ok)
	assert.Equal(t, "name", ident.Name)
	assert.Equal(t, "!", fs.Parts[2].Chunk)
}

func TestParseLambdaExpr(t *testing.T) {
	prog, bag := parseSrc(t, "routine f() { let add = |a: s32, b: s32| => a + b }")
	require.False(t, bag.HasErrors())
	fn := prog.Decls[0].(*ast.FunctionDecl)
	declStmt := fn.Body.Stmts[0].(*ast.DeclStmt)
	v := declStmt.Decl.(*ast.VariableDecl)
	lam, ok := v.Init.(*ast.LambdaExpr)
	require.True(t, ok)
	require.Len(t, lam.Params, 2)
}

func TestParsePowerBindsTighterThanUnary(t *testing.T) {
	prog, bag := parseSrc(t, "routine f(a: s32, b: s32) -> s32 { return -a ** b }")
	require.False(t, bag.HasErrors())
	fn := prog.Decls[0].(*ast.FunctionDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	unary, ok := ret.Value.(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.Minus, unary.Op)
	_, ok = unary.Operand.(*ast.BinaryExpr)
	require.True(t, ok)
}

func TestParsePostfixFallibleOperator(t *testing.T) {
	prog, bag := parseSrc(t, "routine f(r: Result<s32>) -> s32 { return r? }")
	require.False(t, bag.HasErrors())
	fn := prog.Decls[0].(*ast.FunctionDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	u, ok := ret.Value.(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.Question, u.Op)
}

func TestParseImportAndRedefine(t *testing.T) {
	prog, bag := parseSrc(t, "import geometry.shapes\nredefine Meters = f64\n")
	require.False(t, bag.HasErrors())
	require.Len(t, prog.Decls, 2)
	imp, ok := prog.Decls[0].(*ast.ImportDecl)
	require.True(t, ok)
	assert.Equal(t, "geometry.shapes", imp.Path)
	red, ok := prog.Decls[1].(*ast.RedefineDecl)
	require.True(t, ok)
	assert.Equal(t, "Meters", red.Name)
}

func TestParseBraceAndIndentFormsProduceStructurallyEqualParams(t *testing.T) {
	brace, bag1 := parseSrc(t, "routine add(a: s32, b: s32) -> s32 { return a + b }")
	require.False(t, bag1.HasErrors())
	indent, bag2 := parseSrc(t, "routine add(a: s32, b: s32) -> s32:\n  return a + b\n")
	require.False(t, bag2.HasErrors())

	braceFn := brace.Decls[0].(*ast.FunctionDecl)
	indentFn := indent.Decls[0].(*ast.FunctionDecl)

	if diff := deep.Equal(paramShapes(braceFn.Params), paramShapes(indentFn.Params)); diff != nil {
		t.Errorf("brace- and indent-style params diverge structurally: %v", diff)
	}
}

func TestParseSyntaxErrorRecoveryContinuesToNextDecl(t *testing.T) {
	prog, bag := parseSrc(t, "routine f(a: ) -> s32 { return a }\nrecord Point { x: s32 }")
	require.True(t, bag.HasErrors())
	require.Len(t, prog.Decls, 2)
	_, ok := prog.Decls[1].(*ast.RecordDecl)
	require.True(t, ok)
}
