package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/razorforge-lang/rfc/diag"
	"github.com/razorforge-lang/rfc/lexer"
	"github.com/razorforge-lang/rfc/parser"
	"github.com/razorforge-lang/rfc/target"
	"github.com/razorforge-lang/rfc/token"
	"github.com/razorforge-lang/rfc/types"
)

// mapLoader is an in-memory ModuleLoader for tests, standing in for the
// filesystem-backed one `compiler` wires in production.
type mapLoader map[string]string

func (m mapLoader) Load(path string) (string, string, bool) {
	src, ok := m[path]
	return src, path, ok
}

func analyze(t *testing.T, src string, loader ModuleLoader) (*Result, *diag.Bag) {
	t.Helper()
	bag := &diag.Bag{}
	toks := lexer.New("test.rf", src, token.Systems, bag).Tokenize()
	prog := parser.New("test.rf", toks, token.Systems, bag).Parse()
	a := NewAnalyzer(types.NewInterner(), target.LinuxAMD64, loader, bag)
	res := a.Analyze(prog)
	return res, bag
}

func codes(bag *diag.Bag) []string {
	var cs []string
	for _, d := range bag.All() {
		cs = append(cs, d.Code)
	}
	return cs
}

func TestCollectDeclsDetectsDuplicate(t *testing.T) {
	src := "routine add(a: s32, b: s32) -> s32 { return a + b }\n" +
		"routine add(a: s32, b: s32) -> s32 { return a }\n"
	_, bag := analyze(t, src, nil)
	assert.Contains(t, codes(bag), "ES005")
}

func TestResolveTypesFlagsUndefinedType(t *testing.T) {
	src := "routine makeThing() -> NoSuchType { return 0 }\n"
	_, bag := analyze(t, src, nil)
	assert.Contains(t, codes(bag), "ES003")
}

func TestResolveTypesAcceptsPlatformPrimitive(t *testing.T) {
	src := "routine addrOfWord() -> uaddr { return 0 }\n"
	_, bag := analyze(t, src, nil)
	assert.NotContains(t, codes(bag), "ES003")
}

func TestBinaryExprWidensToLargerWidth(t *testing.T) {
	src := "routine widen() -> s64 { var x: s32 = 1 var y: s64 = 2 return x + y }\n"
	_, bag := analyze(t, src, nil)
	assert.False(t, bag.HasErrors())
}

func TestOverflowVariantRequiresIntegerOperand(t *testing.T) {
	src := "routine badAdd() -> f32 { var x: f32 = 1.0 return x +% x }\n"
	_, bag := analyze(t, src, nil)
	assert.Contains(t, codes(bag), "ES004")
}

func TestRawMemoryIntrinsicRequiresDangerBlock(t *testing.T) {
	src := "routine peek(addr: uaddr) -> s32 { return read_as<s32>!(addr) }\n"
	_, bag := analyze(t, src, nil)
	assert.Contains(t, codes(bag), "ES011")
}

func TestRawMemoryIntrinsicAllowedInsideDangerBlock(t *testing.T) {
	src := "routine poke(addr: uaddr) { danger! { write_as<s32>!(addr, 999) } }\n"
	_, bag := analyze(t, src, nil)
	assert.NotContains(t, codes(bag), "ES011")
}

func TestWhenExhaustivenessFlagsMissingCase(t *testing.T) {
	src := "variant Shape { Circle(radius: s32) Square(side: s32) }\n" +
		"routine area(s: Shape) -> s32 { when s { Circle(radius: r) => { return r } } return 0 }\n"
	_, bag := analyze(t, src, nil)
	assert.Contains(t, codes(bag), "ES008")
}

func TestWhenWildcardSatisfiesExhaustiveness(t *testing.T) {
	src := "variant Shape { Circle(radius: s32) Square(side: s32) }\n" +
		"routine area(s: Shape) -> s32 { when s { Circle(radius: r) => { return r } _ => { return 0 } } return 0 }\n"
	_, bag := analyze(t, src, nil)
	assert.NotContains(t, codes(bag), "ES008")
}

func TestImportCycleDetected(t *testing.T) {
	loader := mapLoader{
		"a": "import b\nroutine fromA() -> s32 { return 1 }\n",
		"b": "import a\nroutine fromB() -> s32 { return 1 }\n",
	}
	src := "import a\nroutine fromMain() -> s32 { return 1 }\n"
	_, bag := analyze(t, src, loader)
	assert.Contains(t, codes(bag), "ES009")
}

func TestUnresolvedImportReportsES010(t *testing.T) {
	src := "import missing\nroutine f() -> s32 { return 1 }\n"
	_, bag := analyze(t, src, mapLoader{})
	assert.Contains(t, codes(bag), "ES010")
}

func TestReturnTypeMismatchDiagnosed(t *testing.T) {
	src := "routine f() -> s32 { return true }\n"
	_, bag := analyze(t, src, nil)
	assert.Contains(t, codes(bag), "ES004")
}
