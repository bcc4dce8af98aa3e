package compiler_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/razorforge-lang/rfc/compiler"
	"github.com/razorforge-lang/rfc/target"
	"github.com/razorforge-lang/rfc/token"
)

// TestCompileSimpleReturn drives the whole pipeline end to end over spec §8
// scenario 5's source and checks both output artifacts it names (the
// readable lowered form and the LLVM IR).
func TestCompileSimpleReturn(t *testing.T) {
	p := compiler.NewPipeline(target.Default, nil, compiler.Options{})
	res := p.Compile("t.rf", "routine main() -> s32 {\n    return 42\n}\n")

	require.False(t, res.Diags.HasErrors(), "unexpected diagnostics: %+v", res.Diags.All())
	require.Equal(t, token.Systems, res.Dialect)
	require.Contains(t, res.Lowered, "FUNC main")
	require.Contains(t, res.Lowered, "RETURN s32")
	require.Contains(t, res.IR, "define i32 @main()")
	require.Contains(t, res.IR, "ret i32 42")
}

func TestDialectSelectedBySuffix(t *testing.T) {
	require.Equal(t, token.Systems, compiler.DialectForFile("mod.rf"))
	require.Equal(t, token.Surface, compiler.DialectForFile("mod.sf"))
	require.Equal(t, token.Systems, compiler.DialectForFile("mod.txt"))
}

func TestOptionsDialectOverridesSuffix(t *testing.T) {
	surface := token.Surface
	p := compiler.NewPipeline(target.Default, nil, compiler.Options{Dialect: &surface})
	res := p.Compile("mod.rf", "routine main() -> s32 {\n    return 0\n}\n")
	require.Equal(t, token.Surface, res.Dialect)
}

func TestArtifactsNamesMatchSourceSuffix(t *testing.T) {
	lowered, ir := compiler.Artifacts("prog.rf")
	require.Equal(t, "prog.out", lowered)
	require.Equal(t, "prog.ll", ir)

	lowered, ir = compiler.Artifacts("prog.sf")
	require.Equal(t, "prog.out", lowered)
	require.Equal(t, "prog.ll", ir)
}

// mapLoader is an in-memory sema.ModuleLoader, the same shape as sema's own
// test helper, standing in for a filesystem in this package's tests.
type mapLoader map[string]string

func (m mapLoader) Load(path string) (string, string, bool) {
	src, ok := m[path]
	return src, path + ".rf", ok
}

func TestCompileResolvesImportsThroughLoader(t *testing.T) {
	loader := mapLoader{
		"mathutil": "routine double(x: s32) -> s32 {\n    return x + x\n}\n",
	}
	p := compiler.NewPipeline(target.Default, nil, compiler.Options{Loader: loader})
	res := p.Compile("main.rf", "import mathutil\n\nroutine main() -> s32 {\n    return 0\n}\n")

	require.False(t, res.Diags.HasErrors(), "unexpected diagnostics: %+v", res.Diags.All())
	require.NotNil(t, res.Sema)
	require.Contains(t, res.Sema.Modules, "mathutil")
}

// TestCompileStopsCodegenOnErrorUnlessRequested covers spec §7's "a phase
// emitting any Error... stops downstream emission of executables but still
// produces intermediate artifacts when feasible": an undefined identifier
// should suppress IR but still leave the lowered form and diagnostics
// available, unless the caller explicitly asks for best-effort emission.
func TestCompileStopsCodegenOnErrorUnlessRequested(t *testing.T) {
	src := "routine main() -> s32 {\n    return undefined_name\n}\n"

	p := compiler.NewPipeline(target.Default, nil, compiler.Options{})
	res := p.Compile("t.rf", src)
	require.True(t, res.Diags.HasErrors())
	require.Empty(t, res.IR)
	require.NotEmpty(t, res.Lowered)

	p2 := compiler.NewPipeline(target.Default, nil, compiler.Options{EmitEvenWithErrors: true})
	res2 := p2.Compile("t.rf", src)
	require.True(t, res2.Diags.HasErrors())
	require.NotEmpty(t, res2.IR)
}

func TestCompileTracesPhases(t *testing.T) {
	var trace strings.Builder
	p := compiler.NewPipeline(target.Default, nil, compiler.Options{Trace: &trace})
	p.Compile("t.rf", "routine main() -> s32 {\n    return 1\n}\n")

	out := trace.String()
	require.Contains(t, out, "Running lexer")
	require.Contains(t, out, "Running parser")
	require.Contains(t, out, "Running semantic analyzer")
	require.Contains(t, out, "Running code generator")
}
