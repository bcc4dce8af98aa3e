package diag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/razorforge-lang/rfc/span"
)

type fakeSource map[string][]string

func (f fakeSource) Line(file string, line int) (string, bool) {
	lines, ok := f[file]
	if !ok || line < 1 || line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}

func TestBagHasErrors(t *testing.T) {
	var b Bag
	b.Add(New("EL001", span.Point("f.rf", 1, 1, 0), "unterminated text literal").WithHint("add a closing quote"))
	require.True(t, b.HasErrors())
	require.Equal(t, 1, b.ExitCode())
}

func TestBagWarningsOnlyExitZero(t *testing.T) {
	var b Bag
	b.Add(New("EL900", span.Point("f.rf", 1, 1, 0), "unused import").WithSeverity(Warning))
	require.False(t, b.HasErrors())
	require.Equal(t, 0, b.ExitCode())
}

func TestFormatterRendersExcerptAndCaret(t *testing.T) {
	src := fakeSource{"f.rf": {`let x = "unterminated`}}
	d := New("EL001", span.Point("f.rf", 1, 9, 8), "unterminated text literal").
		WithHint("add a closing quote")
	out := NewFormatter(src).Format(d)
	assert.Contains(t, out, "[EL001] error: unterminated text literal")
	assert.Contains(t, out, `1 | let x = "unterminated`)
	assert.Contains(t, out, "hint: add a closing quote")
	assert.True(t, strings.Contains(out, "^"))
}

func TestMergeAppendsInOrder(t *testing.T) {
	var a, b Bag
	a.Add(New("ES001", span.Point("a.rf", 1, 1, 0), "first"))
	b.Add(New("ES002", span.Point("b.rf", 1, 1, 0), "second"))
	a.Merge(&b)
	require.Len(t, a.All(), 2)
	assert.Equal(t, "ES002", a.All()[1].Code)
}
