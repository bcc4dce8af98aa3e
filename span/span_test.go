package span

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHullCombinesOuter(t *testing.T) {
	a := Range("f.rf", Pos{1, 1, 0}, Pos{1, 5, 4})
	b := Range("f.rf", Pos{1, 10, 9}, Pos{1, 14, 13})
	h := Hull(a, b)
	assert.Equal(t, Pos{1, 1, 0}, h.Start)
	assert.Equal(t, Pos{1, 14, 13}, h.End)
}

func TestHullPanicsOnDifferentFiles(t *testing.T) {
	a := Point("a.rf", 1, 1, 0)
	b := Point("b.rf", 1, 1, 0)
	require.Panics(t, func() { Hull(a, b) })
}

func TestContains(t *testing.T) {
	outer := Range("f.rf", Pos{1, 1, 0}, Pos{3, 1, 20})
	inner := Range("f.rf", Pos{2, 1, 5}, Pos{2, 10, 14})
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
}

func TestPrecedes(t *testing.T) {
	earlier := Point("f.rf", 1, 1, 0)
	later := Point("f.rf", 5, 1, 40)
	assert.True(t, earlier.Precedes(later))
	assert.False(t, later.Precedes(earlier))
}
