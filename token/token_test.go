package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverflowFormLookup(t *testing.T) {
	k, ok := OverflowForm(Plus, '%')
	assert.True(t, ok)
	assert.Equal(t, PlusWrap, k)

	k, ok = OverflowForm(Plus, '?')
	assert.True(t, ok)
	assert.True(t, IsFallible(k))

	_, ok = OverflowForm(Amp, '%')
	assert.False(t, ok)
}

func TestNumTypeSuffixRoundTrip(t *testing.T) {
	nt, ok := LookupNumSuffix("u32")
	assert.True(t, ok)
	assert.True(t, nt.IsUnsigned())
	assert.Equal(t, 32, nt.BitWidth())
	assert.Equal(t, "u32", nt.String())
}

func TestMemUnitBytes(t *testing.T) {
	u, ok := LookupMemUnit("kib")
	assert.True(t, ok)
	assert.Equal(t, int64(1024), u.Bytes())

	u, ok = LookupMemUnit("gb")
	assert.True(t, ok)
	assert.Equal(t, int64(1_000_000_000), u.Bytes())
}

func TestDurationUnitNanos(t *testing.T) {
	u, ok := LookupDurationUnit("ms")
	assert.True(t, ok)
	assert.Equal(t, int64(1_000_000), u.Nanos())
}

func TestDialectKeywordDivergence(t *testing.T) {
	k, ok := LookupKeyword(Systems, "routine")
	assert.True(t, ok)
	assert.Equal(t, KwFunction, k)

	_, ok = LookupKeyword(Surface, "routine")
	assert.False(t, ok)

	k, ok = LookupKeyword(Surface, "fn")
	assert.True(t, ok)
	assert.Equal(t, KwFunction, k)

	k, ok = LookupKeyword(Systems, "and")
	assert.True(t, ok)
	assert.Equal(t, LogicalAnd, k)
}
