package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/razorforge-lang/rfc/target"
	"github.com/razorforge-lang/rfc/token"
)

func TestInternIdentityForEqualStructure(t *testing.T) {
	in := NewInterner()
	a := in.Scalar(Signed, 32)
	b := in.Scalar(Signed, 32)
	assert.Same(t, a, b)

	p1 := in.Pointer(ManagedPointer, a)
	p2 := in.Pointer(ManagedPointer, in.Scalar(Signed, 32))
	assert.Same(t, p1, p2)
}

func TestDistinctStructureNotInterned(t *testing.T) {
	in := NewInterner()
	s32 := in.Scalar(Signed, 32)
	u32 := in.Scalar(Unsigned, 32)
	assert.NotSame(t, s32, u32)
}

func TestFromNumTypeDefaults(t *testing.T) {
	in := NewInterner()
	assert.Same(t, in.DefaultInt(), in.FromNumType(token.NumNone))
}

func TestFromPrimitiveName(t *testing.T) {
	in := NewInterner()
	ty, ok := in.FromPrimitiveName("u8")
	assert.True(t, ok)
	assert.Equal(t, Unsigned, ty.Kind)
	assert.Equal(t, 8, ty.Width)

	_, ok = in.FromPrimitiveName("not_a_type")
	assert.False(t, ok)
}

func TestTypeStringRendering(t *testing.T) {
	in := NewInterner()
	assert.Equal(t, "s32", in.Scalar(Signed, 32).String())
	assert.Equal(t, "u8", in.Scalar(Unsigned, 8).String())
	sl := in.SliceOf(DynamicSlice, in.Scalar(Signed, 8))
	assert.Equal(t, "DynamicSlice<s8>", sl.String())
}

func TestFromPlatformPrimitiveIsOSSensitive(t *testing.T) {
	in := NewInterner()
	linux, ok := in.FromPlatformPrimitive("clong", target.LinuxAMD64)
	assert.True(t, ok)
	assert.Equal(t, 64, linux.Width)

	win, ok := in.FromPlatformPrimitive("clong", target.WindowsAMD64)
	assert.True(t, ok)
	assert.Equal(t, 32, win.Width)

	uaddr, ok := in.FromPlatformPrimitive("uaddr", target.LinuxAMD64)
	assert.True(t, ok)
	assert.Equal(t, Unsigned, uaddr.Kind)
	assert.Equal(t, 64, uaddr.Width)
}

func TestResetClearsInternTable(t *testing.T) {
	in := NewInterner()
	a := in.Scalar(Signed, 32)
	in.Reset()
	b := in.Scalar(Signed, 32)
	assert.NotSame(t, a, b, "Reset should drop the old interning so a fresh compilation gets new identities")
}
