package codegen

import (
	"fmt"

	"github.com/razorforge-lang/rfc/types"
)

// llvmType implements spec §4.G's "Type mapping (representative)" table.
// Pointer-like and compound kinds collapse onto LLVM's opaque `ptr`, matching
// the "text, slice types, unknown compound types -> opaque pointer" rule;
// slice operations go through named runtime calls, and record/entity field
// access GEPs through the named `%Name` struct type decl.go declares, with
// the handle itself still an opaque `ptr`.
func (c *Context) llvmType(t *types.Type) string {
	if t == nil {
		return "void"
	}
	switch t.Kind {
	case types.Void:
		return "void"
	case types.Error:
		// A type-resolution failure already produced an ES/EG diagnostic;
		// codegen still needs *some* LLVM type to keep emitting the rest of
		// the function, so it degrades to the platform word size.
		return fmt.Sprintf("i%d", c.Platform.WordBits)
	case types.Bool:
		return "i1"
	case types.Signed, types.Unsigned:
		return fmt.Sprintf("i%d", t.Width)
	case types.Float:
		switch t.Width {
		case 16:
			return "half"
		case 32:
			return "float"
		case 64:
			return "double"
		case 128:
			return "fp128"
		default:
			return "double"
		}
	case types.Decimal:
		// LLVM has no native decimal-float type; the runtime represents a
		// dN value as its equal-width integer bit pattern and decodes it in
		// library code, so codegen maps it straight to iN here.
		return fmt.Sprintf("i%d", t.Width)
	case types.Letter:
		switch t.Width {
		case 8:
			return "i8"
		case 16:
			return "i16"
		default:
			return "i32"
		}
	case types.Pointer, types.Slice, types.Text, types.Named, types.Tuple:
		return "ptr"
	case types.Function:
		return "ptr"
	case types.Fallible:
		return fmt.Sprintf("{ %s, i1 }", c.llvmType(t.Elem))
	default:
		return "ptr"
	}
}

// sizeOf returns the in-memory size in bytes of a scalar/letter/bool type —
// used by the size_of<T> and align_of<T> compile-time intrinsics (spec
// §4.G). Compound types (Pointer,
// Slice, Text, Named) are always word-sized handles at this layer; their
// real field layout is the runtime's concern, not the core's (spec §1: the
// runtime C library is an external collaborator).
func (c *Context) sizeOf(t *types.Type) int {
	if t == nil {
		return 0
	}
	switch t.Kind {
	case types.Bool:
		return 1
	case types.Signed, types.Unsigned, types.Float, types.Decimal:
		return t.Width / 8
	case types.Letter:
		return t.Width / 8
	case types.Pointer, types.Slice, types.Text, types.Named, types.Function:
		return c.Platform.WordBits / 8
	default:
		return c.Platform.WordBits / 8
	}
}

// zeroValue returns the LLVM constant spelling of t's zero value, for the
// synthesized `ret` a function falls through to without an explicit return
// (scalars need their literal spelling; compound ptr-backed kinds use LLVM's
// `null`).
func (c *Context) zeroValue(t *types.Type) string {
	if t == nil {
		return "0"
	}
	switch t.Kind {
	case types.Bool:
		return "0"
	case types.Signed, types.Unsigned, types.Letter, types.Decimal:
		return "0"
	case types.Float:
		return "0.0"
	case types.Pointer, types.Slice, types.Text, types.Named, types.Function, types.Tuple:
		return "null"
	default:
		return "zeroinitializer"
	}
}

// alignOf mirrors sizeOf for the align_of<T> intrinsic: natural alignment
// equals size for every scalar this core supports (no over-aligned vector
// types are modeled).
func (c *Context) alignOf(t *types.Type) int {
	return c.sizeOf(t)
}
