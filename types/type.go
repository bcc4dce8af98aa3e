// Package types implements the interned type representation spec §3 requires
// ("Type representations are interned: structural equality implies
// identity"). Both `sema` (type checking) and `codegen` (LLVM type mapping,
// spec §4.G) consume the same *Type values from one Interner per
// compilation, mirroring the teacher's `yparse/types.go` Type table but
// widened from one fixed-width integer family to the full numeric/text/
// pointer/slice/named hierarchy spec §4.B-§4.G need.
package types

import (
	"fmt"
	"strings"

	"github.com/razorforge-lang/rfc/token"
)

// Kind discriminates the shape of a Type.
type Kind int

const (
	Invalid Kind = iota
	Void
	Error // result of a failed type-resolution; suppresses cascades of ES003
	Bool
	Signed
	Unsigned
	Float
	Decimal
	Letter
	Text
	Pointer
	Slice
	Named // record / entity / variant / protocol, resolved against a Decl
	Function
	Tuple
	Fallible // the `(value, ok)`-shaped result of a `?` overflow operator
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Void:
		return "void"
	case Error:
		return "error"
	case Bool:
		return "bool"
	case Signed:
		return "signed"
	case Unsigned:
		return "unsigned"
	case Float:
		return "float"
	case Decimal:
		return "decimal"
	case Letter:
		return "letter"
	case Text:
		return "text"
	case Pointer:
		return "pointer"
	case Slice:
		return "slice"
	case Named:
		return "named"
	case Function:
		return "function"
	case Tuple:
		return "tuple"
	case Fallible:
		return "fallible"
	default:
		return "unknown"
	}
}

// SliceKind distinguishes the two slice forms spec §4.E.5 names.
type SliceKind int

const (
	DynamicSlice SliceKind = iota
	TemporarySlice
)

// PointerKind distinguishes a managed pointer from the raw address-typed
// form legal only inside `danger!` blocks (spec §4.G).
type PointerKind int

const (
	ManagedPointer PointerKind = iota
	RawAddress
)

// Type is an interned, immutable type value. Compare with == after interning
// through an Interner — never construct one directly outside this package.
type Type struct {
	Kind Kind

	Width int // bit width, for Signed/Unsigned/Float/Decimal/Letter

	PtrKind PointerKind // valid when Kind == Pointer
	SlcKind SliceKind   // valid when Kind == Slice
	Elem    *Type       // element type, for Pointer/Slice/Fallible

	Name string // valid when Kind == Named

	Params []*Type // parameter types, for Function; element types, for Tuple
	Ret    *Type   // return type, for Function

	key string // canonical structural key used for interning
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case Signed:
		return fmt.Sprintf("s%d", t.Width)
	case Unsigned:
		return fmt.Sprintf("u%d", t.Width)
	case Float:
		return fmt.Sprintf("f%d", t.Width)
	case Decimal:
		return fmt.Sprintf("d%d", t.Width)
	case Letter:
		return fmt.Sprintf("letter%d", t.Width)
	case Pointer:
		if t.PtrKind == RawAddress {
			return fmt.Sprintf("addr<%s>", t.Elem)
		}
		return fmt.Sprintf("*%s", t.Elem)
	case Slice:
		if t.SlcKind == TemporarySlice {
			return fmt.Sprintf("TemporarySlice<%s>", t.Elem)
		}
		return fmt.Sprintf("DynamicSlice<%s>", t.Elem)
	case Named:
		return t.Name
	case Function:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		ret := "void"
		if t.Ret != nil {
			ret = t.Ret.String()
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), ret)
	case Tuple:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
	case Fallible:
		return fmt.Sprintf("%s?", t.Elem)
	default:
		return t.Kind.String()
	}
}

// IsInteger reports whether t is a signed or unsigned integer type.
func (t *Type) IsInteger() bool {
	return t != nil && (t.Kind == Signed || t.Kind == Unsigned)
}

// IsNumeric reports whether t is any scalar numeric kind.
func (t *Type) IsNumeric() bool {
	return t != nil && (t.Kind == Signed || t.Kind == Unsigned || t.Kind == Float || t.Kind == Decimal)
}

// NumTypeSuffix recovers the lexer/parser-level suffix tag matching t, for
// diagnostics that want to echo the source spelling ("s32", "u8", ...).
func (t *Type) NumTypeSuffix() token.NumType {
	switch {
	case t == nil:
		return token.NumNone
	case t.Kind == Signed:
		nt, _ := token.LookupNumSuffix(fmt.Sprintf("s%d", t.Width))
		return nt
	case t.Kind == Unsigned:
		nt, _ := token.LookupNumSuffix(fmt.Sprintf("u%d", t.Width))
		return nt
	case t.Kind == Float:
		nt, _ := token.LookupNumSuffix(fmt.Sprintf("f%d", t.Width))
		return nt
	case t.Kind == Decimal:
		nt, _ := token.LookupNumSuffix(fmt.Sprintf("d%d", t.Width))
		return nt
	default:
		return token.NumNone
	}
}
