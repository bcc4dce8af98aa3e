package types

import (
	"github.com/razorforge-lang/rfc/target"
	"github.com/razorforge-lang/rfc/token"
)

// FromNumType interns the scalar Type matching a lexer/parser NumType tag
// (spec §4.B suffix families: s8..s128, u8..u128, f16..f128, d32..d128).
func (in *Interner) FromNumType(nt token.NumType) *Type {
	switch {
	case nt.IsSigned():
		return in.Scalar(Signed, nt.BitWidth())
	case nt.IsUnsigned():
		return in.Scalar(Unsigned, nt.BitWidth())
	case nt.IsFloat():
		return in.Scalar(Float, nt.BitWidth())
	case nt.IsDecimal():
		return in.Scalar(Decimal, nt.BitWidth())
	default:
		return in.Scalar(Signed, 64) // NumNone: default is s64 (spec §4.B)
	}
}

// DefaultInt is the literal default when no suffix is present (spec §4.B:
// "Without suffix the default is s64 for integers").
func (in *Interner) DefaultInt() *Type { return in.Scalar(Signed, 64) }

// DefaultFloat is the literal default for fractions ("f64 for fractions").
func (in *Interner) DefaultFloat() *Type { return in.Scalar(Float, 64) }

// LetterOf interns a letter type of the given code-unit width (8/16/32);
// width 0 means the dialect default, letter32 (spec §4.B: "Default letter ->
// i32" per §4.G's type mapping table).
func (in *Interner) LetterOf(width int) *Type {
	if width == 0 {
		width = 32
	}
	return in.intern4Letter(width)
}

func (in *Interner) intern4Letter(width int) *Type {
	key := "letter"
	switch width {
	case 8:
		key += "8"
	case 16:
		key += "16"
	default:
		key += "32"
		width = 32
	}
	return in.intern(key, func() *Type { return &Type{Kind: Letter, Width: width} })
}

// FromPrimitiveName resolves one of the fixed lowercase built-in type
// spellings (token.IsPrimitiveTypeName) to its interned Type. ok is false for
// C-ABI/pointer-sized aliases, which `target.Platform` resolves instead
// (their width is target-dependent, spec §4.G).
func (in *Interner) FromPrimitiveName(name string) (*Type, bool) {
	if nt, ok := token.LookupNumSuffix(name); ok {
		return in.FromNumType(nt), true
	}
	switch name {
	case "bool":
		return in.Bool(), true
	case "text":
		return in.Text(), true
	case "letter":
		return in.LetterOf(32), true
	case "letter8":
		return in.LetterOf(8), true
	case "letter16":
		return in.LetterOf(16), true
	case "letter32":
		return in.LetterOf(32), true
	default:
		return nil, false
	}
}

// FromPlatformPrimitive resolves the pointer-sized and C-ABI width aliases
// spec §4.G names (uaddr/saddr/iptr/uptr, cchar/cshort/cint/clong/cll and
// their unsigned cousins, cwchar) against a target.Platform — unlike
// FromPrimitiveName's fixed-width suffixes, these widths are target-
// dependent, so resolution needs the platform table sema/codegen both carry
// a *target.Platform for.
func (in *Interner) FromPlatformPrimitive(name string, plat target.Platform) (*Type, bool) {
	switch name {
	case "uaddr", "uptr":
		return in.Scalar(Unsigned, plat.WordBits), true
	case "saddr", "iptr":
		return in.Scalar(Signed, plat.WordBits), true
	case "cchar":
		return in.Scalar(Signed, 8), true
	case "cuchar":
		return in.Scalar(Unsigned, 8), true
	case "cshort":
		return in.Scalar(Signed, 16), true
	case "cushort":
		return in.Scalar(Unsigned, 16), true
	case "cint":
		return in.Scalar(Signed, 32), true
	case "cuint":
		return in.Scalar(Unsigned, 32), true
	case "clong":
		return in.Scalar(Signed, plat.CLongBits()), true
	case "culong":
		return in.Scalar(Unsigned, plat.CLongBits()), true
	case "cll":
		return in.Scalar(Signed, 64), true
	case "cull":
		return in.Scalar(Unsigned, 64), true
	case "cwchar":
		return in.Scalar(Unsigned, plat.CWCharBits()), true
	default:
		return nil, false
	}
}
