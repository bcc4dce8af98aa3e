package token

// primitiveTypeNames lists the lowercase-spelled built-in type names that
// tokenize as TypeIdentifier despite not starting with an uppercase letter
// (spec §8 scenario 4: `s32` lexes as a TypeIdentifier). The general rule
// ("Identifiers beginning with an uppercase letter tokenize as
// Type-identifiers; others as Identifiers", spec §4.B) governs user-defined
// names; these fixed primitive spellings are a closed, dialect-neutral set
// checked first.
var primitiveTypeNames = map[string]bool{
	"s8": true, "s16": true, "s32": true, "s64": true, "s128": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true,
	"f16": true, "f32": true, "f64": true, "f128": true,
	"d32": true, "d64": true, "d128": true,
	"bool": true, "text": true,
	"letter": true, "letter8": true, "letter16": true, "letter32": true,
	// Pointer-sized integer aliases (spec §4.G).
	"uaddr": true, "saddr": true, "iptr": true, "uptr": true,
	// C-ABI width aliases (spec §4.G).
	"cchar": true, "cshort": true, "cint": true, "clong": true, "cll": true,
	"cuchar": true, "cushort": true, "cuint": true, "culong": true, "cull": true,
	"cwchar": true,
}

// IsPrimitiveTypeName reports whether word names a built-in scalar type.
func IsPrimitiveTypeName(word string) bool {
	return primitiveTypeNames[word]
}
