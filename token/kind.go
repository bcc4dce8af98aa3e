// Package token defines the lexical vocabulary shared by the lexer and
// parser: token kinds, literal value representations, and the two dialects'
// keyword tables. Modeled on the teacher's flat kind-constant style
// (ylex/lexer.go's KEY/ID/PUNCT/LIT categories) but widened into the full
// enumerated kind set (114 kinds).
package token

import "fmt"

// Kind enumerates every distinct token shape the lexer can emit.
type Kind int

const (
	Invalid Kind = iota
	EOF

	// Layout / structure tokens (significant indentation, spec §4.B).
	Newline
	Indent
	Dedent
	Comment
	DocComment

	// Names.
	Identifier
	TypeIdentifier

	// Numeric literal families (concrete type carried on Token.NumType).
	IntLiteral
	FloatLiteral
	DecimalLiteral
	MemoryLiteral
	DurationLiteral

	// Text / letter literal families.
	TextLiteral
	FormatTextLiteral
	LetterLiteral

	// Format-string interpolation sub-tokens.
	FormatTextChunk
	FormatExprStart
	FormatExprEnd

	// Punctuation.
	LeftParen
	RightParen
	LeftBracket
	RightBracket
	LeftBrace
	RightBrace
	Comma
	Colon
	Semicolon
	Dot
	DotDot
	Arrow    // ->
	FatArrow // =>
	Question
	At
	Underscore
	Bang

	// Assignment.
	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign

	// Arithmetic + overflow-variant families. Each base operator (+ - * //)
	// has five forms: default (checked-by-trap), wrapping %, saturating ^,
	// unchecked !, and fallible-checked ? (spec §4.B, §4.E.4).
	Plus
	PlusWrap
	PlusSat
	PlusUnchecked
	PlusFallible
	Minus
	MinusWrap
	MinusSat
	MinusUnchecked
	MinusFallible
	Star
	StarWrap
	StarSat
	StarUnchecked
	StarFallible
	Slash
	SlashSlash // //
	SlashSlashWrap
	SlashSlashSat
	SlashSlashUnchecked
	SlashSlashFallible
	Percent
	Power // **

	// Bitwise.
	Amp
	Pipe
	Caret
	Tilde
	Shl
	Shr

	// Comparison.
	Eq
	NotEq
	Lt
	LtEq
	Gt
	GtEq

	// Logical (also spelled as keywords in both dialects; see dialect.go).
	LogicalAnd
	LogicalOr
	LogicalNot

	// Keywords — control flow and declarations (dialect-neutral kind space;
	// dialect.go maps each dialect's spelling onto these).
	KwFunction
	KwExternal
	KwRecord
	KwEntity
	KwVariant
	KwProtocol
	KwImport
	KwRedefine
	KwVar
	KwLet
	KwIf
	KwElif
	KwElse
	KwThen
	KwWhen
	KwIs
	KwWhile
	KwFor
	KwTo
	KwBy
	KwIn
	KwLoop
	KwBreak
	KwContinue
	KwReturn
	KwDanger
	KwTrue
	KwFalse
	KwNone

	// Intrinsic-ish source-level error throws (spec §4.G); lexed as
	// keywords so the parser can special-case their `!` call form.
	KwVerify
	KwBreach
	KwStop

	EndOfFile
)

var kindNames = map[Kind]string{
	Invalid: "Invalid", EOF: "EOF",
	Newline: "Newline", Indent: "Indent", Dedent: "Dedent",
	Comment: "Comment", DocComment: "DocComment",
	Identifier: "Identifier", TypeIdentifier: "TypeIdentifier",
	IntLiteral: "IntLiteral", FloatLiteral: "FloatLiteral",
	DecimalLiteral: "DecimalLiteral", MemoryLiteral: "MemoryLiteral",
	DurationLiteral: "DurationLiteral",
	TextLiteral:     "TextLiteral", FormatTextLiteral: "FormatTextLiteral",
	LetterLiteral:   "LetterLiteral",
	FormatTextChunk: "FormatTextChunk", FormatExprStart: "FormatExprStart",
	FormatExprEnd: "FormatExprEnd",
	LeftParen:     "LeftParen", RightParen: "RightParen",
	LeftBracket:   "LeftBracket", RightBracket: "RightBracket",
	LeftBrace:     "LeftBrace", RightBrace: "RightBrace",
	Comma: "Comma", Colon: "Colon", Semicolon: "Semicolon",
	Dot: "Dot", DotDot: "DotDot", Arrow: "Arrow", FatArrow: "FatArrow",
	Question: "Question", At: "At", Underscore: "Underscore", Bang: "Bang",
	Assign: "Assign", PlusAssign: "PlusAssign", MinusAssign: "MinusAssign",
	StarAssign: "StarAssign", SlashAssign: "SlashAssign", PercentAssign: "PercentAssign",
	Plus: "Plus", PlusWrap: "PlusWrap", PlusSat: "PlusSat",
	PlusUnchecked: "PlusUnchecked", PlusFallible: "PlusFallible",
	Minus: "Minus", MinusWrap: "MinusWrap", MinusSat: "MinusSat",
	MinusUnchecked: "MinusUnchecked", MinusFallible: "MinusFallible",
	Star: "Star", StarWrap: "StarWrap", StarSat: "StarSat",
	StarUnchecked: "StarUnchecked", StarFallible: "StarFallible",
	Slash: "Slash", SlashSlash: "SlashSlash",
	SlashSlashWrap: "SlashSlashWrap", SlashSlashSat: "SlashSlashSat",
	SlashSlashUnchecked: "SlashSlashUnchecked", SlashSlashFallible: "SlashSlashFallible",
	Percent: "Percent", Power: "Power",
	Amp: "Amp", Pipe: "Pipe", Caret: "Caret", Tilde: "Tilde",
	Shl: "Shl", Shr: "Shr",
	Eq: "Eq", NotEq: "NotEq", Lt: "Lt", LtEq: "LtEq", Gt: "Gt", GtEq: "GtEq",
	LogicalAnd: "LogicalAnd", LogicalOr: "LogicalOr", LogicalNot: "LogicalNot",
	KwFunction: "KwFunction", KwExternal: "KwExternal", KwRecord: "KwRecord",
	KwEntity: "KwEntity", KwVariant: "KwVariant", KwProtocol: "KwProtocol",
	KwImport: "KwImport", KwRedefine: "KwRedefine", KwVar: "KwVar", KwLet: "KwLet",
	KwIf: "KwIf", KwElif: "KwElif", KwElse: "KwElse", KwThen: "KwThen",
	KwWhen: "KwWhen", KwIs: "KwIs", KwWhile: "KwWhile", KwFor: "KwFor",
	KwTo: "KwTo", KwBy: "KwBy", KwIn: "KwIn", KwLoop: "KwLoop",
	KwBreak: "KwBreak", KwContinue: "KwContinue", KwReturn: "KwReturn",
	KwDanger: "KwDanger", KwTrue: "KwTrue", KwFalse: "KwFalse", KwNone: "KwNone",
	KwVerify: "KwVerify", KwBreach: "KwBreach", KwStop: "KwStop",
	EndOfFile: "EndOfFile",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// overflowForms maps each base arithmetic Kind to its four overflow-behavior
// siblings, keyed by the second disambiguating character (spec §4.B: "the
// second character of +%/+^/+!/+? ... disambiguates wrapping, saturating,
// unchecked, and checked semantics").
var overflowForms = map[Kind]map[byte]Kind{
	Plus:       {'%': PlusWrap, '^': PlusSat, '!': PlusUnchecked, '?': PlusFallible},
	Minus:      {'%': MinusWrap, '^': MinusSat, '!': MinusUnchecked, '?': MinusFallible},
	Star:       {'%': StarWrap, '^': StarSat, '!': StarUnchecked, '?': StarFallible},
	SlashSlash: {'%': SlashSlashWrap, '^': SlashSlashSat, '!': SlashSlashUnchecked, '?': SlashSlashFallible},
}

// OverflowForm returns the overflow-variant Kind for base operator `base`
// given the disambiguating suffix byte, and true if one exists.
func OverflowForm(base Kind, suffix byte) (Kind, bool) {
	forms, ok := overflowForms[base]
	if !ok {
		return Invalid, false
	}
	k, ok := forms[suffix]
	return k, ok
}

// IsOverflowVariant reports whether k is one of the four overflow-aware
// arithmetic forms (as opposed to the plain/trapping default).
func IsOverflowVariant(k Kind) bool {
	switch k {
	case PlusWrap, PlusSat, PlusUnchecked, PlusFallible,
		MinusWrap, MinusSat, MinusUnchecked, MinusFallible,
		StarWrap, StarSat, StarUnchecked, StarFallible,
		SlashSlashWrap, SlashSlashSat, SlashSlashUnchecked, SlashSlashFallible:
		return true
	}
	return false
}

// IsFallible reports whether k is a `?`-suffixed overflow variant, which
// per spec §4.E.4 "produce a result tagged as fallible".
func IsFallible(k Kind) bool {
	switch k {
	case PlusFallible, MinusFallible, StarFallible, SlashSlashFallible:
		return true
	}
	return false
}
