package token

import "github.com/razorforge-lang/rfc/span"

// Token is one lexical unit produced by the lexer. Literal tokens additionally
// carry a parsed value and, where the source text supplied one, a concrete
// type tag (spec §3: "Literal tokens additionally carry a parsed
// numeric/text value and a concrete type tag where present in the suffix").
type Token struct {
	Kind Kind
	Text string // raw source text, byte-for-byte (spec §8 round-trip invariant)
	Span span.Span

	// Populated for IntLiteral / FloatLiteral / DecimalLiteral.
	NumType  NumType
	IntValue int64
	FloatValue float64
	Overflowed bool // true if the literal's digits don't fit NumType's width

	// Populated for MemoryLiteral.
	MemUnit  MemUnit
	MemCount int64

	// Populated for DurationLiteral.
	DurationUnit  DurationUnit
	DurationCount int64

	// Populated for TextLiteral / FormatTextLiteral / LetterLiteral.
	Encoding    TextEncoding
	StringValue string
	RuneValue   rune

	// Populated for FormatTextLiteral: the literal chunks and the raw source
	// text of each `{expr}` hole, in source order; the parser re-lexes and
	// re-parses each hole as a sub-expression.
	FormatParts []FormatPart

	// IndentDepth is populated on Indent/Dedent tokens: the new column depth
	// of the logical line that triggered the event.
	IndentDepth int
}

// FormatPart is one piece of a formatted text literal: either a literal
// chunk of already-decoded text, or the raw source text of an interpolated
// expression to be tokenized and parsed independently.
type FormatPart struct {
	IsExpr bool
	Text   string // literal chunk (IsExpr==false) or expression source (IsExpr==true)
	Span   span.Span
}

func (t Token) String() string {
	return t.Kind.String() + "(" + t.Text + ")"
}
