package token

// Dialect selects between the two source languages this core compiles,
// both of which flow through the same lexer/parser/analyzer/emitter
// pipeline (spec §1). Suffix-based selection lives in the `compiler`
// package (spec §6: ".rf" => Systems, ".sf" => Surface, anything else
// defaults to Systems).
type Dialect int

const (
	Systems Dialect = iota // "RazorForge"
	Surface                 // "Suflae"
)

func (d Dialect) String() string {
	if d == Surface {
		return "suflae"
	}
	return "razorforge"
}

// systemsKeywords and surfaceKeywords map each dialect's concrete spelling
// onto the dialect-neutral Kind space in kind.go. The two dialects agree on
// most spellings; where spec.md doesn't name an alternate surface spelling,
// this core keeps the systems spelling for both (a documented, conservative
// default — Suflae is explicitly a "surface-syntax variant" of the same
// pipeline, not a disjoint grammar).
var systemsKeywords = map[string]Kind{
	"routine":  KwFunction,
	"external": KwExternal,
	"record":   KwRecord,
	"entity":   KwEntity,
	"variant":  KwVariant,
	"protocol": KwProtocol,
	"import":   KwImport,
	"redefine": KwRedefine,
	"let":      KwLet,
	"var":      KwVar,
	"if":       KwIf,
	"elif":     KwElif,
	"else":     KwElse,
	"then":     KwThen,
	"when":     KwWhen,
	"is":       KwIs,
	"while":    KwWhile,
	"for":      KwFor,
	"to":       KwTo,
	"by":       KwBy,
	"in":       KwIn,
	"loop":     KwLoop,
	"break":    KwBreak,
	"continue": KwContinue,
	"return":   KwReturn,
	"true":     KwTrue,
	"false":    KwFalse,
	"none":     KwNone,
	"and":      LogicalAnd,
	"or":       LogicalOr,
	"not":      LogicalNot,

	// These four spell their trailing '!' as part of the keyword itself
	// (spec §4.G: `danger!`/`verify!`/`breach!`/`stop!`), matching the
	// lexer's "identifiers may carry an optional trailing !" rule (spec
	// §4.B) — scanIdentifierLike folds the '!' into the word before this
	// table is consulted.
	"danger!": KwDanger,
	"verify!": KwVerify,
	"breach!": KwBreach,
	"stop!":   KwStop,
}

// surfaceKeywords is Suflae's keyword spelling table. It shares every
// systems spelling except the handful that Suflae's surface syntax renames
// for readability ("fn" for routines, "def" as a synonym, "match" for the
// pattern-match statement) — a small, deliberate divergence rather than a
// second grammar, matching spec §4.D's "dialect-sensitive keyword sets".
var surfaceKeywords = func() map[string]Kind {
	m := make(map[string]Kind, len(systemsKeywords)+4)
	for k, v := range systemsKeywords {
		m[k] = v
	}
	delete(m, "routine")
	delete(m, "when")
	m["fn"] = KwFunction
	m["def"] = KwFunction
	m["match"] = KwWhen
	m["case"] = KwWhen
	return m
}()

// Keywords returns the keyword table for a dialect.
func Keywords(d Dialect) map[string]Kind {
	if d == Surface {
		return surfaceKeywords
	}
	return systemsKeywords
}

// LookupKeyword resolves an identifier spelling to a Kind under the given
// dialect, returning (Identifier-shaped zero value, false) when it is not a
// reserved word — "Reserved keywords dominate identifier matching" (spec §4.B).
func LookupKeyword(dialect Dialect, word string) (Kind, bool) {
	k, ok := Keywords(dialect)[word]
	return k, ok
}
