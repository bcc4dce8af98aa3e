// Package lexer implements spec component B: a pull-based scanner that turns
// UTF-8 source text into a finite token sequence, including the virtual
// Indent/Dedent/Newline events significant-indentation blocks need. Modeled
// on the teacher's hand-rolled byte-at-a-time scanner (ylex/lexer.go's
// peek/peekN/advance triad) but generalized from one fixed token vocabulary
// to the 114-kind set in package token, and from "exit(1) on first
// error" to the accumulate-and-continue diagnostics discipline spec §4.B
// and §7 require.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/razorforge-lang/rfc/diag"
	"github.com/razorforge-lang/rfc/span"
	"github.com/razorforge-lang/rfc/token"
)

// Lexer scans one source file under one dialect. A Lexer is used once: build
// it with New, call Tokenize, discard it (spec §5: no reusable global state).
type Lexer struct {
	file    string
	src     string
	dialect token.Dialect
	diags   *diag.Bag

	pos    int // byte offset
	line   int // 1-based
	col    int // 1-based

	bracketDepth int
	indentStack  []int
	atLineStart  bool
	pendingDents []token.Token // queued Dedent tokens for the current line-start
}

// New constructs a Lexer over src. Diagnostics produced while scanning are
// appended to diags, which the caller owns (spec §5: shared resources belong
// to the current compilation context).
func New(file, src string, dialect token.Dialect, diags *diag.Bag) *Lexer {
	return &Lexer{
		file:        file,
		src:         src,
		dialect:     dialect,
		diags:       diags,
		line:        1,
		col:         1,
		indentStack: []int{0},
		atLineStart: true,
	}
}

// Tokenize scans the whole file and returns its token sequence, always
// terminated by a single EOF token (spec §4.B contract).
func (l *Lexer) Tokenize() []token.Token {
	var out []token.Token
	for {
		tok := l.next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// --- low-level cursor ---

func (l *Lexer) here() span.Pos {
	return span.Pos{Line: l.line, Col: l.col, Offset: l.pos}
}

func (l *Lexer) peek() byte {
	return l.peekN(0)
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) span(start span.Pos) span.Span {
	return span.Range(l.file, start, l.here())
}

func (l *Lexer) errorf(code string, at span.Span, format string, args ...any) {
	l.diags.Add(diag.New(code, at, format, args...))
}

// --- main dispatch ---

func (l *Lexer) next() token.Token {
	if len(l.pendingDents) > 0 {
		tok := l.pendingDents[0]
		l.pendingDents = l.pendingDents[1:]
		return tok
	}

	if l.atLineStart && l.bracketDepth == 0 {
		if tok, handled := l.handleLineStart(); handled {
			return tok
		}
	}

	l.skipInsignificantWhitespace()

	start := l.here()

	if l.eof() {
		return l.closeOutFile(start)
	}

	ch := l.peek()

	switch {
	case ch == '\n':
		return l.scanNewlineOrSuppress(start)
	case ch == '#':
		return l.scanComment(start)
	case isIdentStart(ch):
		return l.scanIdentifierLike(start)
	case isDigit(ch):
		return l.scanNumberLike(start)
	case ch == '"':
		return l.scanTextLiteral(start, token.EncodingDefault, "")
	case ch == '\'':
		return l.scanLetterLiteral(start, token.EncodingDefault)
	default:
		return l.scanOperatorOrPunct(start)
	}
}

// closeOutFile emits any remaining Dedents to bring the indent stack back to
// zero before the terminal EOF token (spec §4.B: "finite token sequence
// terminated by End-of-file").
func (l *Lexer) closeOutFile(start span.Pos) token.Token {
	if len(l.indentStack) > 1 {
		l.indentStack = l.indentStack[:len(l.indentStack)-1]
		return token.Token{Kind: token.Dedent, Span: l.span(start)}
	}
	return token.Token{Kind: token.EOF, Span: l.span(start), Text: ""}
}

// skipInsignificantWhitespace consumes spaces/tabs/CR outside of line-start
// handling, and (inside brackets) newlines too, since "inside matched
// brackets ... newlines are suppressed" (spec §4.B).
func (l *Lexer) skipInsignificantWhitespace() {
	for !l.eof() {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.advance()
			continue
		}
		if ch == '\n' && l.bracketDepth > 0 {
			l.advance()
			l.atLineStart = false // line-start tracking is meaningless inside brackets
			continue
		}
		break
	}
}

// handleLineStart measures leading whitespace at the start of a logical line
// and converts it into Indent/Dedent events, per spec §4.B. Returns
// handled=false when the line is blank or comment-only (no events for those).
func (l *Lexer) handleLineStart() (token.Token, bool) {
	save := l.pos
	saveLine, saveCol := l.line, l.col

	depth := 0
	for !l.eof() {
		ch := l.peek()
		if ch == ' ' {
			l.advance()
			depth++
		} else if ch == '\t' {
			l.advance()
			depth += 8 - (depth % 8)
		} else {
			break
		}
	}

	// Blank line or comment-only line: no indent event, reset and let the
	// normal scan loop consume (and possibly skip) the line.
	if l.eof() || l.peek() == '\n' || l.peek() == '#' {
		l.atLineStart = false
		return token.Token{}, false
	}

	l.atLineStart = false
	top := l.indentStack[len(l.indentStack)-1]

	switch {
	case depth > top:
		l.indentStack = append(l.indentStack, depth)
		return token.Token{Kind: token.Indent, Span: l.span(span.Pos{Line: saveLine, Col: saveCol, Offset: save}), IndentDepth: depth}, true
	case depth < top:
		for len(l.indentStack) > 1 && l.indentStack[len(l.indentStack)-1] > depth {
			l.indentStack = l.indentStack[:len(l.indentStack)-1]
			l.pendingDents = append(l.pendingDents, token.Token{Kind: token.Dedent, Span: l.span(l.here()), IndentDepth: depth})
		}
		if len(l.pendingDents) == 0 {
			return token.Token{}, false
		}
		first := l.pendingDents[0]
		l.pendingDents = l.pendingDents[1:]
		return first, true
	default:
		return token.Token{}, false
	}
}

func (l *Lexer) scanNewlineOrSuppress(start span.Pos) token.Token {
	l.advance()
	l.atLineStart = true
	return token.Token{Kind: token.Newline, Text: "\n", Span: l.span(start)}
}

func (l *Lexer) scanComment(start span.Pos) token.Token {
	l.advance() // first '#'
	doc := false
	if l.peek() == '#' {
		l.advance()
		doc = true
	}
	var b strings.Builder
	for !l.eof() && l.peek() != '\n' {
		b.WriteByte(l.advance())
	}
	kind := token.Comment
	if doc {
		kind = token.DocComment
	}
	return token.Token{Kind: kind, Text: b.String(), Span: l.span(start)}
}

// --- identifiers, keywords, and suffixed-literal dispatch ---

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentCont(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func (l *Lexer) scanIdentifierLike(start span.Pos) token.Token {
	// Prefixed literal forms share identifier lexical shape: t8"...", t16"...",
	// t32"...", r"...", f"...{}...", l8'x', l16'x', l32'x' (spec §4.B).
	if prefix, ok := l.tryLiteralPrefix(); ok {
		return l.dispatchPrefixedLiteral(start, prefix)
	}

	var b strings.Builder
	for !l.eof() && isIdentCont(l.peek()) {
		b.WriteByte(l.advance())
	}
	if l.peek() == '!' {
		b.WriteByte(l.advance())
	}
	word := b.String()

	if word == "_" {
		return token.Token{Kind: token.Underscore, Text: word, Span: l.span(start)}
	}

	if kind, ok := token.LookupKeyword(l.dialect, word); ok {
		return token.Token{Kind: kind, Text: word, Span: l.span(start)}
	}

	first, _ := utf8.DecodeRuneInString(word)
	kind := token.Identifier
	if (first >= 'A' && first <= 'Z') || token.IsPrimitiveTypeName(word) {
		kind = token.TypeIdentifier
	}
	return token.Token{Kind: kind, Text: word, Span: l.span(start)}
}

// literalPrefix names a text/letter literal's encoding prefix, detected
// before consuming it so a plain identifier starting with the same letters
// (e.g. a variable named `req`) is never misread as a literal prefix.
type literalPrefix struct {
	encoding token.TextEncoding
	letter   bool // true => this is a letter literal ('c') prefix, not text ("...")
}

func (l *Lexer) tryLiteralPrefix() (literalPrefix, bool) {
	rest := l.src[l.pos:]
	check := func(word string, enc token.TextEncoding) (literalPrefix, bool) {
		if strings.HasPrefix(rest, word) && len(rest) > len(word) {
			quote := rest[len(word)]
			if quote == '"' || quote == '\'' {
				return literalPrefix{encoding: enc, letter: quote == '\''}, true
			}
		}
		return literalPrefix{}, false
	}
	for _, c := range []struct {
		word string
		enc  token.TextEncoding
	}{
		{"t8", token.Encoding8}, {"t16", token.Encoding16}, {"t32", token.Encoding32},
		{"l8", token.Encoding8}, {"l16", token.Encoding16}, {"l32", token.Encoding32},
		{"r", token.EncodingRaw}, {"f", token.EncodingFormat},
	} {
		if p, ok := check(c.word, c.enc); ok {
			return p, true
		}
	}
	return literalPrefix{}, false
}

func (l *Lexer) dispatchPrefixedLiteral(start span.Pos, p literalPrefix) token.Token {
	// consume the prefix letters up to (not including) the quote
	for l.peek() != '"' && l.peek() != '\'' {
		l.advance()
	}
	if p.letter {
		return l.scanLetterLiteral(start, p.encoding)
	}
	return l.scanTextLiteral(start, p.encoding, "")
}
