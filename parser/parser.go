// Package parser implements spec component D: a hand-written recursive-
// descent parser for declarations and statements, with a Pratt-style
// expression parser for operator precedence. Modeled on the teacher's
// `parse/parser.go` (`Parser` struct, `p.error`/`p.synchronize` panic-mode
// recovery, `parseAdditive`/`parseMultiplicative`/... precedence ladder) but
// generalized from the teacher's fixed single-dialect brace grammar to
// spec §4.D's dialect-sensitive keyword sets and dual brace/indentation
// block styles.
package parser

import (
	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/diag"
	"github.com/razorforge-lang/rfc/span"
	"github.com/razorforge-lang/rfc/token"
)

// Parser consumes a finite token sequence (as produced by package lexer) and
// yields a Program plus any diagnostics accumulated along the way. A Parser
// is used once (spec §5: no reusable global state).
type Parser struct {
	file    string
	toks    []token.Token
	dialect token.Dialect
	diags   *diag.Bag

	pos int

	// panicMode suppresses cascades of syntax errors after the first one
	// until synchronize() finds a recognizable restart point (spec §4.D
	// "Error recovery").
	panicMode bool
}

// New constructs a Parser over a token sequence produced for file under
// dialect. Diagnostics are appended to diags, owned by the caller.
func New(file string, toks []token.Token, dialect token.Dialect, diags *diag.Bag) *Parser {
	return &Parser{file: file, toks: toks, dialect: dialect, diags: diags}
}

// Parse consumes the whole token stream and returns the program node. On
// structural failures the best partial AST is still returned alongside the
// accumulated diagnostics (spec §4.D contract).
func (p *Parser) Parse() *ast.Program {
	start := p.herePos()
	prog := &ast.Program{File: p.file}
	for !p.atEnd() {
		p.skipNewlines()
		if p.atEnd() {
			break
		}
		d := p.parseDecl()
		if d != nil {
			prog.Decls = append(prog.Decls, d)
		}
	}
	end := p.herePos()
	prog.Span = span.Range(p.file, start, end)
	return prog
}

// --- cursor primitives ---

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekN(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[i]
}

func (p *Parser) herePos() span.Pos {
	return p.cur().Span.Start
}

func (p *Parser) atEnd() bool {
	return p.cur().Kind == token.EOF
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

// skipNewlines consumes any run of layout Newline tokens, which separate
// top-level declarations and statements under the indentation block style.
func (p *Parser) skipNewlines() {
	for p.check(token.Newline) {
		p.advance()
	}
}

// expect consumes a token of kind k, or records a diagnostic and leaves the
// cursor in place (the caller's synchronize() call, if any, recovers).
func (p *Parser) expect(k token.Kind, what string) (token.Token, bool) {
	if p.check(k) {
		return p.advance(), true
	}
	p.errorf("EP001", p.cur().Span, "expected %s, found %s", what, p.cur().Kind)
	return token.Token{}, false
}

func (p *Parser) errorf(code string, at span.Span, format string, args ...any) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.diags.Add(diag.New(code, at, format, args...))
}

// spanFrom builds the span covering [start, current cursor position).
func (p *Parser) spanFrom(start span.Pos) span.Span {
	end := start
	if p.pos > 0 {
		end = p.toks[p.pos-1].Span.End
	}
	return span.Range(p.file, start, end)
}

// synchronize skips tokens until a declaration- or statement-starting
// keyword, or a Dedent/RightBrace, is reached (spec §4.D: "the parser
// synchronizes to the next statement-starting keyword or to the next
// top-level declaration").
func (p *Parser) synchronize() {
	p.panicMode = false
	for !p.atEnd() {
		switch p.cur().Kind {
		case token.KwFunction, token.KwExternal, token.KwRecord, token.KwEntity,
			token.KwVariant, token.KwProtocol, token.KwImport, token.KwRedefine,
			token.KwLet, token.KwVar, token.KwIf, token.KwWhen, token.KwWhile,
			token.KwFor, token.KwLoop, token.KwBreak, token.KwContinue,
			token.KwReturn, token.KwDanger, token.Dedent, token.RightBrace:
			return
		}
		p.advance()
	}
}
