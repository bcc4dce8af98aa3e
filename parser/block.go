package parser

import (
	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/token"
)

// parseBody accepts either block style spec §4.D requires: "Both styles may
// coexist in a file; the parser accepts whichever begins after a `:` or
// `{`." Brace-style bodies suppress Newline/Indent/Dedent entirely (the
// lexer's bracket-depth rule), so statements inside `{ }` are separated only
// by an optional Semicolon; indent-style bodies use Newline/Indent/Dedent.
func (p *Parser) parseBody() *ast.BlockStmt {
	switch {
	case p.check(token.LeftBrace):
		return p.parseBraceBlock()
	case p.check(token.Colon):
		p.advance()
		return p.parseIndentBlock()
	default:
		p.errorf("EP002", p.cur().Span, "expected '{' or ':' to start a block, found %s", p.cur().Kind)
		return &ast.BlockStmt{Span: p.cur().Span}
	}
}

func (p *Parser) parseBraceBlock() *ast.BlockStmt {
	start := p.herePos()
	p.expect(token.LeftBrace, "'{'")
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		}
		p.match(token.Semicolon)
	}
	p.expect(token.RightBrace, "'}'")
	return &ast.BlockStmt{Stmts: stmts, Span: p.spanFrom(start)}
}

func (p *Parser) parseIndentBlock() *ast.BlockStmt {
	start := p.herePos()
	p.skipNewlines()
	if _, ok := p.expect(token.Indent, "indented block"); !ok {
		return &ast.BlockStmt{Span: p.spanFrom(start)}
	}
	var stmts []ast.Stmt
	for !p.check(token.Dedent) && !p.atEnd() {
		p.skipNewlines()
		if p.check(token.Dedent) || p.atEnd() {
			break
		}
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		}
		p.skipNewlines()
	}
	p.match(token.Dedent)
	return &ast.BlockStmt{Stmts: stmts, Span: p.spanFrom(start)}
}
