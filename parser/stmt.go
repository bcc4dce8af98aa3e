package parser

import (
	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/token"
)

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur().Kind {
	case token.LeftBrace:
		return p.parseBraceBlock()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhen:
		return p.parseWhenStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwLoop:
		return p.parseLoopStmt()
	case token.KwBreak:
		tok := p.advance()
		return &ast.BreakStmt{Span: tok.Span}
	case token.KwContinue:
		tok := p.advance()
		return &ast.ContinueStmt{Span: tok.Span}
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwDanger:
		return p.parseDangerStmt()
	case token.KwLet, token.KwVar:
		start := p.herePos()
		d := p.parseVariableDecl()
		return &ast.DeclStmt{Decl: d, Span: p.spanFrom(start)}
	default:
		start := p.herePos()
		e := p.parseExpression()
		return &ast.ExprStmt{X: e, Span: p.spanFrom(start)}
	}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.herePos()
	p.advance() // 'if'
	cond := p.parseExpression()
	then := p.parseBody()

	var elifs []ast.ElifClause
	for p.check(token.KwElif) {
		estart := p.herePos()
		p.advance()
		ec := p.parseExpression()
		eb := p.parseBody()
		elifs = append(elifs, ast.ElifClause{Cond: ec, Body: eb, Span: p.spanFrom(estart)})
	}
	var elseBody *ast.BlockStmt
	if p.match(token.KwElse) {
		elseBody = p.parseBody()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Elifs: elifs, Else: elseBody, Span: p.spanFrom(start)}
}

// parseWhenStmt parses the pattern-match statement. Arms are separated by
// Newlines (indent style) or Commas/Semicolons (brace style) and written
// `pattern [if guard] => body`.
func (p *Parser) parseWhenStmt() ast.Stmt {
	start := p.herePos()
	p.advance() // 'when'/'match'/'case'
	subject := p.parseExpression()

	brace := p.check(token.LeftBrace)
	if brace {
		p.advance()
	} else {
		p.expect(token.Colon, "':'")
		p.skipNewlines()
		p.expect(token.Indent, "indented when body")
	}
	terminator := token.Dedent
	if brace {
		terminator = token.RightBrace
	}

	var arms []ast.WhenArm
	for !p.check(terminator) && !p.atEnd() {
		p.skipNewlines()
		if p.check(terminator) {
			break
		}
		astart := p.herePos()
		pat := p.parsePattern()
		var guard ast.Expr
		if p.match(token.KwIf) {
			guard = p.parseExpression()
		}
		p.expect(token.FatArrow, "'=>'")
		body := p.parseArmBody()
		arms = append(arms, ast.WhenArm{Pattern: pat, Guard: guard, Body: body, Span: p.spanFrom(astart)})
		if !p.match(token.Comma) {
			p.match(token.Semicolon)
		}
		p.skipNewlines()
	}
	if brace {
		p.expect(token.RightBrace, "'}'")
	} else {
		p.match(token.Dedent)
	}
	return &ast.WhenStmt{Subject: subject, Arms: arms, Span: p.spanFrom(start)}
}

// parseArmBody accepts either a brace/indent block or a single expression
// (wrapped as a one-statement block), matching how arms are usually written
// in pattern-match syntax (`pattern => expr`).
func (p *Parser) parseArmBody() *ast.BlockStmt {
	if p.check(token.LeftBrace) {
		return p.parseBraceBlock()
	}
	start := p.herePos()
	e := p.parseExpression()
	stmt := &ast.ExprStmt{X: e, Span: p.spanFrom(start)}
	return &ast.BlockStmt{Stmts: []ast.Stmt{stmt}, Span: p.spanFrom(start)}
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.herePos()
	p.advance() // 'while'
	cond := p.parseExpression()
	body := p.parseBody()
	return &ast.WhileStmt{Cond: cond, Body: body, Span: p.spanFrom(start)}
}

// parseForStmt parses `for x in iterable { ... }`, where iterable may be a
// `a to b [by s]` range (lowered by parseExpression into a RangeExpr) or any
// other iterator expression (spec §3: "for (range `a to b [by s]`,
// iterator)").
func (p *Parser) parseForStmt() ast.Stmt {
	start := p.herePos()
	p.advance() // 'for'
	nameTok, _ := p.expect(token.Identifier, "loop variable name")
	p.expect(token.KwIn, "'in'")
	iterable := p.parseExpression()
	body := p.parseBody()
	return &ast.ForStmt{Var: nameTok.Text, Iterable: iterable, Body: body, Span: p.spanFrom(start)}
}

func (p *Parser) parseLoopStmt() ast.Stmt {
	start := p.herePos()
	p.advance() // 'loop'
	body := p.parseBody()
	return &ast.LoopStmt{Body: body, Span: p.spanFrom(start)}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.herePos()
	p.advance() // 'return'
	var val ast.Expr
	if !p.check(token.Newline) && !p.check(token.Dedent) && !p.check(token.RightBrace) &&
		!p.check(token.Semicolon) && !p.atEnd() {
		val = p.parseExpression()
	}
	return &ast.ReturnStmt{Value: val, Span: p.spanFrom(start)}
}

// parseDangerStmt parses a `danger!` block, accepted with either block style
// (spec §4.D: "danger! blocks accept either brace- or indent-style bodies").
func (p *Parser) parseDangerStmt() ast.Stmt {
	start := p.herePos()
	p.advance() // 'danger!' (lexed as KwDanger with trailing '!' folded into the keyword text)
	body := p.parseBody()
	return &ast.DangerStmt{Body: body, Span: p.spanFrom(start)}
}
