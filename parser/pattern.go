package parser

import (
	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/token"
)

// parsePattern parses one `when`-arm pattern (spec §3: literal, wildcard,
// binding, type-tag, tuple, record-destructure).
func (p *Parser) parsePattern() ast.Pattern {
	start := p.herePos()

	switch p.cur().Kind {
	case token.Underscore:
		p.advance()
		return &ast.WildcardPattern{Span: p.spanFrom(start)}

	case token.KwIs:
		p.advance()
		ty := p.parseTypeExpr()
		name := ""
		if p.check(token.Identifier) {
			name = p.advance().Text
		}
		return &ast.TypeTagPattern{Type: ty, Name: name, Span: p.spanFrom(start)}

	case token.LeftParen:
		p.advance()
		var elems []ast.Pattern
		for !p.check(token.RightParen) && !p.atEnd() {
			elems = append(elems, p.parsePattern())
			if !p.match(token.Comma) {
				break
			}
		}
		p.expect(token.RightParen, "')'")
		return &ast.TuplePattern{Elems: elems, Span: p.spanFrom(start)}

	case token.IntLiteral, token.FloatLiteral, token.DecimalLiteral, token.TextLiteral,
		token.LetterLiteral, token.KwTrue, token.KwFalse, token.KwNone:
		lit := p.parseLiteralToken()
		return &ast.LiteralPattern{Value: lit, Span: p.spanFrom(start)}

	case token.TypeIdentifier:
		// Record destructure: `TypeName(field: pat, ...)`. A bare
		// TypeIdentifier with no following '(' is a unit-variant literal
		// pattern instead (reuses the same name-binding shape).
		typeTok := p.advance()
		if p.check(token.LeftParen) {
			p.advance()
			var fields []ast.RecordFieldPattern
			for !p.check(token.RightParen) && !p.atEnd() {
				fnameTok, _ := p.expect(token.Identifier, "field name")
				p.expect(token.Colon, "':'")
				fields = append(fields, ast.RecordFieldPattern{Field: fnameTok.Text, Binding: p.parsePattern()})
				if !p.match(token.Comma) {
					break
				}
			}
			p.expect(token.RightParen, "')'")
			return &ast.RecordDestructurePattern{TypeName: typeTok.Text, Fields: fields, Span: p.spanFrom(start)}
		}
		return &ast.TypeTagPattern{Type: &ast.NamedType{Name: typeTok.Text, Span: typeTok.Span}, Span: p.spanFrom(start)}

	case token.Identifier:
		nameTok := p.advance()
		return &ast.BindingPattern{Name: nameTok.Text, Span: p.spanFrom(start)}

	default:
		p.errorf("EP020", p.cur().Span, "expected a pattern, found %s", p.cur().Kind)
		return &ast.WildcardPattern{Span: p.spanFrom(start)}
	}
}

// parseLiteralToken wraps the current literal/boolean/none token as a
// LiteralExpr and advances past it.
func (p *Parser) parseLiteralToken() ast.Expr {
	tok := p.advance()
	return &ast.LiteralExpr{Tok: tok, Span: tok.Span}
}
