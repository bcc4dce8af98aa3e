package parser

import (
	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/diag"
	"github.com/razorforge-lang/rfc/lexer"
	"github.com/razorforge-lang/rfc/token"
)

// parseExpression is the Pratt-style entry point (spec §4.D precedence
// ladder, lowest to highest): range, logical-or, logical-and, logical-not,
// comparison (chained), bitwise-or, bitwise-xor, bitwise-and, shifts,
// additive, multiplicative (incl. overflow variants), unary, power,
// postfix, primary.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseRange()
}

// parseRange lowers `a to b [by s]` into a RangeExpr (spec §4.D).
func (p *Parser) parseRange() ast.Expr {
	start := p.herePos()
	left := p.parseLogicalOr()
	if !p.check(token.KwTo) {
		return left
	}
	p.advance()
	end := p.parseLogicalOr()
	var step ast.Expr
	if p.match(token.KwBy) {
		step = p.parseLogicalOr()
	}
	return &ast.RangeExpr{Start: left, End: end, Step: step, Span: p.spanFrom(start)}
}

func (p *Parser) parseLogicalOr() ast.Expr {
	start := p.herePos()
	left := p.parseLogicalAnd()
	for p.check(token.LogicalOr) {
		p.advance()
		right := p.parseLogicalAnd()
		left = &ast.BinaryExpr{Op: token.LogicalOr, Left: left, Right: right, Span: p.spanFrom(start)}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	start := p.herePos()
	left := p.parseLogicalNot()
	for p.check(token.LogicalAnd) {
		p.advance()
		right := p.parseLogicalNot()
		left = &ast.BinaryExpr{Op: token.LogicalAnd, Left: left, Right: right, Span: p.spanFrom(start)}
	}
	return left
}

func (p *Parser) parseLogicalNot() ast.Expr {
	if p.check(token.LogicalNot) {
		start := p.herePos()
		p.advance()
		operand := p.parseLogicalNot()
		return &ast.UnaryExpr{Op: token.LogicalNot, Operand: operand, Span: p.spanFrom(start)}
	}
	return p.parseComparison()
}

var comparisonOps = map[token.Kind]bool{
	token.Lt: true, token.LtEq: true, token.Gt: true, token.GtEq: true,
	token.Eq: true, token.NotEq: true,
}

// parseComparison handles spec §4.D's "chained" comparisons: `a < b <= c`
// lowers to `a < b and b <= c`.
func (p *Parser) parseComparison() ast.Expr {
	start := p.herePos()
	left := p.parseBitwiseOr()
	chainOperand := left
	var result ast.Expr
	for comparisonOps[p.cur().Kind] {
		op := p.advance().Kind
		right := p.parseBitwiseOr()
		cmp := &ast.BinaryExpr{Op: op, Left: chainOperand, Right: right, Span: p.spanFrom(start)}
		if result == nil {
			result = cmp
		} else {
			result = &ast.BinaryExpr{Op: token.LogicalAnd, Left: result, Right: cmp, Span: p.spanFrom(start)}
		}
		chainOperand = right
	}
	if result == nil {
		return left
	}
	return result
}

func (p *Parser) parseBitwiseOr() ast.Expr {
	start := p.herePos()
	left := p.parseBitwiseXor()
	for p.check(token.Pipe) {
		p.advance()
		right := p.parseBitwiseXor()
		left = &ast.BinaryExpr{Op: token.Pipe, Left: left, Right: right, Span: p.spanFrom(start)}
	}
	return left
}

func (p *Parser) parseBitwiseXor() ast.Expr {
	start := p.herePos()
	left := p.parseBitwiseAnd()
	for p.check(token.Caret) {
		p.advance()
		right := p.parseBitwiseAnd()
		left = &ast.BinaryExpr{Op: token.Caret, Left: left, Right: right, Span: p.spanFrom(start)}
	}
	return left
}

func (p *Parser) parseBitwiseAnd() ast.Expr {
	start := p.herePos()
	left := p.parseShift()
	for p.check(token.Amp) {
		p.advance()
		right := p.parseShift()
		left = &ast.BinaryExpr{Op: token.Amp, Left: left, Right: right, Span: p.spanFrom(start)}
	}
	return left
}

func (p *Parser) parseShift() ast.Expr {
	start := p.herePos()
	left := p.parseAdditive()
	for p.check(token.Shl) || p.check(token.Shr) {
		op := p.advance().Kind
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Span: p.spanFrom(start)}
	}
	return left
}

var additiveOps = map[token.Kind]bool{
	token.Plus: true, token.PlusWrap: true, token.PlusSat: true, token.PlusUnchecked: true, token.PlusFallible: true,
	token.Minus: true, token.MinusWrap: true, token.MinusSat: true, token.MinusUnchecked: true, token.MinusFallible: true,
}

func (p *Parser) parseAdditive() ast.Expr {
	start := p.herePos()
	left := p.parseMultiplicative()
	for additiveOps[p.cur().Kind] {
		op := p.advance().Kind
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Span: p.spanFrom(start)}
	}
	return left
}

var multiplicativeOps = map[token.Kind]bool{
	token.Star: true, token.StarWrap: true, token.StarSat: true, token.StarUnchecked: true, token.StarFallible: true,
	token.Slash: true,
	token.SlashSlash: true, token.SlashSlashWrap: true, token.SlashSlashSat: true,
	token.SlashSlashUnchecked: true, token.SlashSlashFallible: true,
	token.Percent: true,
}

func (p *Parser) parseMultiplicative() ast.Expr {
	start := p.herePos()
	left := p.parseUnary()
	for multiplicativeOps[p.cur().Kind] {
		op := p.advance().Kind
		right := p.parseUnary()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Span: p.spanFrom(start)}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.check(token.Minus) || p.check(token.Tilde) {
		start := p.herePos()
		op := p.advance().Kind
		operand := p.parseUnary()
		return &ast.UnaryExpr{Op: op, Operand: operand, Span: p.spanFrom(start)}
	}
	return p.parsePower()
}

// parsePower is right-associative and binds tighter than unary but looser
// than postfix (spec §4.D precedence ladder): `-a ** b` is `-(a ** b)`, and
// `2 ** -2` is legal (the right operand recurses through parseUnary).
func (p *Parser) parsePower() ast.Expr {
	start := p.herePos()
	left := p.parsePostfix()
	if p.check(token.Power) {
		p.advance()
		right := p.parseUnary()
		return &ast.BinaryExpr{Op: token.Power, Left: left, Right: right, Span: p.spanFrom(start)}
	}
	return left
}

func (p *Parser) parsePostfix() ast.Expr {
	start := p.herePos()
	left := p.parsePrimary()
	for {
		switch {
		case p.check(token.Dot):
			p.advance()
			nameTok, _ := p.expect(token.Identifier, "member name")
			if p.check(token.Lt) && p.looksLikeGenericCall() {
				typeArgs := p.parseGenericArgsAngle()
				method := nameTok.Text
				if p.match(token.Bang) {
					method += "!"
				}
				p.expect(token.LeftParen, "'('")
				args := p.parseArgList()
				p.expect(token.RightParen, "')'")
				left = &ast.GenericMethodCallExpr{Receiver: left, Method: method, TypeArgs: typeArgs, Args: args, Span: p.spanFrom(start)}
			} else if p.check(token.LeftParen) {
				p.advance()
				args := p.parseArgList()
				p.expect(token.RightParen, "')'")
				left = &ast.MethodCallExpr{Receiver: left, Method: nameTok.Text, Args: args, Span: p.spanFrom(start)}
			} else {
				left = &ast.FieldAccessExpr{X: left, Field: nameTok.Text, Span: p.spanFrom(start)}
			}
		case p.check(token.LeftBracket):
			p.advance()
			idx := p.parseExpression()
			p.expect(token.RightBracket, "']'")
			left = &ast.IndexExpr{X: left, Index: idx, Span: p.spanFrom(start)}
		case p.check(token.LeftParen):
			p.advance()
			args := p.parseArgList()
			p.expect(token.RightParen, "')'")
			left = &ast.CallExpr{Callee: left, Args: args, Span: p.spanFrom(start)}
		case p.check(token.Question):
			p.advance()
			left = &ast.UnaryExpr{Op: token.Question, Operand: left, Span: p.spanFrom(start)}
		default:
			return left
		}
	}
}

func (p *Parser) parseArgList() []ast.Expr {
	var args []ast.Expr
	for !p.check(token.RightParen) && !p.atEnd() {
		args = append(args, p.parseExpression())
		if !p.match(token.Comma) {
			break
		}
	}
	return args
}

// looksLikeGenericCall implements spec §4.D's disambiguation rule: "commit
// to the generic form only when a balanced `<…>` is followed by `(` or
// `!`." It scans tokens without mutating parser state, bailing out on any
// token that cannot appear inside a type-argument list.
func (p *Parser) looksLikeGenericCall() bool {
	depth := 0
	for i := p.pos; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
			if depth == 0 {
				return followsGenericClose(p.toks, i+1)
			}
		case token.Shr:
			depth -= 2
			if depth <= 0 {
				return followsGenericClose(p.toks, i+1)
			}
		case token.Comma, token.TypeIdentifier, token.Identifier, token.LeftBracket, token.RightBracket:
			// allowed inside a type-argument list
		default:
			return false
		}
	}
	return false
}

func followsGenericClose(toks []token.Token, i int) bool {
	if i >= len(toks) {
		return false
	}
	return toks[i].Kind == token.LeftParen || toks[i].Kind == token.Bang
}

// parseGenericArgsAngle parses `<T, U, ...>` once looksLikeGenericCall has
// already committed to this reading.
func (p *Parser) parseGenericArgsAngle() []ast.TypeExpr {
	p.expect(token.Lt, "'<'")
	var args []ast.TypeExpr
	for !p.check(token.Gt) && !p.atEnd() {
		args = append(args, p.parseTypeExpr())
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.Gt, "'>'")
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	start := p.herePos()

	switch p.cur().Kind {
	case token.IntLiteral, token.FloatLiteral, token.DecimalLiteral, token.MemoryLiteral,
		token.DurationLiteral, token.TextLiteral, token.LetterLiteral, token.KwTrue,
		token.KwFalse, token.KwNone:
		return p.parseLiteralToken()

	case token.FormatTextLiteral:
		return p.parseFormatString()

	case token.Identifier, token.TypeIdentifier:
		nameTok := p.advance()
		if p.check(token.Lt) && p.looksLikeGenericCall() {
			typeArgs := p.parseGenericArgsAngle()
			method := nameTok.Text
			if p.match(token.Bang) {
				method += "!"
			}
			p.expect(token.LeftParen, "'('")
			args := p.parseArgList()
			p.expect(token.RightParen, "')'")
			return &ast.GenericMethodCallExpr{Method: method, TypeArgs: typeArgs, Args: args, Span: p.spanFrom(start)}
		}
		return &ast.IdentExpr{Name: nameTok.Text, Span: nameTok.Span}

	case token.KwVerify, token.KwBreach, token.KwStop:
		nameTok := p.advance()
		return &ast.IdentExpr{Name: nameTok.Text, Span: nameTok.Span}

	case token.KwIf:
		return p.parseConditionalExpr()

	case token.Pipe:
		return p.parseLambdaExpr()

	case token.LeftParen:
		p.advance()
		e := p.parseExpression()
		p.expect(token.RightParen, "')'")
		return e

	default:
		p.errorf("EP030", p.cur().Span, "expected an expression, found %s", p.cur().Kind)
		tok := p.advance()
		return &ast.LiteralExpr{Tok: tok, Span: tok.Span}
	}
}

// parseConditionalExpr parses the expression-level `if A then B else C`
// form (spec §4.D), distinct from the statement-level IfStmt.
func (p *Parser) parseConditionalExpr() ast.Expr {
	start := p.herePos()
	p.advance() // 'if'
	cond := p.parseExpression()
	p.expect(token.KwThen, "'then'")
	thenE := p.parseExpression()
	p.expect(token.KwElse, "'else'")
	elseE := p.parseExpression()
	return &ast.ConditionalExpr{Cond: cond, Then: thenE, Else: elseE, Span: p.spanFrom(start)}
}

// parseLambdaExpr parses `|params| => body`.
func (p *Parser) parseLambdaExpr() ast.Expr {
	start := p.herePos()
	p.advance() // '|'
	var params []ast.Param
	for !p.check(token.Pipe) && !p.atEnd() {
		pstart := p.herePos()
		nameTok, _ := p.expect(token.Identifier, "parameter name")
		var ty ast.TypeExpr
		if p.match(token.Colon) {
			ty = p.parseTypeExpr()
		}
		params = append(params, ast.Param{Name: nameTok.Text, Type: ty, Span: p.spanFrom(pstart)})
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.Pipe, "'|'")
	p.expect(token.FatArrow, "'=>'")
	body := p.parseExpression()
	return &ast.LambdaExpr{Params: params, Body: body, Span: p.spanFrom(start)}
}

// parseFormatString re-lexes and re-parses each `{expr}` hole the lexer
// captured as raw FormatPart text (spec §4.B: "interpolation spans captured
// as sub-tokens"), producing fully resolved sub-expressions.
func (p *Parser) parseFormatString() ast.Expr {
	tok := p.advance()
	var parts []ast.FormatStringPart
	for _, part := range tok.FormatParts {
		if !part.IsExpr {
			parts = append(parts, ast.FormatStringPart{Chunk: part.Text})
			continue
		}
		sub := &diag.Bag{}
		lx := lexer.New(p.file, part.Text, p.dialect, sub)
		toks := lx.Tokenize()
		subParser := New(p.file, toks, p.dialect, sub)
		expr := subParser.parseExpression()
		p.diags.Merge(sub)
		parts = append(parts, ast.FormatStringPart{Value: expr})
	}
	return &ast.FormatStringExpr{Parts: parts, Span: tok.Span}
}
