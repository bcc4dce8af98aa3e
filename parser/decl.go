package parser

import (
	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/token"
)

func (p *Parser) parseDecl() ast.Decl {
	switch p.cur().Kind {
	case token.KwFunction:
		return p.parseFunctionDecl(false)
	case token.KwExternal:
		return p.parseExternalFunctionDecl()
	case token.KwRecord:
		return p.parseRecordDecl()
	case token.KwEntity:
		return p.parseEntityDecl()
	case token.KwVariant:
		return p.parseVariantDecl()
	case token.KwProtocol:
		return p.parseProtocolDecl()
	case token.KwImport:
		return p.parseImportDecl()
	case token.KwRedefine:
		return p.parseRedefineDecl()
	case token.KwLet, token.KwVar:
		return p.parseVariableDecl()
	default:
		p.errorf("EP010", p.cur().Span, "expected a declaration, found %s", p.cur().Kind)
		p.advance()
		p.synchronize()
		return nil
	}
}

// parseGenericParams parses an optional `<T, U>` template parameter list.
func (p *Parser) parseGenericParams() []ast.GenericParam {
	if !p.check(token.Lt) {
		return nil
	}
	p.advance()
	var params []ast.GenericParam
	for !p.check(token.Gt) && !p.atEnd() {
		tok, _ := p.expect(token.TypeIdentifier, "generic parameter name")
		params = append(params, ast.GenericParam{Name: tok.Text, Span: tok.Span})
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.Gt, "'>'")
	return params
}

func (p *Parser) parseParamList() []ast.Param {
	p.expect(token.LeftParen, "'('")
	var params []ast.Param
	for !p.check(token.RightParen) && !p.atEnd() {
		start := p.herePos()
		nameTok, _ := p.expect(token.Identifier, "parameter name")
		p.expect(token.Colon, "':'")
		ty := p.parseTypeExpr()
		params = append(params, ast.Param{Name: nameTok.Text, Type: ty, Span: p.spanFrom(start)})
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RightParen, "')'")
	return params
}

// failureModeForReturnType detects the "can fail" markers spec §4.F names: a `throws`
// annotation isn't lexed as its own keyword in this core (no dedicated
// token), so detection here covers the two structural markers the grammar
// does expose directly: a return type spelled `Result<T>`/`Option<T>`.
func failureModeForReturnType(ret ast.TypeExpr) ast.FailureMode {
	named, ok := ret.(*ast.NamedType)
	if !ok {
		return ast.NeverFails
	}
	switch named.Name {
	case "Result":
		return ast.ReturnsResultSum
	case "Option":
		return ast.ReturnsAbsent
	default:
		return ast.NeverFails
	}
}

func (p *Parser) parseFunctionDecl(abstractAllowed bool) ast.Decl {
	start := p.herePos()
	p.advance() // 'routine'/'fn'/'def'
	nameTok, _ := p.expect(token.Identifier, "function name")
	generics := p.parseGenericParams()
	params := p.parseParamList()
	var ret ast.TypeExpr
	if p.match(token.Arrow) {
		ret = p.parseTypeExpr()
	}

	decl := &ast.FunctionDecl{
		Name:       nameTok.Text,
		Generics:   generics,
		Params:     params,
		ReturnType: ret,
		Failure:    failureModeForReturnType(ret),
	}

	if abstractAllowed && (p.check(token.Newline) || p.check(token.Dedent) || p.atEnd()) {
		decl.Abstract = true
		decl.Span = p.spanFrom(start)
		return decl
	}

	decl.Body = p.parseBody()
	decl.Span = p.spanFrom(start)
	return decl
}

func (p *Parser) parseExternalFunctionDecl() ast.Decl {
	start := p.herePos()
	p.advance() // 'external'
	conv := ""
	if p.check(token.Identifier) && p.peekN(1).Kind == token.KwFunction {
		conv = p.advance().Text
	}
	p.expect(token.KwFunction, "'routine'")
	nameTok, _ := p.expect(token.Identifier, "function name")
	params := p.parseParamList()
	var ret ast.TypeExpr
	if p.match(token.Arrow) {
		ret = p.parseTypeExpr()
	}
	return &ast.ExternalFunctionDecl{
		Name:              nameTok.Text,
		Params:            params,
		ReturnType:        ret,
		CallingConvention: conv,
		Span:              p.spanFrom(start),
	}
}

func (p *Parser) parseFieldList(terminator token.Kind) []ast.Field {
	var fields []ast.Field
	for !p.check(terminator) && !p.atEnd() {
		p.skipNewlines()
		if p.check(terminator) {
			break
		}
		start := p.herePos()
		nameTok, _ := p.expect(token.Identifier, "field name")
		p.expect(token.Colon, "':'")
		ty := p.parseTypeExpr()
		fields = append(fields, ast.Field{Name: nameTok.Text, Type: ty, Span: p.spanFrom(start)})
		if !p.match(token.Comma) {
			p.skipNewlines()
		}
	}
	return fields
}

func (p *Parser) parseRecordDecl() ast.Decl {
	start := p.herePos()
	p.advance() // 'record'
	nameTok, _ := p.expect(token.TypeIdentifier, "record name")
	generics := p.parseGenericParams()
	var fields []ast.Field
	if p.check(token.LeftBrace) {
		p.advance()
		fields = p.parseFieldList(token.RightBrace)
		p.expect(token.RightBrace, "'}'")
	} else if p.match(token.Colon) {
		p.skipNewlines()
		p.expect(token.Indent, "indented field list")
		fields = p.parseFieldList(token.Dedent)
		p.match(token.Dedent)
	}
	return &ast.RecordDecl{Name: nameTok.Text, Generics: generics, Fields: fields, Span: p.spanFrom(start)}
}

func (p *Parser) parseEntityDecl() ast.Decl {
	start := p.herePos()
	p.advance() // 'entity'
	nameTok, _ := p.expect(token.TypeIdentifier, "entity name")
	generics := p.parseGenericParams()
	extends := ""
	if p.match(token.Colon) && p.check(token.TypeIdentifier) && p.peekN(1).Kind != token.LeftBrace &&
		p.peekN(1).Kind != token.Newline && p.peekN(1).Kind != token.Indent {
		extends = p.advance().Text
	}

	var fields []ast.Field
	var methods []*ast.FunctionDecl
	parseMembers := func(terminator token.Kind) {
		for !p.check(terminator) && !p.atEnd() {
			p.skipNewlines()
			if p.check(terminator) {
				break
			}
			if p.check(token.KwFunction) {
				if fd, ok := p.parseFunctionDecl(true).(*ast.FunctionDecl); ok {
					methods = append(methods, fd)
				}
				continue
			}
			fstart := p.herePos()
			nameTok, _ := p.expect(token.Identifier, "field name")
			p.expect(token.Colon, "':'")
			ty := p.parseTypeExpr()
			fields = append(fields, ast.Field{Name: nameTok.Text, Type: ty, Span: p.spanFrom(fstart)})
			if !p.match(token.Comma) {
				p.skipNewlines()
			}
		}
	}
	if p.check(token.LeftBrace) {
		p.advance()
		parseMembers(token.RightBrace)
		p.expect(token.RightBrace, "'}'")
	} else {
		p.skipNewlines()
		p.expect(token.Indent, "indented entity body")
		parseMembers(token.Dedent)
		p.match(token.Dedent)
	}
	return &ast.EntityDecl{Name: nameTok.Text, Generics: generics, Extends: extends, Fields: fields, Methods: methods, Span: p.spanFrom(start)}
}

func (p *Parser) parseVariantDecl() ast.Decl {
	start := p.herePos()
	p.advance() // 'variant'
	nameTok, _ := p.expect(token.TypeIdentifier, "variant name")
	generics := p.parseGenericParams()

	parseCase := func() ast.VariantCase {
		cstart := p.herePos()
		caseTok, _ := p.expect(token.TypeIdentifier, "variant case name")
		var fields []ast.Field
		if p.match(token.LeftParen) {
			fields = p.parseFieldList(token.RightParen)
			p.expect(token.RightParen, "')'")
		}
		return ast.VariantCase{Name: caseTok.Text, Fields: fields, Span: p.spanFrom(cstart)}
	}

	var cases []ast.VariantCase
	collect := func(terminator token.Kind) {
		for !p.check(terminator) && !p.atEnd() {
			p.skipNewlines()
			if p.check(terminator) {
				break
			}
			cases = append(cases, parseCase())
			if !p.match(token.Comma) {
				p.skipNewlines()
			}
		}
	}
	if p.check(token.LeftBrace) {
		p.advance()
		collect(token.RightBrace)
		p.expect(token.RightBrace, "'}'")
	} else {
		p.expect(token.Colon, "':'")
		p.skipNewlines()
		p.expect(token.Indent, "indented variant body")
		collect(token.Dedent)
		p.match(token.Dedent)
	}
	return &ast.VariantDecl{Name: nameTok.Text, Generics: generics, Cases: cases, Span: p.spanFrom(start)}
}

func (p *Parser) parseProtocolDecl() ast.Decl {
	start := p.herePos()
	p.advance() // 'protocol'
	nameTok, _ := p.expect(token.TypeIdentifier, "protocol name")
	generics := p.parseGenericParams()

	parseMethod := func() ast.ProtocolMethod {
		mstart := p.herePos()
		p.expect(token.KwFunction, "'routine'")
		nameTok, _ := p.expect(token.Identifier, "method name")
		params := p.parseParamList()
		var ret ast.TypeExpr
		if p.match(token.Arrow) {
			ret = p.parseTypeExpr()
		}
		return ast.ProtocolMethod{Name: nameTok.Text, Params: params, ReturnType: ret, Span: p.spanFrom(mstart)}
	}

	var methods []ast.ProtocolMethod
	collect := func(terminator token.Kind) {
		for !p.check(terminator) && !p.atEnd() {
			p.skipNewlines()
			if p.check(terminator) {
				break
			}
			methods = append(methods, parseMethod())
		}
	}
	if p.check(token.LeftBrace) {
		p.advance()
		collect(token.RightBrace)
		p.expect(token.RightBrace, "'}'")
	} else {
		p.expect(token.Colon, "':'")
		p.skipNewlines()
		p.expect(token.Indent, "indented protocol body")
		collect(token.Dedent)
		p.match(token.Dedent)
	}
	return &ast.ProtocolDecl{Name: nameTok.Text, Generics: generics, Methods: methods, Span: p.spanFrom(start)}
}

func (p *Parser) parseImportDecl() ast.Decl {
	start := p.herePos()
	p.advance() // 'import'
	var path string
	for {
		tok, _ := p.expect(token.Identifier, "module path segment")
		path += tok.Text
		if !p.match(token.Dot) {
			break
		}
		path += "."
	}
	return &ast.ImportDecl{Path: path, Span: p.spanFrom(start)}
}

func (p *Parser) parseRedefineDecl() ast.Decl {
	start := p.herePos()
	p.advance() // 'redefine'
	nameTok, _ := p.expect(token.TypeIdentifier, "redefined name")
	p.expect(token.Assign, "'='")
	target := p.parseTypeExpr()
	return &ast.RedefineDecl{Name: nameTok.Text, Target: target, Span: p.spanFrom(start)}
}

func (p *Parser) parseVariableDecl() ast.Decl {
	start := p.herePos()
	kindTok := p.advance() // 'let' or 'var'
	nameTok, _ := p.expect(token.Identifier, "variable name")
	var ty ast.TypeExpr
	if p.match(token.Colon) {
		ty = p.parseTypeExpr()
	}
	var init ast.Expr
	if p.match(token.Assign) {
		init = p.parseExpression()
	}
	return &ast.VariableDecl{
		Name:    nameTok.Text,
		Mutable: kindTok.Kind == token.KwVar,
		Kind:    kindTok.Kind,
		Type:    ty,
		Init:    init,
		Span:    p.spanFrom(start),
	}
}
