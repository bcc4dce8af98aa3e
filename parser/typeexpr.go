package parser

import (
	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/span"
	"github.com/razorforge-lang/rfc/token"
)

// parseTypeExpr parses a type reference: named (with optional generic
// arguments), pointer/address forms, or slice forms (spec §3).
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	start := p.herePos()

	if p.match(token.Star) {
		elem := p.parseTypeExpr()
		return &ast.PointerType{Kind: ast.PointerManaged, Elem: elem, Span: p.spanFrom(start)}
	}

	nameTok, ok := p.expect(token.TypeIdentifier, "type name")
	if !ok {
		return &ast.NamedType{Name: "<error>", Span: p.spanFrom(start)}
	}

	var args []ast.TypeExpr
	if p.check(token.Lt) {
		p.advance()
		for !p.check(token.Gt) && !p.atEnd() {
			args = append(args, p.parseTypeExpr())
			if !p.match(token.Comma) {
				break
			}
		}
		p.expect(token.Gt, "'>'")
	}

	switch nameTok.Text {
	case "DynamicSlice":
		return &ast.SliceType{Kind: ast.DynamicSlice, Elem: sliceElem(args, nameTok.Span), Span: p.spanFrom(start)}
	case "TemporarySlice":
		return &ast.SliceType{Kind: ast.TemporarySlice, Elem: sliceElem(args, nameTok.Span), Span: p.spanFrom(start)}
	default:
		return &ast.NamedType{Name: nameTok.Text, Args: args, Span: p.spanFrom(start)}
	}
}

// sliceElem returns the slice's sole generic argument, or an error-marker
// NamedType if the source omitted it (diagnosed separately by sema pass 3,
// spec §4.E.3: "generic templates without arguments ... produce a specific
// diagnostic").
func sliceElem(args []ast.TypeExpr, at span.Span) ast.TypeExpr {
	if len(args) == 1 {
		return args[0]
	}
	return &ast.NamedType{Name: "<missing>", Span: at}
}
