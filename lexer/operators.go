package lexer

import (
	"github.com/razorforge-lang/rfc/span"
	"github.com/razorforge-lang/rfc/token"
)

// isOverflowSuffixByte reports whether b disambiguates one of the four
// overflow-behavior forms (spec §4.B: "the second character of
// +%/+^/+!/+? ... disambiguates wrapping, saturating, unchecked, and
// checked semantics").
func isOverflowSuffixByte(b byte) bool {
	return b == '%' || b == '^' || b == '!' || b == '?'
}

// scanOperatorOrPunct scans one operator or punctuation token starting at the
// current position, preferring the longest match (spec §4.B full operator
// set, including the bracket-aware indentation suppression wired in
// bracketDepth below).
func (l *Lexer) scanOperatorOrPunct(start span.Pos) token.Token {
	ch := l.advance()
	mk := func(k token.Kind) token.Token {
		return token.Token{Kind: k, Text: l.src[start.Offset:l.pos], Span: l.span(start)}
	}

	switch ch {
	case '(':
		l.bracketDepth++
		return mk(token.LeftParen)
	case ')':
		if l.bracketDepth > 0 {
			l.bracketDepth--
		}
		return mk(token.RightParen)
	case '[':
		l.bracketDepth++
		return mk(token.LeftBracket)
	case ']':
		if l.bracketDepth > 0 {
			l.bracketDepth--
		}
		return mk(token.RightBracket)
	case '{':
		l.bracketDepth++
		return mk(token.LeftBrace)
	case '}':
		if l.bracketDepth > 0 {
			l.bracketDepth--
		}
		return mk(token.RightBrace)
	case ',':
		return mk(token.Comma)
	case ':':
		return mk(token.Colon)
	case ';':
		return mk(token.Semicolon)
	case '@':
		return mk(token.At)
	case '~':
		return mk(token.Tilde)

	case '.':
		if l.peek() == '.' {
			l.advance()
			return mk(token.DotDot)
		}
		return mk(token.Dot)

	case '?':
		return mk(token.Question)

	case '-':
		if l.peek() == '>' {
			l.advance()
			return mk(token.Arrow)
		}
		if l.peek() == '=' {
			l.advance()
			return mk(token.MinusAssign)
		}
		if isOverflowSuffixByte(l.peek()) {
			b := l.advance()
			if k, ok := token.OverflowForm(token.Minus, b); ok {
				return mk(k)
			}
		}
		return mk(token.Minus)

	case '=':
		if l.peek() == '=' {
			l.advance()
			return mk(token.Eq)
		}
		if l.peek() == '>' {
			l.advance()
			return mk(token.FatArrow)
		}
		return mk(token.Assign)

	case '+':
		if l.peek() == '=' {
			l.advance()
			return mk(token.PlusAssign)
		}
		if isOverflowSuffixByte(l.peek()) {
			b := l.advance()
			if k, ok := token.OverflowForm(token.Plus, b); ok {
				return mk(k)
			}
		}
		return mk(token.Plus)

	case '*':
		if l.peek() == '*' {
			l.advance()
			return mk(token.Power)
		}
		if l.peek() == '=' {
			l.advance()
			return mk(token.StarAssign)
		}
		if isOverflowSuffixByte(l.peek()) {
			b := l.advance()
			if k, ok := token.OverflowForm(token.Star, b); ok {
				return mk(k)
			}
		}
		return mk(token.Star)

	case '/':
		if l.peek() == '/' {
			l.advance()
			if isOverflowSuffixByte(l.peek()) {
				b := l.advance()
				if k, ok := token.OverflowForm(token.SlashSlash, b); ok {
					return mk(k)
				}
			}
			return mk(token.SlashSlash)
		}
		if l.peek() == '=' {
			l.advance()
			return mk(token.SlashAssign)
		}
		return mk(token.Slash)

	case '%':
		if l.peek() == '=' {
			l.advance()
			return mk(token.PercentAssign)
		}
		return mk(token.Percent)

	case '&':
		return mk(token.Amp)
	case '|':
		return mk(token.Pipe)
	case '^':
		return mk(token.Caret)

	case '<':
		if l.peek() == '<' {
			l.advance()
			return mk(token.Shl)
		}
		if l.peek() == '=' {
			l.advance()
			return mk(token.LtEq)
		}
		return mk(token.Lt)

	case '>':
		if l.peek() == '>' {
			l.advance()
			return mk(token.Shr)
		}
		if l.peek() == '=' {
			l.advance()
			return mk(token.GtEq)
		}
		return mk(token.Gt)

	case '!':
		if l.peek() == '=' {
			l.advance()
			return mk(token.NotEq)
		}
		return mk(token.Bang)

	default:
		l.errorf("EL006", l.span(start), "unexpected character %q", string(ch))
		return mk(token.Invalid)
	}
}
