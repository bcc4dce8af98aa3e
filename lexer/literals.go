package lexer

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/razorforge-lang/rfc/diag"
	"github.com/razorforge-lang/rfc/span"
	"github.com/razorforge-lang/rfc/token"
)

// --- numeric literals ---

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isOctalDigit(ch byte) bool {
	return ch >= '0' && ch <= '7'
}

func isBinaryDigit(ch byte) bool {
	return ch == '0' || ch == '1'
}

// scanNumberLike scans decimal/hex/octal/binary integer literals and decimal
// fraction literals, then resolves a trailing suffix against the numeric
// type, memory-size, or duration suffix tables (spec §4.B).
func (l *Lexer) scanNumberLike(start span.Pos) token.Token {
	var digits strings.Builder
	base := 10

	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.advance()
		l.advance()
		base = 16
		l.consumeDigits(&digits, isHexDigit)
	} else if l.peek() == '0' && (l.peekN(1) == 'o' || l.peekN(1) == 'O') {
		l.advance()
		l.advance()
		base = 8
		l.consumeDigits(&digits, isOctalDigit)
	} else if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		l.advance()
		l.advance()
		base = 2
		l.consumeDigits(&digits, isBinaryDigit)
	} else {
		l.consumeDigits(&digits, isDigit)
	}

	isFloat := false
	if base == 10 && l.peek() == '.' && isDigit(l.peekN(1)) {
		isFloat = true
		digits.WriteByte(l.advance()) // '.'
		l.consumeDigits(&digits, isDigit)
	}
	if base == 10 && (l.peek() == 'e' || l.peek() == 'E') {
		// only treat as exponent if followed by digits or a signed digit
		if isDigit(l.peekN(1)) || ((l.peekN(1) == '+' || l.peekN(1) == '-') && isDigit(l.peekN(2))) {
			isFloat = true
			digits.WriteByte(l.advance())
			if l.peek() == '+' || l.peek() == '-' {
				digits.WriteByte(l.advance())
			}
			l.consumeDigits(&digits, isDigit)
		}
	}

	suffix := l.scanTrailingSuffix()
	text := l.src[start.Offset:l.pos]
	sp := l.span(start)

	if suffix != "" {
		if nt, ok := token.LookupNumSuffix(suffix); ok {
			return l.finishNumericSuffixed(text, sp, digits.String(), base, isFloat, nt)
		}
		if mu, ok := token.LookupMemUnit(suffix); ok {
			return l.finishMemory(text, sp, digits.String(), mu)
		}
		if du, ok := token.LookupDurationUnit(suffix); ok {
			return l.finishDuration(text, sp, digits.String(), du)
		}
		l.errorf("EL004", sp, "unknown numeric literal suffix %q", suffix)
		return token.Token{Kind: token.IntLiteral, Text: text, Span: sp}
	}

	if isFloat {
		f, err := strconv.ParseFloat(digits.String(), 64)
		if err != nil {
			l.errorf("EL002", sp, "malformed float literal %q", text)
		}
		return token.Token{Kind: token.FloatLiteral, Text: text, Span: sp, NumType: token.Float64, FloatValue: f}
	}

	v, err := strconv.ParseInt(digits.String(), base, 64)
	if err != nil {
		// Might be a valid unsigned value that overflows int64; fall back.
		uv, uerr := strconv.ParseUint(digits.String(), base, 64)
		if uerr != nil {
			l.errorf("EL002", sp, "malformed integer literal %q", text)
			return token.Token{Kind: token.IntLiteral, Text: text, Span: sp, NumType: token.Signed64}
		}
		v = int64(uv)
	}
	return token.Token{Kind: token.IntLiteral, Text: text, Span: sp, NumType: token.Signed64, IntValue: v}
}

func (l *Lexer) consumeDigits(b *strings.Builder, pred func(byte) bool) {
	for !l.eof() && (pred(l.peek()) || l.peek() == '_') {
		if l.peek() != '_' {
			b.WriteByte(l.peek())
		}
		l.advance()
	}
}

// scanTrailingSuffix greedily consumes the identifier-shaped run that directly
// follows the number when it starts like an identifier (e.g. "s32", "kib",
// "ms"). An identifier written with no space after the number is consumed
// too; the caller looks the whole run up as a numeric, memory or duration
// suffix.
func (l *Lexer) scanTrailingSuffix() string {
	if !isIdentStart(l.peek()) {
		return ""
	}
	var b strings.Builder
	for !l.eof() && isIdentCont(l.peek()) {
		b.WriteByte(l.advance())
	}
	return b.String()
}

func (l *Lexer) finishNumericSuffixed(text string, sp span.Span, digits string, base int, isFloat bool, nt token.NumType) token.Token {
	if nt.IsFloat() || nt.IsDecimal() {
		f, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			l.errorf("EL002", sp, "malformed float literal %q", text)
		}
		return token.Token{Kind: token.FloatLiteral, Text: text, Span: sp, NumType: nt, FloatValue: f}
	}
	if isFloat {
		l.errorf("EL004", sp, "fractional literal cannot carry integer suffix %q", nt)
		return token.Token{Kind: token.IntLiteral, Text: text, Span: sp, NumType: nt}
	}
	uv, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		l.errorf("EL002", sp, "malformed integer literal %q", text)
		return token.Token{Kind: token.IntLiteral, Text: text, Span: sp, NumType: nt}
	}
	overflow := !fitsInNumType(uv, nt)
	tok := token.Token{Kind: token.IntLiteral, Text: text, Span: sp, NumType: nt, IntValue: int64(uv), Overflowed: overflow}
	if overflow {
		l.errorf("EL007", sp, "literal %s does not fit in %s (max %s)", text, nt, humanize.Comma(maxForNumType(nt)))
	}
	return tok
}

func fitsInNumType(v uint64, nt token.NumType) bool {
	width := nt.BitWidth()
	if width == 0 || width > 64 {
		return true // 128-bit widths: never overflow a uint64 parse
	}
	if nt.IsUnsigned() {
		return width == 64 || v < (uint64(1) << width)
	}
	// signed: literal digits are always non-negative at lex time; allow up
	// to the signed max (a prefix '-' is a separate unary-minus token).
	return v < (uint64(1) << (width - 1))
}

func maxForNumType(nt token.NumType) int64 {
	width := nt.BitWidth()
	if width == 0 || width > 64 {
		return 1<<62 - 1
	}
	if nt.IsUnsigned() {
		return int64((uint64(1) << width) - 1)
	}
	return int64((uint64(1) << (width - 1)) - 1)
}

func (l *Lexer) finishMemory(text string, sp span.Span, digits string, mu token.MemUnit) token.Token {
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		l.errorf("EL002", sp, "malformed memory-size literal %q", text)
	}
	return token.Token{Kind: token.MemoryLiteral, Text: text, Span: sp, MemUnit: mu, MemCount: v}
}

func (l *Lexer) finishDuration(text string, sp span.Span, digits string, du token.DurationUnit) token.Token {
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		l.errorf("EL002", sp, "malformed duration literal %q", text)
	}
	return token.Token{Kind: token.DurationLiteral, Text: text, Span: sp, DurationUnit: du, DurationCount: v}
}

// --- text / letter literals ---

// scanTextLiteral scans a "..." literal (optionally raw or formatted),
// decoding escapes unless encoding is EncodingRaw, and splitting out
// `{expr}` holes when encoding is EncodingFormat (spec §4.B).
func (l *Lexer) scanTextLiteral(start span.Pos, encoding token.TextEncoding, _ string) token.Token {
	l.advance() // opening quote
	var decoded strings.Builder
	var parts []token.FormatPart
	var chunkStart int = l.pos
	raw := encoding == token.EncodingRaw
	format := encoding == token.EncodingFormat

	flushChunk := func(endPos int) {
		if !format {
			return
		}
		if endPos > chunkStart {
			parts = append(parts, token.FormatPart{IsExpr: false, Text: decoded.String()})
			decoded.Reset()
		}
	}

	for {
		if l.eof() || l.peek() == '\n' {
			l.diags.Add(diag.New("EL001", l.span(start), "unterminated text literal").WithHint("add a closing quote"))
			break
		}
		ch := l.peek()
		if ch == '"' {
			break
		}
		if format && ch == '{' {
			flushChunk(l.pos)
			exprStart := l.here()
			l.advance()
			depth := 1
			var exprText strings.Builder
			for depth > 0 {
				if l.eof() || l.peek() == '\n' {
					l.errorf("EL001", l.span(start), "unterminated format-string interpolation")
					break
				}
				if l.peek() == '{' {
					depth++
				} else if l.peek() == '}' {
					depth--
					if depth == 0 {
						l.advance()
						break
					}
				}
				exprText.WriteByte(l.peek())
				l.advance()
			}
			parts = append(parts, token.FormatPart{IsExpr: true, Text: exprText.String(), Span: l.span(exprStart)})
			chunkStart = l.pos
			continue
		}
		if ch == '\\' && !raw {
			l.advance()
			r, ok := l.scanEscape(start)
			if ok {
				decoded.WriteRune(r)
			}
			continue
		}
		decoded.WriteByte(l.advance())
	}

	if !l.eof() && l.peek() == '"' {
		l.advance()
	}

	flushChunk(l.pos)

	text := l.src[start.Offset:l.pos]
	sp := l.span(start)
	kind := token.TextLiteral
	if format {
		kind = token.FormatTextLiteral
	}
	return token.Token{Kind: kind, Text: text, Span: sp, Encoding: encoding, StringValue: decoded.String(), FormatParts: parts}
}

func (l *Lexer) scanLetterLiteral(start span.Pos, encoding token.TextEncoding) token.Token {
	l.advance() // opening '
	var r rune
	if l.eof() || l.peek() == '\n' {
		l.errorf("EL001", l.span(start), "unterminated letter literal")
		return token.Token{Kind: token.LetterLiteral, Text: l.src[start.Offset:l.pos], Span: l.span(start), Encoding: encoding}
	}
	if l.peek() == '\\' {
		l.advance()
		decoded, _ := l.scanEscape(start)
		r = decoded
	} else {
		// Decode one UTF-8 rune (letters are code points, not bytes).
		rest := l.src[l.pos:]
		dr, size := decodeRuneAt(rest)
		r = dr
		for i := 0; i < size; i++ {
			l.advance()
		}
	}
	if l.peek() == '\'' {
		l.advance()
	} else {
		l.errorf("EL001", l.span(start), "unterminated letter literal")
	}
	text := l.src[start.Offset:l.pos]
	return token.Token{Kind: token.LetterLiteral, Text: text, Span: l.span(start), Encoding: encoding, RuneValue: r}
}

func decodeRuneAt(s string) (rune, int) {
	if len(s) == 0 {
		return 0, 0
	}
	for i, r := range s {
		_ = i
		return r, len(string(r))
	}
	return 0, 0
}

// scanEscape decodes one escape sequence after the backslash has already
// been consumed. Supported: \n \t \r \\ \" \' \0 \uXXXX (spec §4.B); any
// other escape raises EL003.
func (l *Lexer) scanEscape(litStart span.Pos) (rune, bool) {
	if l.eof() {
		l.errorf("EL001", l.span(litStart), "unterminated escape sequence")
		return 0, false
	}
	ch := l.advance()
	switch ch {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	case '\'':
		return '\'', true
	case '0':
		return 0, true
	case 'u':
		start := l.here()
		var hex strings.Builder
		for i := 0; i < 4; i++ {
			if !isHexDigit(l.peek()) {
				l.errorf("EL005", l.span(start), "invalid unicode escape: expected exactly 4 hex digits")
				return 0xFFFD, false
			}
			hex.WriteByte(l.advance())
		}
		v, _ := strconv.ParseInt(hex.String(), 16, 32)
		return rune(v), true
	default:
		l.diags.Add(diag.New("EL003", l.span(litStart), "invalid escape sequence \\%c", ch).
			WithHint("supported escapes are \\n \\t \\r \\\\ \\\" \\' \\0 \\uXXXX"))
		return rune(ch), false
	}
}
