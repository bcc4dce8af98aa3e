// Package span implements source position tracking shared by every compiler
// phase: lexer, parser, semantic analyzer, and IR emitter all label the nodes
// they produce with a Span so diagnostics can point back at source text.
package span

import "fmt"

// Pos is a single location in a source file. Line and Col are 1-based;
// Offset is a 0-based byte offset into the file's text.
type Pos struct {
	Line   int
	Col    int
	Offset int
}

// Span is a half-open source range [Start, End) within File.
type Span struct {
	File  string
	Start Pos
	End   Pos
}

// Point returns a zero-width span at a single position.
func Point(file string, line, col, offset int) Span {
	p := Pos{Line: line, Col: col, Offset: offset}
	return Span{File: file, Start: p, End: p}
}

// Range returns a span covering [start, end).
func Range(file string, start, end Pos) Span {
	return Span{File: file, Start: start, End: end}
}

// Hull returns the smallest span that contains both a and b. Both spans must
// belong to the same file; Hull panics otherwise since spans that cross files
// are never meaningful (every phase works one file at a time, see spec §5).
func Hull(a, b Span) Span {
	if a.File != b.File {
		panic(fmt.Sprintf("span: cannot combine spans from different files %q and %q", a.File, b.File))
	}
	start := a.Start
	if b.Start.Offset < start.Offset {
		start = b.Start
	}
	end := a.End
	if b.End.Offset > end.Offset {
		end = b.End
	}
	return Span{File: a.File, Start: start, End: end}
}

// Len returns the width of the span in bytes.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Contains reports whether inner lies entirely within s (same file, offsets
// within range). Used by tests that check the AST-node-within-parent-span
// invariant from spec §8.
func (s Span) Contains(inner Span) bool {
	return s.File == inner.File &&
		inner.Start.Offset >= s.Start.Offset &&
		inner.End.Offset <= s.End.Offset
}

// Precedes reports whether s lexically precedes or encloses other — used for
// the "declaration precedes use" invariant over resolved symbols.
func (s Span) Precedes(other Span) bool {
	if s.File != other.File {
		return false
	}
	return s.Start.Offset <= other.Start.Offset
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

func (s Span) String() string {
	if s.Start == s.End {
		return fmt.Sprintf("%s:%s", s.File, s.Start)
	}
	return fmt.Sprintf("%s:%s-%s", s.File, s.Start, s.End)
}
