// Package diag implements the diagnostic record and formatter shared by every
// compiler phase (spec §4.A). Each phase accumulates a []Diagnostic of its own
// rather than panicking or returning a Go error — the teacher's analyzer does
// the same with a plain []string (ysem/analyzer.go's a.errors); this package
// generalizes that slice-of-strings into a typed, formattable record.
package diag

import (
	"fmt"
	"strings"

	"github.com/razorforge-lang/rfc/span"
)

// Severity ranks a diagnostic. Only Error and Fatal stop executable emission.
type Severity int

const (
	Hint Severity = iota
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Hint:
		return "hint"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Related is a secondary location attached to a diagnostic, e.g. the original
// definition site of a duplicate declaration.
type Related struct {
	Label string
	Span  span.Span
}

// StackEntry is one frame of the compiler's own "how did we get here" trail,
// distinct from the target program's runtime stack traces (§6 rf_crash ABI).
type StackEntry struct {
	Description string
	Span        span.Span
}

// Diagnostic is the unit of compiler-to-user communication for every phase.
type Diagnostic struct {
	Code     string // e.g. "EL001", "EP014", "ES005", "EG003"
	Severity Severity
	Primary  span.Span
	Message  string
	Hint     string
	Related  []Related
	Stack    []StackEntry
}

// Phase codes, per spec §4.A / §7.
const (
	PhaseLexer    = "EL"
	PhaseParser   = "EP"
	PhaseSema     = "ES"
	PhaseCodegen  = "EG"
)

// New builds an Error-severity diagnostic with no hint or related locations;
// use the With* helpers below to attach more detail.
func New(code string, primary span.Span, format string, args ...any) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: Error,
		Primary:  primary,
		Message:  fmt.Sprintf(format, args...),
	}
}

func (d Diagnostic) WithSeverity(sev Severity) Diagnostic {
	d.Severity = sev
	return d
}

func (d Diagnostic) WithHint(format string, args ...any) Diagnostic {
	d.Hint = fmt.Sprintf(format, args...)
	return d
}

func (d Diagnostic) WithRelated(label string, at span.Span) Diagnostic {
	d.Related = append(d.Related, Related{Label: label, Span: at})
	return d
}

func (d Diagnostic) WithStack(description string, at span.Span) Diagnostic {
	d.Stack = append(d.Stack, StackEntry{Description: description, Span: at})
	return d
}

// Bag accumulates diagnostics for one phase, mirroring the teacher's
// append-only []string error list (ysem/analyzer.go) but typed.
type Bag struct {
	items []Diagnostic
}

func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

func (b *Bag) Errorf(code string, primary span.Span, format string, args ...any) {
	b.Add(New(code, primary, format, args...))
}

// All returns every diagnostic added so far, in insertion order.
func (b *Bag) All() []Diagnostic {
	return b.items
}

// HasErrors reports whether any diagnostic is Error or Fatal severity — the
// condition spec §7 uses to decide whether to stop executable emission.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= Error {
			return true
		}
	}
	return false
}

// HasFatal reports whether any diagnostic is Fatal — the compiler never
// continues past a Fatal (spec §7).
func (b *Bag) HasFatal() bool {
	for _, d := range b.items {
		if d.Severity == Fatal {
			return true
		}
	}
	return false
}

// ExitCode implements spec §6's "non-zero exit on any Error; zero exit when
// only Warnings/Hints are present" contract for the (out-of-scope) CLI.
func (b *Bag) ExitCode() int {
	if b.HasErrors() {
		return 1
	}
	return 0
}

// Merge appends another bag's diagnostics onto b, used when a phase loads
// nested modules (spec §4.E pass 1) whose diagnostics bubble up.
func (b *Bag) Merge(other *Bag) {
	b.items = append(b.items, other.items...)
}

// SourceLookup supplies the text a Formatter needs to render gutter excerpts.
// A nil SourceLookup makes the Formatter skip the excerpt.
type SourceLookup interface {
	Line(file string, line int) (string, bool)
}

// Formatter renders diagnostics as human-readable text per spec §4.A:
// header, location arrow, gutter-numbered excerpt with caret underline,
// optional hint, related locations, and stack.
type Formatter struct {
	Source      SourceLookup
	ContextLines int // default 2
	Color        bool
}

func NewFormatter(source SourceLookup) *Formatter {
	return &Formatter{Source: source, ContextLines: 2}
}

func (f *Formatter) Format(d Diagnostic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s\n", d.Code, d.Severity, d.Message)
	fmt.Fprintf(&b, "  --> %s\n", d.Primary)

	f.renderExcerpt(&b, d.Primary)

	if d.Hint != "" {
		fmt.Fprintf(&b, "  = hint: %s\n", d.Hint)
	}
	for _, r := range d.Related {
		fmt.Fprintf(&b, "  = note: %s\n", r.Label)
		fmt.Fprintf(&b, "      --> %s\n", r.Span)
	}
	for _, s := range d.Stack {
		fmt.Fprintf(&b, "  at %s (%s)\n", s.Description, s.Span)
	}
	return b.String()
}

func (f *Formatter) renderExcerpt(b *strings.Builder, sp span.Span) {
	if f.Source == nil {
		return
	}
	ctx := f.ContextLines
	if ctx == 0 {
		ctx = 2
	}
	first := sp.Start.Line - ctx
	if first < 1 {
		first = 1
	}
	last := sp.End.Line + ctx
	for line := first; line <= last; line++ {
		text, ok := f.Source.Line(sp.File, line)
		if !ok {
			continue
		}
		fmt.Fprintf(b, "%5d | %s\n", line, text)
		if line == sp.Start.Line {
			caretCol := sp.Start.Col
			width := 1
			if sp.End.Line == sp.Start.Line && sp.End.Col > sp.Start.Col {
				width = sp.End.Col - sp.Start.Col
			}
			b.WriteString("      | ")
			b.WriteString(strings.Repeat(" ", caretCol-1))
			b.WriteString(strings.Repeat("^", width))
			b.WriteByte('\n')
		}
	}
}

// Record is the machine-readable shape of a diagnostic consumed by the
// (out-of-scope) LSP wrapper, per spec §6; ToRecord builds one.
type Record struct {
	Code     string
	Severity string
	File     string
	Span     span.Span
	Message  string
	Hint     string
	Related  []Related
}

func ToRecord(d Diagnostic) Record {
	return Record{
		Code:     d.Code,
		Severity: d.Severity.String(),
		File:     d.Primary.File,
		Span:     d.Primary,
		Message:  d.Message,
		Hint:     d.Hint,
		Related:  d.Related,
	}
}
