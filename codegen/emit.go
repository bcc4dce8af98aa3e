package codegen

import "fmt"

// emit, comment, and label are the direct descendants of the teacher's
// Emitter (`ygen/emit.go`: Comment/Label/Instr0..3/NewLabel) — a thin
// printf-to-buffer wrapper, just retargeted at LLVM instruction text instead
// of WUT-4 assembly mnemonics. Every instruction line is emitted into the
// current function's body buffer; top-level declarations go through line/
// preambleLine instead.

// emit writes one indented instruction line into the current function body.
func (c *Context) emit(format string, args ...any) {
	fmt.Fprintf(&c.body, "  "+format+"\n", args...)
}

// comment writes an indented `;`-prefixed comment line (spec §4.G's danger-
// block START/END markers use this).
func (c *Context) comment(format string, args ...any) {
	fmt.Fprintf(&c.body, "  ; %s\n", fmt.Sprintf(format, args...))
}

// label writes a basic-block label line and tracks it as the current block
// spec §4.G's state machine needs ("a new label resets to Emitting-body").
func (c *Context) label(name string) {
	fmt.Fprintf(&c.body, "%s:\n", name)
	c.currentBlock = name
	if c.state == StateTerminated || c.state == StatePrologue {
		c.state = StateBody
	}
}

// line writes one unindented top-level line into the function body buffer
// (function signatures, closing braces).
func (c *Context) line(format string, args ...any) {
	fmt.Fprintf(&c.body, format+"\n", args...)
}

// preambleLine writes one line into the module preamble buffer (target
// triple, data layout, ABI declarations, string-pool constants).
func (c *Context) preambleLine(format string, args ...any) {
	fmt.Fprintf(&c.preamble, format+"\n", args...)
}
