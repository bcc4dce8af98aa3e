package codegen

import "fmt"

// runtimeDecl is one external symbol from spec §6's wire contract: "the
// following external symbols must be present at link time, with exactly
// these signatures". Any `word` in params/ret is the platform word width; codegen
// never varies these declarations by dialect or target OS beyond width.
type runtimeDecl struct {
	name   string
	params []string // parameter LLVM types, pre-substituted for `word`
	ret    string
}

// runtimeABI builds the fixed declaration set spec §4.G's preamble and §6's
// wire contract both name, substituting `word` for the platform's pointer-
// sized integer.
func (c *Context) runtimeABI() []runtimeDecl {
	word := fmt.Sprintf("i%d", c.Platform.WordBits)
	return []runtimeDecl{
		{"heap_alloc", []string{word}, "ptr"},
		{"stack_alloc", []string{word}, "ptr"},
		{"heap_free", []string{"ptr"}, "void"},
		{"heap_realloc", []string{"ptr", word}, "ptr"},

		{"memory_copy", []string{"ptr", "ptr", word}, "void"},
		{"memory_fill", []string{"ptr", "i8", word}, "void"},
		{"memory_zero", []string{"ptr", word}, "void"},

		{"slice_size", []string{"ptr"}, word},
		{"slice_address", []string{"ptr"}, word},
		{"slice_is_valid", []string{"ptr"}, "i1"},
		{"slice_unsafe_ptr", []string{"ptr", word}, word},
		{"slice_subslice", []string{"ptr", word, word}, "ptr"},
		{"slice_hijack", []string{"ptr"}, "ptr"},
		{"slice_refer", []string{"ptr"}, word},

		{"read_as_bytes", []string{word, word}, word},
		{"write_as_bytes", []string{word, word, word}, "void"},
		{"volatile_read_bytes", []string{word, word}, word},
		{"volatile_write_bytes", []string{word, word, word}, "void"},
		{"address_of", []string{"ptr"}, word},
		{"invalidate_memory", []string{word}, "void"},

		{"rf_crash", []string{"ptr"}, "void"},
		{"rf_throw", []string{"ptr", "ptr"}, "void"},
	}
}

// emitHeader writes the target triple, data layout, and runtime ABI
// declarations up front, before any declaration-driven output (named
// struct types, globals) reaches the same buffer (spec §4.G "Preamble
// emitted once").
func (c *Context) emitHeader() {
	c.preambleLine("target triple = %q", c.Platform.LLVMTriple())
	c.preambleLine("target datalayout = %q", c.Platform.DataLayout())
	c.preambleLine("")
	for _, decl := range c.runtimeABI() {
		c.preambleLine("declare %s @%s(%s)", decl.ret, decl.name, joinTypes(decl.params))
	}
	c.preambleLine("")
}

// emitFooter writes the deduplicated string-constant pool once every
// literal in the program has been interned.
func (c *Context) emitFooter() {
	c.emitStringPool()
}

func joinTypes(ts []string) string {
	out := ""
	for i, t := range ts {
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return out
}

// emitStringPool writes every deduplicated string literal collected during
// body lowering as a private global constant, in first-use order (spec
// §4.G: "String constant pool: deduplicated, emitted as private constants
// with a compiler-assigned label").
func (c *Context) emitStringPool() {
	for _, label := range c.poolLabels {
		text := c.stringPool[label]
		bytes := []byte(text)
		c.preambleLine(
			"@%s = private unnamed_addr constant [%d x i8] c%q",
			label, len(bytes)+1, text+"\x00",
		)
	}
}

// internString deduplicates a string literal into the pool and returns its
// stable label (spec §4.G: "deduplicated... with a compiler-assigned
// label"). The pool is keyed by content, not by call site, so two identical
// literals anywhere in the program share one global.
func (c *Context) internString(text string) string {
	if label, ok := c.stringPoolLookup(text); ok {
		return label
	}
	label := fmt.Sprintf(".str.%d", c.poolCounter)
	c.poolCounter++
	c.stringPool[label] = text
	c.poolLabels = append(c.poolLabels, label)
	return label
}

// stringPoolLookup does the reverse lookup (content -> existing label) the
// forward map doesn't give directly, since stringPool is keyed by label.
func (c *Context) stringPoolLookup(text string) (string, bool) {
	for _, label := range c.poolLabels {
		if c.stringPool[label] == text {
			return label, true
		}
	}
	return "", false
}
