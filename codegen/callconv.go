package codegen

// callConvAttrs implements spec §4.G's calling-convention mapping table:
// explicit annotations on externals map to LLVM attributes; unknown names
// fall back to the platform default (target.Platform.DefaultCallConv).
var callConvAttrs = map[string]string{
	"ccc":        "ccc",
	"stdcall":    "x86_stdcallcc",
	"fastcall":   "x86_fastcallcc",
	"thiscall":   "x86_thiscallcc",
	"vectorcall": "x86_vectorcallcc",
	"win64":      "win64cc",
	"sysv64":     "x86_64_sysvcc",
	"aapcs":      "arm_aapcscc",
	"aapcs_vfp":  "arm_aapcs_vfpcc",
}

// callConvAttr resolves an ExternalFunctionDecl.CallingConvention annotation
// to its LLVM attribute spelling, falling back to the platform default for
// an empty or unrecognized name (spec §4.G: "Unknown names fall back to
// default").
func (c *Context) callConvAttr(name string) string {
	if name == "" {
		return c.Platform.DefaultCallConv()
	}
	if attr, ok := callConvAttrs[name]; ok {
		return attr
	}
	return c.Platform.DefaultCallConv()
}
