package compiler

import (
	"strings"

	"github.com/razorforge-lang/rfc/token"
)

// DialectForFile implements spec §6's source-file suffix rule: ".rf" selects
// the systems dialect, ".sf" selects the surface dialect, and any other
// suffix defaults to systems.
func DialectForFile(file string) token.Dialect {
	if strings.HasSuffix(file, ".sf") {
		return token.Surface
	}
	return token.Systems
}
