package compiler

import (
	"os"
	"path/filepath"

	"github.com/razorforge-lang/rfc/token"
)

// fsLoader resolves an `import path` against an ordered search-path list by
// trying each directory in turn, the same shape as the teacher's
// findBinary/findCrt0 helpers in `ya/main.go` (try $YAPL/<subdir>, then
// PATH) — here it's "try each configured directory" instead of env-var vs.
// PATH, since search paths are passed in programmatically (spec §0:
// "no flag/env parsing inside the core").
type fsLoader struct {
	searchPaths []string
	dialect     token.Dialect
}

func newFSLoader(searchPaths []string, dialect token.Dialect) *fsLoader {
	return &fsLoader{searchPaths: searchPaths, dialect: dialect}
}

// candidateNames tries path as given first (a caller may already include the
// dialect suffix), then with the pipeline's own dialect suffix appended.
func (l *fsLoader) candidateNames(path string) []string {
	suffix := ".rf"
	if l.dialect == token.Surface {
		suffix = ".sf"
	}
	return []string{path, path + suffix}
}

// Load implements sema.ModuleLoader.
func (l *fsLoader) Load(path string) (source string, filename string, ok bool) {
	for _, dir := range l.searchPaths {
		for _, name := range l.candidateNames(path) {
			candidate := filepath.Join(dir, name)
			data, err := os.ReadFile(candidate)
			if err == nil {
				return string(data), candidate, true
			}
		}
	}
	return "", "", false
}
