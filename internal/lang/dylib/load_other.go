//go:build !linux && !darwin

package dylib

import (
	"fmt"
	"runtime"

	sitter "github.com/smacker/go-tree-sitter"
)

// Load is unsupported here: grammar modules ship as ELF or Mach-O shared
// objects and the loader only targets dlopen platforms.
func Load(path, symbol string) (*sitter.Language, error) {
	return nil, fmt.Errorf("loading grammar modules is not supported on %s", runtime.GOOS)
}
