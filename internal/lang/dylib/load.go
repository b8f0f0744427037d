//go:build linux || darwin

package dylib

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
	sitter "github.com/smacker/go-tree-sitter"
)

// Load maps the shared object and calls its grammar entry point. The
// symbol name is taken on trust (ResolveSymbol, or the user's explicit
// choice); nothing about the function's behavior is validated beyond the
// naming convention, so this is the unsafe half of the two-step protocol.
func Load(path, symbol string) (*sitter.Language, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("load module %s: %w", path, err)
	}

	addr, err := purego.Dlsym(handle, symbol)
	if err != nil {
		return nil, fmt.Errorf("symbol %s in %s: %w", symbol, path, err)
	}

	var entry func() uintptr
	purego.RegisterFunc(&entry, addr)

	ptr := entry()
	if ptr == 0 {
		return nil, fmt.Errorf("entry point %s in %s returned a nil grammar", symbol, path)
	}
	return sitter.NewLanguage(unsafe.Pointer(ptr)), nil
}
