// Package dylib resolves and loads tree-sitter grammars from precompiled
// shared objects. Resolution is pure static analysis of the module's
// symbol table; loading is the separate, unsafe step that actually maps
// the module and calls its entry point.
package dylib

import (
	"bytes"
	"debug/elf"
	"debug/macho"
	"errors"
	"fmt"
	"os"
	"strings"
)

// symbolPrefix is the naming convention for grammar entry points: a
// module exporting language X names its constructor tree_sitter_X.
const symbolPrefix = "tree_sitter_"

// scannerSuffixes are exported helpers of an external scanner extension,
// not language entry points. A symbol ending in one of these is never
// selected.
var scannerSuffixes = []string{
	"external_scanner_create",
	"external_scanner_deserialize",
	"external_scanner_destroy",
	"external_scanner_reset",
	"external_scanner_scan",
	"external_scanner_serialize",
}

var (
	// ErrSymbolNotFound means no exported symbol follows the grammar
	// entry-point naming convention.
	ErrSymbolNotFound = errors.New("no tree_sitter_* entry point exported")

	// ErrBadModule means the file is not a shared object this package can
	// read.
	ErrBadModule = errors.New("unsupported module format")
)

// ResolveSymbol determines the grammar entry-point symbol of a shared
// object. An explicit name is returned unchecked; otherwise the module's
// dynamic symbol table is scanned. No code in the module is executed.
func ResolveSymbol(path, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	names, err := exportedSymbols(path)
	if err != nil {
		return "", err
	}

	sym, ok := pickLanguageSymbol(names)
	if !ok {
		return "", fmt.Errorf("%w in %s", ErrSymbolNotFound, path)
	}
	return sym, nil
}

// pickLanguageSymbol selects the first name carrying the entry-point
// prefix whose suffix is not a scanner lifecycle hook.
func pickLanguageSymbol(names []string) (string, bool) {
	for _, name := range names {
		if !strings.HasPrefix(name, symbolPrefix) {
			continue
		}
		if isScannerSymbol(name) {
			continue
		}
		return name, true
	}
	return "", false
}

func isScannerSymbol(name string) bool {
	for _, suffix := range scannerSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// exportedSymbols lists the dynamic symbol names of a shared object,
// trying ELF first and Mach-O second. I/O failures surface as-is;
// unreadable formats map to ErrBadModule.
func exportedSymbols(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module %s: %w", path, err)
	}
	r := bytes.NewReader(data)

	if f, err := elf.NewFile(r); err == nil {
		syms, err := f.DynamicSymbols()
		if err != nil && !errors.Is(err, elf.ErrNoSymbols) {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadModule, path, err)
		}
		names := make([]string, 0, len(syms))
		for _, sym := range syms {
			names = append(names, sym.Name)
		}
		return names, nil
	}

	if f, err := macho.NewFile(r); err == nil {
		if f.Symtab == nil {
			return nil, fmt.Errorf("%w: %s has no symbol table", ErrBadModule, path)
		}
		names := make([]string, 0, len(f.Symtab.Syms))
		for _, sym := range f.Symtab.Syms {
			// Mach-O C symbols carry a leading underscore.
			names = append(names, strings.TrimPrefix(sym.Name, "_"))
		}
		return names, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrBadModule, path)
}
