package lang

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/oxhq/sgrep/internal/lang/dylib"
)

// definitionsFile is the on-disk language definitions format:
//
//	[languages.zig]
//	extensions = [".zig"]
//	comment-kinds = ["line_comment"]
//	string-kinds = ["string_literal"]
//	library = "/usr/local/lib/libtree-sitter-zig.so"
//	symbol = "tree_sitter_zig"   # optional, resolved from the module if omitted
type definitionsFile struct {
	Languages map[string]definition `toml:"languages"`
}

type definition struct {
	Extensions   []string `toml:"extensions"`
	CommentKinds []string `toml:"comment-kinds"`
	StringKinds  []string `toml:"string-kinds"`
	Library      string   `toml:"library"`
	Symbol       string   `toml:"symbol"`
}

// LoadDefinitions reads a TOML definitions file and registers its
// languages. A definition naming a grammar library has its entry-point
// symbol resolved and the module loaded immediately, so a broken module
// fails the run here, before any file is searched. A definition without a
// library must refine an already registered language and only overrides
// its metadata.
func (r *Registry) LoadDefinitions(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read language definitions: %w", err)
	}

	var file definitionsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse language definitions %s: %w", path, err)
	}

	for name, def := range file.Languages {
		l := &Language{
			Name:         name,
			Extensions:   def.Extensions,
			CommentKinds: def.CommentKinds,
			StringKinds:  def.StringKinds,
		}

		if def.Library != "" {
			symbol, err := dylib.ResolveSymbol(def.Library, def.Symbol)
			if err != nil {
				return fmt.Errorf("language %q: %w", name, err)
			}
			grammar, err := dylib.Load(def.Library, symbol)
			if err != nil {
				return fmt.Errorf("language %q: %w", name, err)
			}
			l.grammar = grammar
		} else {
			base, err := r.Lookup(name)
			if err != nil {
				return fmt.Errorf("language %q defines no library and no built-in grammar exists: %w", name, err)
			}
			l.grammar = base.grammar
			if len(l.Extensions) == 0 {
				l.Extensions = base.Extensions
			}
			if len(l.CommentKinds) == 0 {
				l.CommentKinds = base.CommentKinds
			}
			if len(l.StringKinds) == 0 {
				l.StringKinds = base.StringKinds
			}
		}

		r.Add(l)
	}
	return nil
}
