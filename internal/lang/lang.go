// Package lang is the language registry: it maps language names to
// tree-sitter grammars plus the grammar-specific metadata a search needs
// (file extensions, comment and string-literal node kinds). Built-in
// languages use the grammars bundled with the bindings; additional
// languages come from a definitions file and precompiled grammar modules.
package lang

import (
	"errors"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/oxhq/sgrep/internal/search"
)

// ErrUnknownLanguage means the requested language is neither built in nor
// defined in a definitions file.
var ErrUnknownLanguage = errors.New("unknown language")

// Language couples a tree-sitter grammar with search metadata.
type Language struct {
	Name         string
	Extensions   []string
	CommentKinds []string
	StringKinds  []string

	grammar *sitter.Language
}

// Grammar returns the tree-sitter grammar handle.
func (l *Language) Grammar() *sitter.Language {
	return l.grammar
}

// KindNames returns the kind names the node classifier consumes.
func (l *Language) KindNames() search.KindNames {
	return search.KindNames{
		CommentKinds: l.CommentKinds,
		StringKinds:  l.StringKinds,
	}
}

// NewParser returns a parser configured for this language. Each worker
// gets its own parser; one parser instance is reused sequentially across
// the files that worker searches.
func (l *Language) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.grammar)
	return p
}

// Registry resolves language names. Lookup order: languages added from a
// definitions file shadow built-ins of the same name.
type Registry struct {
	langs map[string]*Language
}

// NewRegistry returns a registry holding the built-in languages.
func NewRegistry() *Registry {
	r := &Registry{langs: make(map[string]*Language)}
	for _, l := range builtins() {
		r.langs[l.Name] = l
	}
	return r
}

// Add registers a language, replacing any existing entry with that name.
func (r *Registry) Add(l *Language) {
	r.langs[l.Name] = l
}

// Lookup returns the named language.
func (r *Registry) Lookup(name string) (*Language, error) {
	l, ok := r.langs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
	}
	return l, nil
}

// Names lists registered language names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.langs))
	for name := range r.langs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromGrammar wraps a grammar loaded from a shared object. Kind names
// default to the conventional ones most grammars use; a definitions file
// entry or a registered language's metadata can replace them.
func FromGrammar(name string, grammar *sitter.Language) *Language {
	return &Language{
		Name:         name,
		Extensions:   []string{"." + name},
		CommentKinds: []string{"comment", "line_comment", "block_comment"},
		StringKinds:  []string{"string", "string_literal"},
		grammar:      grammar,
	}
}

func builtins() []*Language {
	return []*Language{
		{
			Name:         "go",
			Extensions:   []string{".go"},
			CommentKinds: []string{"comment"},
			StringKinds:  []string{"interpreted_string_literal", "raw_string_literal"},
			grammar:      golang.GetLanguage(),
		},
		{
			Name:         "rust",
			Extensions:   []string{".rs"},
			CommentKinds: []string{"line_comment", "block_comment"},
			StringKinds:  []string{"string_literal", "raw_string_literal"},
			grammar:      rust.GetLanguage(),
		},
		{
			Name:         "python",
			Extensions:   []string{".py"},
			CommentKinds: []string{"comment"},
			StringKinds:  []string{"string"},
			grammar:      python.GetLanguage(),
		},
		{
			Name:         "javascript",
			Extensions:   []string{".js", ".mjs", ".cjs"},
			CommentKinds: []string{"comment"},
			StringKinds:  []string{"string", "template_string"},
			grammar:      javascript.GetLanguage(),
		},
	}
}
