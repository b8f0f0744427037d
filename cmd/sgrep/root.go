package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oxhq/sgrep/internal/config"
	"github.com/oxhq/sgrep/internal/lang"
	"github.com/oxhq/sgrep/internal/lang/dylib"
	"github.com/oxhq/sgrep/internal/search"
)

// options collects every flag. Defaults come from the environment
// (internal/config); flags override.
type options struct {
	language   string
	langLib    string
	langSymbol string
	langFile   string

	kinds     string
	wholeWord bool
	sensitive bool
	insens    bool

	query    string
	captures []string

	include  []string
	exclude  []string
	maxDepth int

	column  bool
	nogroup bool
	nocolor bool
	workers int
	verbose bool
}

func newRootCmd() *cobra.Command {
	defaults := config.Load()
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "sgrep [flags] PATTERN [PATH]",
		Short: "syntax-aware source code search",
		Long: `sgrep parses source files with tree-sitter and searches inside
comments, string literals, and identifiers, or runs a structural query
against the syntax tree. PATH defaults to the current directory; PATTERN
is omitted when --query is used.`,
		Args:          cobra.RangeArgs(0, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, defaults, args, os.Stdout)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.language, "lang", "l", "", "language to search (go, rust, python, javascript, or one from the definitions file)")
	flags.StringVar(&opts.langLib, "lang-lib", "", "load the grammar from a precompiled shared object")
	flags.StringVar(&opts.langSymbol, "lang-symbol", "", "entry-point symbol in --lang-lib (resolved from the module when omitted)")
	flags.StringVar(&opts.langFile, "lang-file", defaults.LangFile, "TOML language definitions file")

	flags.StringVarP(&opts.kinds, "kinds", "k", "identifier", "comma-separated node kinds to search: comment,string,identifier")
	flags.BoolVarP(&opts.wholeWord, "word", "w", false, "match whole words only")
	flags.BoolVarP(&opts.sensitive, "case-sensitive", "s", false, "always match case-sensitively")
	flags.BoolVarP(&opts.insens, "ignore-case", "i", false, "never match case-sensitively (default: smart case)")

	flags.StringVarP(&opts.query, "query", "q", "", "tree-sitter structural query instead of a literal pattern")
	flags.StringArrayVar(&opts.captures, "capture", nil, "only report groups whose capture equals a value, as NAME=VALUE (repeatable)")

	flags.StringSliceVar(&opts.include, "include", nil, "include file glob (doublestar, repeatable)")
	flags.StringSliceVar(&opts.exclude, "exclude", nil, "exclude file or directory glob (repeatable)")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "descend at most this many directory levels, 0 for unlimited")

	flags.BoolVar(&opts.column, "column", defaults.Column, "print column numbers")
	flags.BoolVar(&opts.nogroup, "nogroup", !defaults.Group, "prefix every line with the file path instead of grouping by file")
	flags.BoolVar(&opts.nocolor, "nocolor", !defaults.Color, "disable colors")
	flags.IntVar(&opts.workers, "workers", defaults.Workers, "parallel file searches")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose diagnostics")

	return cmd
}

// newLogger builds the diagnostic logger. Warnings about skipped files
// always show; debug detail needs --verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// selectLanguage resolves the language for this run: a registered name, a
// shared-object grammar, or both (the module's grammar with the registered
// language's metadata).
func selectLanguage(opts *options, registry *lang.Registry) (*lang.Language, error) {
	var base *lang.Language
	if opts.language != "" {
		l, err := registry.Lookup(opts.language)
		if err != nil {
			return nil, err
		}
		base = l
	}

	if opts.langLib == "" {
		if base == nil {
			return nil, fmt.Errorf("no language specified (--lang, --lang-lib, or a definitions file entry); known: %s",
				strings.Join(registry.Names(), ", "))
		}
		return base, nil
	}

	symbol, err := dylib.ResolveSymbol(opts.langLib, opts.langSymbol)
	if err != nil {
		return nil, err
	}
	grammar, err := dylib.Load(opts.langLib, symbol)
	if err != nil {
		return nil, err
	}

	name := strings.TrimPrefix(symbol, "tree_sitter_")
	l := lang.FromGrammar(name, grammar)
	if base != nil {
		l.Name = base.Name
		l.Extensions = base.Extensions
		l.CommentKinds = base.CommentKinds
		l.StringKinds = base.StringKinds
	}
	return l, nil
}

// kindSelection parses the -k flag.
func kindSelection(spec string) (search.Kinds, error) {
	var kinds search.Kinds
	for _, part := range strings.Split(spec, ",") {
		switch strings.TrimSpace(part) {
		case "comment":
			kinds.Comment = true
		case "string":
			kinds.String = true
		case "identifier":
			kinds.Identifier = true
		case "":
		default:
			return kinds, fmt.Errorf("unknown node kind %q (want comment, string, or identifier)", part)
		}
	}
	if !kinds.Comment && !kinds.String && !kinds.Identifier {
		return kinds, errors.New("no node kinds selected")
	}
	return kinds, nil
}

// captureFilters parses repeated --capture NAME=VALUE flags.
func captureFilters(specs []string) (map[string]string, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	filters := make(map[string]string, len(specs))
	for _, spec := range specs {
		name, value, ok := strings.Cut(spec, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("malformed capture filter %q (want NAME=VALUE)", spec)
		}
		filters[strings.TrimPrefix(name, "@")] = value
	}
	return filters, nil
}

func casePolicy(opts *options) (search.CasePolicy, error) {
	if opts.sensitive && opts.insens {
		return 0, errors.New("--case-sensitive and --ignore-case are mutually exclusive")
	}
	switch {
	case opts.sensitive:
		return search.CaseSensitive, nil
	case opts.insens:
		return search.CaseInsensitive, nil
	default:
		return search.CaseSmart, nil
	}
}
