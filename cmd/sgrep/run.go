package main

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"

	"github.com/oxhq/sgrep/internal/config"
	"github.com/oxhq/sgrep/internal/lang"
	"github.com/oxhq/sgrep/internal/report"
	"github.com/oxhq/sgrep/internal/scan"
	"github.com/oxhq/sgrep/internal/search"
)

// searchMode is the validated search request: exactly one of pattern or
// query is set.
type searchMode struct {
	pattern *search.Pattern
	query   *search.Query
	filters map[string]string
}

func run(opts *options, defaults config.Defaults, args []string, out io.Writer) error {
	logger, err := newLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	registry := lang.NewRegistry()
	if opts.langFile != "" {
		if err := registry.LoadDefinitions(opts.langFile); err != nil {
			// An explicitly requested file must load; the discovered
			// default may be absent.
			if opts.langFile != defaults.LangFile || !errors.Is(err, os.ErrNotExist) {
				return err
			}
		}
	}

	language, err := selectLanguage(opts, registry)
	if err != nil {
		return err
	}

	pattern, path, err := splitArgs(opts, args)
	if err != nil {
		return err
	}

	mode, err := buildMode(opts, language, pattern)
	if err != nil {
		return err
	}

	kinds, err := kindSelection(opts.kinds)
	if err != nil {
		return err
	}

	searcher := search.New(kinds, language.KindNames(), logger)
	reporter := report.New(out, report.Options{
		Color:  !opts.nocolor,
		Column: opts.column,
		Group:  !opts.nogroup,
	})

	scanner := scan.New(scan.Options{
		Extensions: language.Extensions,
		Include:    opts.include,
		Exclude:    opts.exclude,
		MaxDepth:   opts.maxDepth,
	}, logger)

	ctx := context.Background()
	files, err := scanner.Files(ctx, path)
	if err != nil {
		return err
	}

	workers := opts.workers
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// One parser per worker, reused sequentially across its
			// files. The compiled pattern/query is shared read-only.
			parser := language.NewParser()
			for file := range files {
				records := searchFile(ctx, parser, searcher, mode, file, logger)
				if len(records) == 0 {
					continue
				}
				mu.Lock()
				reporter.File(file, records)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return nil
}

// searchFile parses one file and runs the search. Parse and decode
// failures are local: logged, skipped, never fatal to the run.
func searchFile(ctx context.Context, parser *sitter.Parser, searcher *search.Searcher, mode searchMode, path string, logger *zap.Logger) []search.Record {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("unreadable file", zap.String("path", path), zap.Error(err))
		return nil
	}

	tree, err := parser.ParseCtx(ctx, nil, data)
	if err != nil || tree == nil {
		logger.Warn("unparseable file", zap.String("path", path), zap.Error(err))
		return nil
	}
	defer tree.Close()

	if mode.query != nil {
		return searcher.Query(tree.RootNode(), data, path, mode.query, mode.filters)
	}
	return searcher.Literal(tree.RootNode(), data, path, *mode.pattern)
}

// splitArgs separates PATTERN and PATH positionals. With --query the
// pattern positional disappears and the first argument, if any, is the
// path.
func splitArgs(opts *options, args []string) (pattern, path string, err error) {
	path = "."
	if opts.query != "" {
		if len(args) > 1 {
			return "", "", errors.New("--query takes at most one positional argument (the path)")
		}
		if len(args) == 1 {
			path = args[0]
		}
		return "", path, nil
	}

	if len(args) == 0 {
		return "", "", errors.New("a pattern or a --query is required")
	}
	pattern = args[0]
	if pattern == "" {
		return "", "", errors.New("empty search pattern")
	}
	if len(args) == 2 {
		path = args[1]
	}
	return pattern, path, nil
}

// buildMode compiles the query or the literal pattern. Query compilation
// failures abort the run before any file is opened.
func buildMode(opts *options, language *lang.Language, pattern string) (searchMode, error) {
	if opts.query != "" {
		src := opts.query
		if !strings.Contains(src, "@") {
			// Bare queries get a capture for the whole matched node so
			// there is something to report.
			src += " @node"
		}
		q, err := search.CompileQuery(src, language.Grammar())
		if err != nil {
			return searchMode{}, err
		}
		filters, err := captureFilters(opts.captures)
		if err != nil {
			return searchMode{}, err
		}
		return searchMode{query: q, filters: filters}, nil
	}

	if len(opts.captures) > 0 {
		return searchMode{}, errors.New("--capture only applies to --query searches")
	}
	policy, err := casePolicy(opts)
	if err != nil {
		return searchMode{}, err
	}
	p := search.NewPattern(pattern, policy, opts.wholeWord)
	return searchMode{pattern: &p}, nil
}
