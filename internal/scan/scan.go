// Package scan discovers the files a search visits: recursive directory
// traversal filtered by the active language's extensions and optional
// include/exclude glob patterns.
package scan

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// Options configure a Scanner.
type Options struct {
	// Extensions the active language claims, with leading dot.
	Extensions []string
	// Include globs (doublestar). Empty means everything.
	Include []string
	// Exclude globs. A path matching any of them is skipped, directories
	// included, pruning the subtree.
	Exclude []string
	// MaxDepth bounds recursion; 0 means unbounded.
	MaxDepth int
}

// Scanner walks a directory tree and emits matching file paths on a
// channel, in traversal order.
type Scanner struct {
	opts Options
	log  *zap.Logger
}

func New(opts Options, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{opts: opts, log: log}
}

// Files starts the walk in a goroutine and returns the path channel. The
// channel closes when the walk finishes or ctx is canceled. A root that is
// itself a regular file is emitted as-is, bypassing the extension filter:
// naming a file explicitly overrides filtering.
func (s *Scanner) Files(ctx context.Context, root string) (<-chan string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	paths := make(chan string, 64)
	go func() {
		defer close(paths)
		if !info.IsDir() {
			select {
			case paths <- root:
			case <-ctx.Done():
			}
			return
		}
		s.walk(ctx, root, 0, paths)
	}()
	return paths, nil
}

func (s *Scanner) walk(ctx context.Context, dir string, depth int, paths chan<- string) {
	if s.opts.MaxDepth > 0 && depth > s.opts.MaxDepth {
		return
	}
	select {
	case <-ctx.Done():
		return
	default:
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.log.Warn("unreadable directory", zap.String("path", dir), zap.Error(err))
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if s.excluded(path) {
			continue
		}

		if entry.IsDir() {
			// Hidden directories (.git, .cache, ...) are pruned; an
			// --include glob cannot resurrect them, only naming one as
			// the root does.
			if strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			s.walk(ctx, path, depth+1, paths)
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		if !s.wanted(path) {
			continue
		}

		select {
		case paths <- path:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scanner) wanted(path string) bool {
	if len(s.opts.Extensions) > 0 &&
		!slices.Contains(s.opts.Extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}
	if len(s.opts.Include) == 0 {
		return true
	}
	for _, pattern := range s.opts.Include {
		if ok, err := doublestar.Match(pattern, filepath.ToSlash(path)); err == nil && ok {
			return true
		}
	}
	return false
}

func (s *Scanner) excluded(path string) bool {
	for _, pattern := range s.opts.Exclude {
		if ok, err := doublestar.Match(pattern, filepath.ToSlash(path)); err == nil && ok {
			return true
		}
	}
	return false
}
