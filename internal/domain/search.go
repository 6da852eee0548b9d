package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"tagsweep.dev/pkg/tagsweep/internal/adapter"
	m "tagsweep.dev/pkg/tagsweep/internal/model"
	"tagsweep.dev/pkg/tagsweep/pkg"
)

// SearchOptions control how a search is performed. Disabling the git
// integration speeds up large searches considerably.
type SearchOptions struct {
	// GitIgnore skips files the repository's ignore rules exclude.
	GitIgnore bool
	// GitBlame attaches last-modification provenance to every tag.
	GitBlame bool
}

// DefaultSearchOptions enables all git integration.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{GitIgnore: true, GitBlame: true}
}

// NoGitOptions disables all git integration.
func NoGitOptions() SearchOptions {
	return SearchOptions{}
}

// Searcher composes traversal, source identification, scanning and
// provenance enrichment into one lazy tag sequence per root.
type Searcher struct {
	walker adapter.SourceWalker
	opener adapter.HistoryOpener
}

// NewSearcher creates a Searcher with the provided dependencies.
func NewSearcher(walker adapter.SourceWalker, opener adapter.HistoryOpener) *Searcher {
	return &Searcher{walker: walker, opener: opener}
}

// Search returns a lazy sequence of every tag under root. The history store
// is opened once and shared across all files and enrichments beneath this
// root; its absence simply disables the git features. Files are scanned in
// traversal order, one at a time, only as the iterator is pulled.
func (s *Searcher) Search(root m.Path, opts SearchOptions) pkg.Iter[m.Tag] {
	var store adapter.HistoryStore
	if s.opener != nil && (opts.GitIgnore || opts.GitBlame) {
		store = s.opener.OpenHistory(root)
	}

	var files []m.Path

	err := s.walker.Walk(root, func(path m.Path) error {
		files = append(files, path)
		return nil
	})
	if err != nil {
		slog.Error("Traversal failed", "root", root, "error", err)
	}

	slog.Debug("Discovered files", "root", root, "count", len(files))

	queue := pkg.FromSlice(files)

	var (
		scanner *Scanner
		file    *os.File
	)

	closeFile := func() {
		if file != nil {
			_ = file.Close()
			file = nil
		}

		scanner = nil
	}

	return pkg.IterFunc[m.Tag](func() (m.Tag, error) {
		for {
			if scanner != nil {
				tag, err := scanner.Next()
				if err == nil {
					if opts.GitBlame && store != nil {
						tag.Git = store.Blame(tag.Path, tag.Line)
					}

					return tag, nil
				}

				closeFile()

				if !errors.Is(err, io.EOF) {
					// Fatal for this file only; the search moves on.
					slog.Error("Scan aborted", "error", err)
				}
			}

			path, err := queue.Next()
			if err != nil {
				return m.Tag{}, err
			}

			if opts.GitIgnore && store != nil && store.Ignored(path) {
				continue
			}

			kind, ok := m.IdentifySource(path)
			if !ok {
				continue
			}

			f, err := os.Open(string(path))
			if err != nil {
				slog.Debug("Cannot open source file", "path", path, "error", err)
				continue
			}

			file = f
			scanner = NewScanner(kind, path, f)
		}
	})
}

// SearchAll chains searches over several roots, preserving root order.
func (s *Searcher) SearchAll(roots []m.Path, opts SearchOptions) pkg.Iter[m.Tag] {
	iters := make([]pkg.Iter[m.Tag], 0, len(roots))
	for _, root := range roots {
		iters = append(iters, s.Search(root, opts))
	}

	return pkg.Concat(iters...)
}

// Stream adapts SearchAll to a channel for consumers that want to receive
// tags while a UI runs. A single goroutine pulls the iterator, so the
// ordering guarantees of Search are preserved. The channel closes when the
// search finishes or ctx is cancelled.
func (s *Searcher) Stream(ctx context.Context, roots []m.Path, opts SearchOptions) <-chan m.Tag {
	ch := make(chan m.Tag, 1)

	go func() {
		defer close(ch)

		it := s.SearchAll(roots, opts)

		for {
			tag, err := it.Next()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					slog.Error("Search stream failed", "error", err)
				}

				return
			}

			select {
			case <-ctx.Done():
				slog.Debug("Search stream cancelled")
				return
			case ch <- tag:
			}
		}
	}()

	return ch
}
