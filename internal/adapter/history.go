// Package adapter contains infrastructure adapters for the tagsweep CLI.
package adapter

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// HistoryStore exposes the version-control queries the search pipeline needs.
// Implementations are read-only and safe to reuse across every file beneath
// one search root.
type HistoryStore interface {
	// Blame resolves the commit that last touched the given 1-based line
	// and returns its author and authored time. Any failure (file not
	// tracked, line out of range, missing commit) yields nil.
	Blame(path m.Path, line int) *m.GitInfo

	// Ignored reports whether the repository's ignore rules exclude the
	// path from the search.
	Ignored(path m.Path) bool
}

// HistoryOpener locates a history store for a search root.
type HistoryOpener interface {
	// OpenHistory returns a store for the repository containing root, or
	// nil when root is not inside a repository. Absence is not an error.
	OpenHistory(root m.Path) HistoryStore
}

// GitHistoryOpener opens go-git repositories by walking up from the root.
type GitHistoryOpener struct{}

// NewGitHistoryOpener constructs a GitHistoryOpener ready to be wired into
// the searcher.
func NewGitHistoryOpener() *GitHistoryOpener {
	return &GitHistoryOpener{}
}

// OpenHistory canonicalizes root and tries each ancestor directory until a
// repository opens or the filesystem root is reached.
func (o *GitHistoryOpener) OpenHistory(root m.Path) HistoryStore {
	dir, err := filepath.Abs(string(root))
	if err != nil {
		slog.Debug("Cannot resolve search root", "root", root, "error", err)
		return nil
	}

	for {
		repo, err := git.PlainOpen(dir)
		if err == nil {
			return newGitStore(repo, dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			slog.Debug("No git repository above search root", "root", root)
			return nil
		}

		dir = parent
	}
}

// gitStore adapts a go-git repository to the HistoryStore interface.
type gitStore struct {
	repo    *git.Repository
	root    string // worktree root, absolute
	matcher gitignore.Matcher
}

func newGitStore(repo *git.Repository, root string) *gitStore {
	store := &gitStore{repo: repo, root: root}

	patterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
	if err != nil {
		slog.Debug("Cannot read gitignore patterns", "root", root, "error", err)
		return store
	}

	store.matcher = gitignore.NewMatcher(patterns)

	return store
}

// Blame maps a file line to its last commit. Best-effort: every failure
// resolves to nil so a missing history never interrupts a scan.
func (s *gitStore) Blame(path m.Path, line int) *m.GitInfo {
	rel, ok := s.relPath(path)
	if !ok {
		return nil
	}

	head, err := s.repo.Head()
	if err != nil {
		return nil
	}

	commit, err := s.repo.CommitObject(head.Hash())
	if err != nil {
		return nil
	}

	blame, err := git.Blame(commit, rel)
	if err != nil {
		slog.Debug("Blame failed", "path", rel, "error", err)
		return nil
	}

	if line < 1 || line > len(blame.Lines) {
		return nil
	}

	last, err := s.repo.CommitObject(blame.Lines[line-1].Hash)
	if err != nil {
		return nil
	}

	if last.Author.Name == "" {
		return nil
	}

	return &m.GitInfo{
		Time:   last.Author.When,
		Author: last.Author.Name,
	}
}

// Ignored checks the path against the repository's gitignore rules.
func (s *gitStore) Ignored(path m.Path) bool {
	if s.matcher == nil {
		return false
	}

	rel, ok := s.relPath(path)
	if !ok {
		return false
	}

	return s.matcher.Match(strings.Split(rel, "/"), false)
}

// relPath normalizes a traversal path to the slash-separated worktree-relative
// form the repository indexes. A leading `./` is stripped before resolving.
func (s *gitStore) relPath(path m.Path) (string, bool) {
	p := strings.TrimPrefix(string(path), "./")

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", false
	}

	rel, err := filepath.Rel(s.root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}

	return filepath.ToSlash(rel), true
}
