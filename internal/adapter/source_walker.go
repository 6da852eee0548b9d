package adapter

import (
	"io/fs"
	"log/slog"
	"path/filepath"

	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// SourceWalker abstracts directory traversal so the search logic can be
// tested without touching the disk. Implementations yield regular files only
// and do not follow symlinks.
type SourceWalker interface {
	// Walk calls fn for every regular file under root, in traversal order.
	// Traversal order is unspecified but stable within one call.
	Walk(root m.Path, fn func(path m.Path) error) error
}

// LocalSourceWalker is the concrete SourceWalker backed by the local
// filesystem.
type LocalSourceWalker struct{}

// NewLocalSourceWalker constructs a LocalSourceWalker instance ready to be
// wired into the searcher.
func NewLocalSourceWalker() *LocalSourceWalker {
	return &LocalSourceWalker{}
}

// Walk traverses root with filepath.WalkDir. Unreadable directories are
// skipped so one bad subtree never aborts the whole search.
func (w *LocalSourceWalker) Walk(root m.Path, fn func(path m.Path) error) error {
	return filepath.WalkDir(string(root), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Debug("Skipping unreadable entry", "path", path, "error", err)
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		return fn(m.Path(path))
	})
}
