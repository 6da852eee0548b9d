package model

import "path/filepath"

// Path represents a file system path.
type Path string

// SourceKind is the comment grammar a source file follows.
type SourceKind int

const (
	// SourceCLike supports only comment-embedded tags.
	SourceCLike SourceKind = iota
	// SourceRust additionally supports the `todo!()` macro.
	SourceRust
)

func (k SourceKind) String() string {
	if k == SourceRust {
		return "rust"
	}

	return "clike"
}

// extensions maps a file extension (without the dot) to its source kind.
// Every language with C-style comments scans safely as clike.
var extensions = map[string]SourceKind{
	"rs":    SourceRust,
	"c":     SourceCLike,
	"cpp":   SourceCLike,
	"cc":    SourceCLike,
	"h":     SourceCLike,
	"hpp":   SourceCLike,
	"java":  SourceCLike,
	"cs":    SourceCLike,
	"go":    SourceCLike,
	"js":    SourceCLike,
	"jsx":   SourceCLike,
	"ts":    SourceCLike,
	"tsx":   SourceCLike,
	"kt":    SourceCLike,
	"swift": SourceCLike,
	"scala": SourceCLike,
}

// IdentifySource determines the comment grammar for a path from its file
// extension. Files with an unknown or missing extension are not scanned.
func IdentifySource(path Path) (SourceKind, bool) {
	ext := filepath.Ext(string(path))
	if ext == "" {
		return 0, false
	}

	kind, ok := extensions[ext[1:]]

	return kind, ok
}
