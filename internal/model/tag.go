// Package model defines the data structures for comment-tag scanning.
package model

import (
	"fmt"
	"strings"
	"time"
)

// TagKind is the classification of a comment tag. Canonical kinds hold their
// display form; any other value is a custom kind carrying the keyword exactly
// as it was captured from the source line.
type TagKind string

const (
	// KindTodo is `TODO`.
	KindTodo TagKind = "TODO"
	// KindTodoMacro is the Rust `todo!()` macro.
	KindTodoMacro TagKind = "TODO!"
	// KindBug is `BUG` or `DEBUG`.
	KindBug TagKind = "BUG"
	// KindFix is `FIXME` or `FIX`.
	KindFix TagKind = "FIX"
	// KindNote is `NOTE` or `NB`.
	KindNote TagKind = "NOTE"
	// KindUndone is `UNDONE`.
	KindUndone TagKind = "UNDONE"
	// KindHack is `HACK`, `BODGE` or `KLUDGE`.
	KindHack TagKind = "HACK"
	// KindXxx is `XXX`.
	KindXxx TagKind = "XXX"
	// KindOptimize is `OPTIMIZE`, `OPTIMISE`, `OPTIMIZEME` or `OPTIMISEME`.
	KindOptimize TagKind = "OPTIMIZE"
	// KindSafety is `SAFETY`.
	KindSafety TagKind = "SAFETY"
	// KindInvariant is `INVARIANT`.
	KindInvariant TagKind = "INVARIANT"
	// KindLint is `LINT`.
	KindLint TagKind = "LINT"
	// KindIgnored is `IGNORED`.
	KindIgnored TagKind = "IGNORED"
)

// synonyms maps lower-cased keywords to their canonical kind.
// Incomplete list based on https://en.wikipedia.org/wiki/Comment_(computer_programming)#Tags
var synonyms = map[string]TagKind{
	"todo":       KindTodo,
	"todo!":      KindTodoMacro,
	"bug":        KindBug,
	"debug":      KindBug,
	"fixme":      KindFix,
	"fix":        KindFix,
	"note":       KindNote,
	"nb":         KindNote,
	"undone":     KindUndone,
	"hack":       KindHack,
	"bodge":      KindHack,
	"kludge":     KindHack,
	"xxx":        KindXxx,
	"optimize":   KindOptimize,
	"optimise":   KindOptimize,
	"optimizeme": KindOptimize,
	"optimiseme": KindOptimize,
	"safety":     KindSafety,
	"invariant":  KindInvariant,
	"lint":       KindLint,
	"ignored":    KindIgnored,
}

// Classify resolves a raw keyword token to its canonical TagKind. Matching is
// case-insensitive. Keywords outside the synonym table become a custom kind
// with the token preserved as captured. Classify cannot fail.
func Classify(raw string) TagKind {
	if kind, ok := synonyms[strings.ToLower(raw)]; ok {
		return kind
	}

	return TagKind(raw)
}

// IsCustom reports whether the kind is outside the canonical set.
func (k TagKind) IsCustom() bool {
	_, ok := synonyms[strings.ToLower(string(k))]
	return !ok
}

// Level returns the severity bucket for the kind. The mapping is total:
// custom kinds map to LevelCustom.
func (k TagKind) Level() TagLevel {
	switch k {
	case KindBug, KindFix:
		return LevelFix
	case KindTodo, KindTodoMacro, KindOptimize:
		return LevelImprovement
	case KindNote, KindUndone, KindHack, KindXxx,
		KindSafety, KindInvariant, KindLint, KindIgnored:
		return LevelInformation
	}

	return LevelCustom
}

// String renders the canonical uppercase name, or the custom text unchanged.
func (k TagKind) String() string {
	return string(k)
}

// ParseTagKind resolves a user-supplied kind name, for example from a CLI
// flag. It accepts the same synonyms as Classify.
func ParseTagKind(s string) TagKind {
	return Classify(s)
}

// TagLevel is the coarse severity bucket behind a tag kind. Useful for
// filtering tags quickly.
type TagLevel string

const (
	// LevelFix marks something broken that needs fixing.
	LevelFix TagLevel = "fix"
	// LevelImprovement marks something that should be improved.
	LevelImprovement TagLevel = "improvement"
	// LevelInformation marks extra information about the code.
	LevelInformation TagLevel = "information"
	// LevelCustom marks a tag that did not match a known kind.
	LevelCustom TagLevel = "custom"
)

// ParseTagLevel parses a level name. Unlike tag kinds, an unknown level name
// is an error, as there is no open-ended fallback for levels.
func ParseTagLevel(s string) (TagLevel, error) {
	switch strings.ToLower(s) {
	case "fix":
		return LevelFix, nil
	case "improvement":
		return LevelImprovement, nil
	case "information":
		return LevelInformation, nil
	case "custom":
		return LevelCustom, nil
	}

	return "", fmt.Errorf("unknown tag level %q", s)
}

// String returns the level name with its display capitalization.
func (l TagLevel) String() string {
	switch l {
	case LevelFix:
		return "Fix"
	case LevelImprovement:
		return "Improvement"
	case LevelInformation:
		return "Information"
	}

	return "Custom"
}

// GitInfo carries last-modification provenance for a tag line.
type GitInfo struct {
	// Time is when the line was last modified, as authored in the commit.
	Time time.Time `json:"time" yaml:"time"`
	// Author is the name of the commit author.
	Author string `json:"author" yaml:"author"`
}

// String formats the provenance as local time followed by the author name.
func (g GitInfo) String() string {
	return fmt.Sprintf("%s %s", g.Time.Local().Format("2006-01-02 15:04:05"), g.Author)
}

// Tag is one recognized comment-tag occurrence. Tags are immutable once
// yielded by a scan; the message never spans beyond the originating line.
type Tag struct {
	// Path is the relative path of the source file as supplied by traversal.
	Path Path `json:"path" yaml:"path"`
	// Line is the 1-based line number of the tag.
	Line int `json:"line" yaml:"line"`
	// Kind is the classification of the tag keyword.
	Kind TagKind `json:"kind" yaml:"kind"`
	// Message is the trimmed text following the keyword, possibly empty.
	Message string `json:"message" yaml:"message"`
	// Git is last-modification provenance, present only when a blame
	// lookup succeeded.
	Git *GitInfo `json:"git,omitempty" yaml:"git,omitempty"`
}

func (t Tag) String() string {
	if t.Git != nil {
		return fmt.Sprintf("%s: %s %s %s:%d", t.Kind, t.Message, t.Git, t.Path, t.Line)
	}

	return fmt.Sprintf("%s: %s %s:%d", t.Kind, t.Message, t.Path, t.Line)
}
