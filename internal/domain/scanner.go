// Package domain contains the comment-tag scanning engine.
package domain

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// Compiled once and shared read-only across all scans.
var (
	// commentTagPattern matches a C-style comment opener (`//`, `///`,
	// `//!`, `/*`, `/**`, `/*!`, ...) followed by a keyword token, a colon
	// and the message on the same line.
	commentTagPattern = regexp.MustCompile(`/(?:/+|\*+)!? ?([!a-zA-Z0-9_]+): ?(.+)`)

	// todoMacroPattern matches a Rust `todo!()` call with an optional
	// string-literal argument.
	todoMacroPattern = regexp.MustCompile(`todo!\((?:"([^"]*)")?\)`)
)

// Scanner turns a source byte stream into a finite sequence of tags. The
// stream is read incrementally, one line at a time; the sequence is not
// restartable. A Scanner owns its buffer and reader exclusively.
type Scanner struct {
	path   m.Path
	kind   m.SourceKind
	reader *bufio.Reader
	line   string
	lineNo int
	eof    bool
}

// NewScanner creates a scanner for one source stream of the given kind.
func NewScanner(kind m.SourceKind, path m.Path, r io.Reader) *Scanner {
	return &Scanner{
		path:   path,
		kind:   kind,
		reader: bufio.NewReader(r),
	}
}

// Next returns the next tag in the stream. It returns io.EOF once the stream
// is exhausted. Any other error means the stream became unreadable and the
// scan of this file is aborted.
func (s *Scanner) Next() (m.Tag, error) {
	if s.kind == m.SourceRust {
		return s.nextRust()
	}

	return s.nextCLike()
}

// nextCLike reads a line, then tests it. A line contributes at most one tag.
func (s *Scanner) nextCLike() (m.Tag, error) {
	for {
		if err := s.readLine(); err != nil {
			return m.Tag{}, err
		}

		if tag, ok := s.findCommentTag(); ok {
			s.line = ""
			return tag, nil
		}
	}
}

// nextRust tests the current line before advancing, so the line a previous
// call stopped on is never skipped. The macro pattern takes priority over
// the comment pattern when both would match.
func (s *Scanner) nextRust() (m.Tag, error) {
	for {
		if tag, ok := s.findTodoMacro(); ok {
			// Dropping the rest of the line means later matches on the
			// same line are never reported.
			s.line = ""
			return tag, nil
		}

		if tag, ok := s.findCommentTag(); ok {
			s.line = ""
			return tag, nil
		}

		if err := s.readLine(); err != nil {
			return m.Tag{}, err
		}
	}
}

// readLine pulls the next line into the buffer and advances the counter.
// Returns io.EOF when the stream is exhausted.
func (s *Scanner) readLine() error {
	if s.eof {
		return io.EOF
	}

	line, err := s.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return fmt.Errorf("read %s: %w", s.path, err)
		}

		// Final line without a trailing newline still gets scanned.
		s.eof = true
		if line == "" {
			return io.EOF
		}
	}

	s.line = strings.TrimRight(line, "\r\n")
	s.lineNo++

	return nil
}

func (s *Scanner) findCommentTag() (m.Tag, bool) {
	caps := commentTagPattern.FindStringSubmatch(s.line)
	if caps == nil {
		return m.Tag{}, false
	}

	keyword := caps[1]
	// URLs like `// see http://...` are not tags.
	if lower := strings.ToLower(keyword); lower == "http" || lower == "https" {
		return m.Tag{}, false
	}

	message := caps[2]
	if strings.HasSuffix(message, "*/") {
		message = message[:len(message)-2]
	}

	return m.Tag{
		Path:    s.path,
		Line:    s.lineNo,
		Kind:    m.Classify(keyword),
		Message: strings.TrimSpace(message),
	}, true
}

func (s *Scanner) findTodoMacro() (m.Tag, bool) {
	caps := todoMacroPattern.FindStringSubmatch(s.line)
	if caps == nil {
		return m.Tag{}, false
	}

	return m.Tag{
		Path:    s.path,
		Line:    s.lineNo,
		Kind:    m.KindTodoMacro,
		Message: caps[1],
	}, true
}
