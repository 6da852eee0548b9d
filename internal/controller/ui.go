// Package controller provides output adapters for displaying found tags.
package controller

import (
	"fmt"

	"github.com/spf13/cobra"

	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// Format selects a report encoding.
type Format string

// Available Format values.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name from a CLI flag.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML:
		return Format(s), nil
	}

	return "", fmt.Errorf("unknown output format %q", s)
}

// TagWriter consumes the tag stream produced by a search. Write is called
// once per tag, in search order; Flush is called once after the final tag.
// Implementations can render rows immediately (text) or buffer the whole
// report (structured encodings).
type TagWriter interface {
	Write(tag m.Tag) error
	Flush() error
}

// NewTagWriter returns the TagWriter for the requested format, printing
// through the command's output writer.
func NewTagWriter(cmd *cobra.Command, format Format) TagWriter {
	switch format {
	case FormatJSON:
		return newJSONWriter(cmd)
	case FormatYAML:
		return newYAMLWriter(cmd)
	default:
		return NewTextWriter(cmd)
	}
}
