package controller

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// tagCellWidth is how many runes of `KIND: message` a text row shows.
const tagCellWidth = 40

var (
	fixStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	improvementStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	informationStyle = lipgloss.NewStyle().Faint(true)
	customStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	macroStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

// styleFor picks the display style for a tag kind. The todo macro gets its
// own color; everything else is colored by level.
func styleFor(kind m.TagKind) lipgloss.Style {
	if kind == m.KindTodoMacro {
		return macroStyle
	}

	switch kind.Level() {
	case m.LevelFix:
		return fixStyle
	case m.LevelImprovement:
		return improvementStyle
	case m.LevelInformation:
		return informationStyle
	}

	return customStyle
}

// TextWriter prints one colorized row per tag through the command's writer.
type TextWriter struct {
	cmd *cobra.Command
}

// NewTextWriter creates a TextWriter.
func NewTextWriter(cmd *cobra.Command) *TextWriter {
	return &TextWriter{cmd: cmd}
}

// Write renders a single tag row immediately, keeping the search lazy.
func (w *TextWriter) Write(tag m.Tag) error {
	w.cmd.Println(RenderTagRow(tag))
	return nil
}

// Flush implements TagWriter. Text rows are not buffered.
func (w *TextWriter) Flush() error {
	return nil
}

// RenderTagRow formats a tag as a fixed-width colorized row: the clamped
// kind and message, the blame time when present, then location.
func RenderTagRow(tag m.Tag) string {
	cell := clampRunes(fmt.Sprintf("%s: %s", tag.Kind, tag.Message), tagCellWidth)

	row := fmt.Sprintf("%-*s", tagCellWidth, cell)
	row = styleFor(tag.Kind).Render(row)

	if tag.Git != nil {
		row += fmt.Sprintf(" %s", tag.Git)
	}

	return fmt.Sprintf("%s %s:%d", row, tag.Path, tag.Line)
}

// clampRunes truncates by rune so multi-byte messages keep their width.
func clampRunes(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}

	return string(runes[:length])
}
