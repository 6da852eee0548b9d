package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// TUI displays a live, scrollable tag pager using Bubble Tea.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// IsTTY reports whether the writer is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run shows tags as they arrive on the channel and blocks until the user
// quits. Cancelling ctx stops both the feed and the pager.
func (p *TUI) Run(ctx context.Context, tags <-chan m.Tag) error {
	model := newTagPagerModel()

	// Get initial terminal size
	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())

	g, feedCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-feedCtx.Done():
				return feedCtx.Err()
			case tag, ok := <-tags:
				if !ok {
					program.Send(searchDoneMsg{})
					return nil
				}

				program.Send(tagMsg(tag))
			}
		}
	})

	_, err := program.Run()

	if werr := g.Wait(); werr != nil && !errors.Is(werr, context.Canceled) && err == nil {
		err = werr
	}

	return err
}

// tagMsg delivers one found tag to the pager.
type tagMsg m.Tag

// searchDoneMsg signals that the search finished.
type searchDoneMsg struct{}

// tagPagerModel is the Bubble Tea model for the scrolling tag list.
type tagPagerModel struct {
	tags     []m.Tag
	height   int
	width    int
	offset   int // Current scroll offset
	done     bool
	follow   bool // Stick to the newest tag while the search runs
	quitting bool
}

func newTagPagerModel() tagPagerModel {
	return tagPagerModel{
		follow: true,
	}
}

func (tp tagPagerModel) Init() tea.Cmd {
	return nil
}

func (tp tagPagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		tp.height = msg.Height
		tp.width = msg.Width

		return tp, nil

	case tagMsg:
		tp.tags = append(tp.tags, m.Tag(msg))
		if tp.follow {
			tp.offset = tp.maxOffset()
		}

		return tp, nil

	case searchDoneMsg:
		tp.done = true

		return tp, nil

	case tea.KeyMsg:
		return tp.handleKeyPress(msg)
	}

	return tp, nil
}

//nolint:cyclop // Key handling requires multiple cases for UI navigation
func (tp tagPagerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
		tp.quitting = true
		return tp, tea.Quit
	}

	switch msg.String() {
	case "q":
		tp.quitting = true
		return tp, tea.Quit

	case "down", "j":
		tp.follow = false
		tp.offset = min(tp.offset+1, tp.maxOffset())

		return tp, nil

	case "up", "k":
		tp.follow = false
		tp.offset = max(tp.offset-1, 0)

		return tp, nil

	case "g", "home":
		tp.follow = false
		tp.offset = 0

		return tp, nil

	case "G", "end":
		tp.follow = true
		tp.offset = tp.maxOffset()

		return tp, nil

	case "d", "pgdown":
		tp.follow = false
		tp.offset = min(tp.offset+tp.itemsPerPage(), tp.maxOffset())

		return tp, nil

	case "u", "pgup":
		tp.follow = false
		tp.offset = max(tp.offset-tp.itemsPerPage(), 0)

		return tp, nil
	}

	return tp, nil
}

// itemsPerPage calculates how many rows fit on screen, reserving space for
// the header and footer.
func (tp tagPagerModel) itemsPerPage() int {
	if tp.height == 0 {
		return 10 // Default
	}

	available := tp.height - 4
	if available < 1 {
		return 1
	}

	return available
}

// maxOffset returns the maximum scroll offset.
func (tp tagPagerModel) maxOffset() int {
	offset := len(tp.tags) - tp.itemsPerPage()
	if offset < 0 {
		return 0
	}

	return offset
}

func (tp tagPagerModel) View() string {
	if tp.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("Tagsweep - comment tags\n\n")

	end := min(tp.offset+tp.itemsPerPage(), len(tp.tags))
	for _, tag := range tp.tags[tp.offset:end] {
		b.WriteString(RenderTagRow(tag))
		b.WriteByte('\n')
	}

	status := "searching…"
	if tp.done {
		status = "done"
	}

	fmt.Fprintf(&b, "\n%d tag(s) • %s • ↑/↓ scroll • q quit\n", len(tp.tags), status)

	return b.String()
}
