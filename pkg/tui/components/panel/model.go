// Package panel renders a titled, framed block of lines.
package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/moodtrack/pkg/tui/theme"
)

// Model holds a title and body lines styled by a PanelTheme.
type Model struct {
	title      string
	lines      []string
	width      int
	focused    bool
	frameStyle lipgloss.Style
	focusStyle lipgloss.Style
	titleStyle lipgloss.Style
	bodyStyle  lipgloss.Style
}

func New(th theme.PanelTheme) Model {
	return Model{
		frameStyle: th.Frame,
		focusStyle: th.FocusedFrame,
		titleStyle: th.Title,
		bodyStyle:  th.Body,
	}
}

// SetContent updates the panel title and body lines.
func (m *Model) SetContent(title string, lines ...string) {
	m.title = title
	m.lines = lines
}

// SetWidth fixes the outer width. Zero lets the content decide.
func (m *Model) SetWidth(w int) { m.width = w }

func (m *Model) SetFocused(f bool) { m.focused = f }

// Reset clears panel content.
func (m *Model) Reset() {
	m.title = ""
	m.lines = nil
}

// View returns the rendered panel and its height in lines.
func (m Model) View() (string, int) {
	var content []string
	if m.title != "" {
		content = append(content, m.titleStyle.Render(m.title))
	}
	for _, line := range m.lines {
		content = append(content, m.bodyStyle.Render(line))
	}
	frame := m.frameStyle
	if m.focused {
		frame = m.focusStyle
	}
	if m.width > 0 {
		frame = frame.Width(m.width)
	}
	view := frame.Render(strings.Join(content, "\n"))
	return view, strings.Count(view, "\n") + 1
}
