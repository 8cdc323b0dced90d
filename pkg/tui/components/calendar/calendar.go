// Package calendar renders the week strip.
package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/moodtrack/pkg/tui/theme"
)

// Day describes a single day rendered in the strip.
type Day struct {
	Abbrev     string
	Date       int
	MoodIndex  int
	Logged     bool
	IsToday    bool
	IsSelected bool
	IsFuture   bool
}

// Options controls strip styling.
type Options struct {
	HeaderStyle   lipgloss.Style
	EmptyStyle    lipgloss.Style
	FutureStyle   lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	ShowHeader    bool
}

const cellWidth = 5

// RenderWeek produces the strip: weekday initials, then date numbers on a
// swatch of the logged mood.
func RenderWeek(days []Day, opts Options) string {
	if len(days) == 0 {
		return ""
	}
	var header, cells, markers []string
	for _, d := range days {
		header = append(header, center(opts.HeaderStyle, d.Abbrev))
		cells = append(cells, renderDay(d, opts))
		markers = append(markers, marker(d))
	}

	var lines []string
	if opts.ShowHeader {
		lines = append(lines, strings.Join(header, " "))
	}
	lines = append(lines, strings.Join(cells, " "), strings.Join(markers, " "))
	return strings.Join(lines, "\n")
}

func renderDay(d Day, opts Options) string {
	text := fmt.Sprintf("%2d", d.Date)

	var style lipgloss.Style
	switch {
	case d.Logged:
		style = theme.MoodBlock(d.MoodIndex)
	case d.IsFuture:
		style = opts.FutureStyle
	default:
		style = opts.EmptyStyle
	}
	if d.IsToday {
		style = style.Inherit(opts.TodayStyle)
	}
	if d.IsSelected {
		style = style.Inherit(opts.SelectedStyle)
	}
	return center(style, text)
}

func marker(d Day) string {
	if !d.IsSelected {
		return strings.Repeat(" ", cellWidth)
	}
	return center(lipgloss.NewStyle().Bold(true), "▲")
}

func center(style lipgloss.Style, text string) string {
	return style.Width(cellWidth).Align(lipgloss.Center).Render(text)
}

// DefaultOptions returns the styling used for the week strip.
func DefaultOptions() Options {
	return Options{
		HeaderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		EmptyStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		FutureStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		TodayStyle:    lipgloss.NewStyle().Underline(true),
		SelectedStyle: lipgloss.NewStyle().Reverse(true),
		ShowHeader:    true,
	}
}
