package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/moodtrack/pkg/mood"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer FooterTheme
	Panel  PanelTheme
	Modal  ModalTheme
	Chip   ChipTheme
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Banner lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame        lipgloss.Style
	FocusedFrame lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
	Faint        lipgloss.Style
}

// ModalTheme styles centered modal overlays like help.
type ModalTheme struct {
	Frame lipgloss.Style
}

// ChipTheme styles emotion tags.
type ChipTheme struct {
	Off    lipgloss.Style
	On     lipgloss.Style
	Cursor lipgloss.Style
}

const accent = "212"

// Default returns the built-in theme used across the UI.
func Default() Theme {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1)

	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Banner: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Panel: PanelTheme{
			Frame:        frame,
			FocusedFrame: frame.BorderForeground(lipgloss.Color(accent)),
			Title:        lipgloss.NewStyle().Bold(true),
			Body:         lipgloss.NewStyle(),
			Faint:        lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(accent)).
				Padding(0, 1),
		},
		Chip: ChipTheme{
			Off:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
			On:     lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color(accent)).Padding(0, 1),
			Cursor: lipgloss.NewStyle().Underline(true),
		},
	}
}

var grey = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// MoodColor returns the colour of mood idx. Faint colours are blended half
// way to grey for unselected or unlogged states.
func MoodColor(idx int, faint bool) color.Color {
	m, ok := mood.Lookup(idx)
	if !ok {
		return lipgloss.Color("241")
	}
	c, err := colorful.Hex(m.Color)
	if err != nil {
		return lipgloss.Color("241")
	}
	if faint {
		c = c.BlendLab(grey, 0.6).Clamped()
	}
	return lipgloss.Color(c.Hex())
}

// Mood styles text in the colour of mood idx.
func Mood(idx int, faint bool) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(MoodColor(idx, faint))
}

// MoodBlock is a solid swatch of mood idx with dark text.
func MoodBlock(idx int) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(MoodColor(idx, false)).
		Foreground(lipgloss.Color("0")).
		Bold(true)
}
