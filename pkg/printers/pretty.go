package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"tableflip.dev/moodtrack/pkg/mood"
)

// PrettyPrint renders moods for a terminal.
type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// Width wraps journals; 0 means 80.
	Width int
}

const swatch = "●"

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return 80
}

// NewLine prints an empty line.
func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

// Title prints a bold underlined heading.
func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// TitleWithCount prints a heading followed by a faint entry count.
func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Entry prints one entry with its emotions and journal.
func (pp *PrettyPrint) Entry(e mood.Entry) {
	b := color.New(color.Bold)
	f := color.New(color.Faint)

	_, _ = b.Fprint(pp.out(), e.Date)
	_, _ = fmt.Fprint(pp.out(), "  ")
	_, _ = MoodColor(e.MoodIndex).Fprintf(pp.out(), "%s %s", swatch, e.Label())
	_, _ = f.Fprintf(pp.out(), "  (%d/%d)\n", e.MoodIndex, mood.MaxIndex)

	if len(e.Emotions) > 0 {
		_, _ = f.Fprint(pp.out(), "feeling ")
		_, _ = fmt.Fprintln(pp.out(), strings.Join(e.Emotions, ", "))
	}
	if e.HasJournal() {
		pp.NewLine()
		pp.Journal(e.Journal)
	}
	_, _ = f.Fprintf(pp.out(), "updated %s\n", e.UpdatedAt().Local().Format("Mon Jan 2 15:04"))
}

// Journal renders a note as markdown.
func (pp *PrettyPrint) Journal(text string) {
	style, profile := "dark", termenv.EnvColorProfile()
	if color.NoColor {
		style, profile = "notty", termenv.Ascii
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(pp.width()),
	)
	if err == nil {
		var out string
		if out, err = renderer.Render(text); err == nil {
			_, _ = fmt.Fprint(pp.out(), out)
			return
		}
	}
	_, _ = fmt.Fprintln(pp.out(), text)
}

// Empty prints a faint placeholder.
func (pp *PrettyPrint) Empty(what string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(pp.out(), " %s\n\n", what)
}

// Entries prints a table of entries in the order given.
func (pp *PrettyPrint) Entries(entries ...mood.Entry) {
	if len(entries) == 0 {
		pp.Empty("none")
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(pp.width() / 2)
	tbl.AddRow(bold.Sprint("Date"), bold.Sprint("Mood"), bold.Sprint("Emotions"), bold.Sprint("Journal"))
	for _, e := range entries {
		note := ""
		if e.HasJournal() {
			note = firstLine(e.Journal)
		}
		tbl.AddRow(e.Date, MoodColor(e.MoodIndex).Sprintf("%s %s", swatch, e.Label()), strings.Join(e.Emotions, ", "), note)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Legend prints the mood scale.
func (pp *PrettyPrint) Legend() {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Index"), bold.Sprint("Mood"), bold.Sprint("Colour"))
	for _, m := range mood.All() {
		tbl.AddRow(m.Index, MoodColor(m.Index).Sprintf("%s %s", swatch, m.Label), m.Color)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	_, _ = bold.Fprintln(pp.out(), "Emotions")
	_, _ = fmt.Fprintln(pp.out(), strings.Join(mood.Emotions, ", "))
	pp.NewLine()
}

// Stats prints a summary.
func (pp *PrettyPrint) Stats(title string, st mood.Stats) {
	pp.Title(title)
	if st.Total == 0 {
		pp.Empty("no moods logged")
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Entries", st.Total)
	tbl.AddRow("Range", st.First+" → "+st.Last)
	tbl.AddRow("Average", fmt.Sprintf("%.2f (%s)", st.Average, mood.Label(int(st.Average+0.5))))
	tbl.AddRow("Most common", MoodColor(st.MostCommon).Sprint(st.MostCommonLabel()))
	tbl.AddRow("Current streak", fmt.Sprintf("%d day(s)", st.Streak))
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	_, _ = bold.Fprintln(pp.out(), "Distribution")
	for _, m := range mood.All() {
		n := st.Counts[m.Index]
		_, _ = fmt.Fprintf(pp.out(), "%8s ", m.Label)
		_, _ = MoodColor(m.Index).Fprint(pp.out(), strings.Repeat("█", n))
		_, _ = fmt.Fprintf(pp.out(), " %d\n", n)
	}
	pp.NewLine()
}

// MoodColor returns the catalogue colour for idx; out-of-range indexes are
// faint.
func MoodColor(idx int) *color.Color {
	m, ok := mood.Lookup(idx)
	if !ok {
		return color.New(color.Faint)
	}
	c, err := colorful.Hex(m.Color)
	if err != nil {
		return color.New(color.Faint)
	}
	r, g, b := c.RGB255()
	return color.RGB(int(r), int(g), int(b))
}

// DimColor is MoodColor blended halfway towards grey, for days outside the
// current selection.
func DimColor(idx int) *color.Color {
	m, ok := mood.Lookup(idx)
	if !ok {
		return color.New(color.Faint)
	}
	c, err := colorful.Hex(m.Color)
	if err != nil {
		return color.New(color.Faint)
	}
	grey := colorful.Color{R: 0.4, G: 0.4, B: 0.4}
	r, g, b := c.BlendLab(grey, 0.5).Clamped().RGB255()
	return color.RGB(int(r), int(g), int(b))
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
