package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/moodtrack/pkg/app"
)

const width = len("11 12 13 14 15 16 17") // an example week

var weekHeader = []string{"M", "T", "W", "T", "F", "S", "S"}

// Week prints a Monday-first strip: weekday letters, day numbers coloured by
// mood, and a swatch row. Today is underlined; past and future weeks are
// dimmed.
func (pp *PrettyPrint) Week(w app.WeekView) {
	f := color.New(color.Faint)
	for _, d := range w.Days {
		_, _ = f.Fprintf(pp.out(), "%2s ", d.Info.DayAbbrev)
	}
	pp.NewLine()

	for _, d := range w.Days {
		pp.day(d, !w.Current)
	}
	pp.NewLine()

	for _, d := range w.Days {
		if d.Logged {
			_, _ = MoodColor(d.Entry.MoodIndex).Fprintf(pp.out(), "%2s ", swatch)
		} else {
			_, _ = f.Fprint(pp.out(), " · ")
		}
	}
	pp.NewLine()
	pp.NewLine()

	for _, d := range w.Days {
		if !d.Logged {
			continue
		}
		_, _ = f.Fprintf(pp.out(), "%-9s ", d.Info.DayName)
		_, _ = MoodColor(d.Entry.MoodIndex).Fprintln(pp.out(), d.Entry.Label())
	}
	_, _ = f.Fprintf(pp.out(), "%d of 7 days logged\n\n", w.Logged())
}

// Month prints a Monday-first month grid with day numbers coloured by mood.
func (pp *PrettyPrint) Month(m app.MonthView) {
	tf := color.New(color.FgWhite, color.Italic)
	title := fmt.Sprintf("%s %d", time.Month(m.Month), m.Year)
	mid := (width - len(title)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), title)

	f := color.New(color.Faint)
	_, _ = f.Fprintln(pp.out(), " "+strings.Join(weekHeader, "  "))

	_, _ = fmt.Fprint(pp.out(), strings.Repeat("   ", m.Lead))
	col := m.Lead
	for _, d := range m.Days {
		pp.day(d, false)
		col++
		if col == 7 {
			col = 0
			pp.NewLine()
		}
	}
	if col != 0 {
		pp.NewLine()
	}
	pp.NewLine()
}

func (pp *PrettyPrint) day(d app.DayMood, dim bool) {
	c := color.New(color.Faint, color.FgWhite)
	switch {
	case d.Logged && dim:
		c = DimColor(d.Entry.MoodIndex)
	case d.Logged:
		c = MoodColor(d.Entry.MoodIndex)
	}
	if d.Info.IsToday {
		c.Add(color.Underline, color.Bold)
	}
	_, _ = c.Fprintf(pp.out(), "%2d ", d.Info.Date)
}
