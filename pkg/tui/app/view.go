package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/moodtrack/pkg/mood"
	"tableflip.dev/moodtrack/pkg/tui/components/calendar"
	"tableflip.dev/moodtrack/pkg/tui/components/panel"
	"tableflip.dev/moodtrack/pkg/tui/overlay"
	"tableflip.dev/moodtrack/pkg/tui/theme"
)

const chipsPerRow = 4

// View renders the week strip, the panels for the selected day and the
// status bar. Help is drawn over them.
func (m *Model) View() (string, *tea.Cursor) {
	body := m.renderMain()
	if !m.showHelp {
		return body, nil
	}
	if m.width <= 0 || m.height <= 0 {
		return m.help.View(), nil
	}
	return overlay.Compose(body, m.width, m.height, m.help.View(), overlay.Centered), nil
}

func (m *Model) renderMain() string {
	width := m.panelWidth()
	parts := []string{m.renderHeader()}
	if m.banner != "" {
		parts = append(parts, m.theme.Footer.Banner.Render(m.banner))
	}
	parts = append(parts,
		m.renderWeekPanel(width),
		m.frame(focusMood, width).Render(m.renderPicker()),
		m.frame(focusEmotions, width).Render(m.renderEmotions()),
		m.frame(focusJournal, width).Render(m.renderJournal(width)),
		m.renderFooter(width),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) frame(f focus, width int) lipgloss.Style {
	if m.focus == f {
		return m.theme.Panel.FocusedFrame.Width(width)
	}
	return m.theme.Panel.Frame.Width(width)
}

func (m *Model) renderHeader() string {
	title := m.theme.Panel.Title.Render("Mood")
	date := m.selected.Format("Monday, January 2 2006")
	state := "not logged yet"
	if m.logged {
		state = "logged"
	}
	if m.dirty {
		state += ", unsaved changes"
	}
	return title + "  " + date + m.theme.Panel.Faint.Render(" · "+state)
}

func (m *Model) renderWeekPanel(width int) string {
	p := panel.New(m.theme.Panel)
	p.SetWidth(width)
	p.SetContent("", m.renderWeek(), m.theme.Panel.Faint.Render(m.weekSummary()))
	view, _ := p.View()
	return view
}

// weekSummary reads like "3 of 7 logged, mostly Happy".
func (m *Model) weekSummary() string {
	counts := make([]int, mood.MaxIndex+1)
	logged := 0
	for _, d := range m.week.Days {
		if !d.Logged {
			continue
		}
		logged++
		counts[d.Entry.MoodIndex]++
	}
	s := fmt.Sprintf("%d of %d logged", logged, len(m.week.Days))
	if logged == 0 {
		return s
	}
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return s + ", mostly " + mood.Label(best)
}

func (m *Model) renderWeek() string {
	todayKey := m.svc.Moods.Key(m.today())
	selected := m.selectedKey()
	days := make([]calendar.Day, 0, len(m.week.Days))
	for _, d := range m.week.Days {
		key := d.Key()
		days = append(days, calendar.Day{
			Abbrev:     d.Info.DayAbbrev,
			Date:       d.Info.Date,
			MoodIndex:  d.Entry.MoodIndex,
			Logged:     d.Logged,
			IsToday:    key == todayKey,
			IsSelected: key == selected,
			IsFuture:   key > todayKey,
		})
	}
	return calendar.RenderWeek(days, m.calOpts)
}

func (m *Model) renderPicker() string {
	cells := make([]string, 0, mood.MaxIndex+1)
	for _, md := range mood.All() {
		label := " " + md.Label + " "
		if md.Index == m.picker {
			cells = append(cells, theme.MoodBlock(md.Index).Render(label))
			continue
		}
		cells = append(cells, theme.Mood(md.Index, true).Render(label))
	}
	title := m.theme.Panel.Title.Render("How was the day?")
	return title + "\n" + strings.Join(cells, " ")
}

func (m *Model) renderEmotions() string {
	chips := m.chips()
	selected := make(map[string]bool, len(m.emotions))
	for _, e := range m.emotions {
		selected[strings.ToLower(e)] = true
	}

	var rows []string
	var row []string
	for i, c := range chips {
		style := m.theme.Chip.Off
		if selected[strings.ToLower(c)] {
			style = m.theme.Chip.On
		}
		if m.focus == focusEmotions && i == m.emotionCursor {
			style = style.Inherit(m.theme.Chip.Cursor)
		}
		row = append(row, style.Render(c))
		if len(row) == chipsPerRow {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	title := m.theme.Panel.Title.Render("Emotions")
	return title + "\n" + strings.Join(rows, "\n")
}

func (m *Model) renderJournal(width int) string {
	title := m.theme.Panel.Title.Render("Journal")
	if m.focus == focusJournal {
		return title + "\n" + m.journal.View()
	}
	text := strings.TrimSpace(m.journal.Value())
	if text == "" {
		return title + "\n" + m.theme.Panel.Faint.Render("tab here to write a note")
	}
	return title + "\n" + m.theme.Panel.Body.Render(wordwrap.String(text, max(width-4, 10)))
}

func (m *Model) renderFooter(width int) string {
	hint := m.theme.Footer.Help.Render("? help · [ ] day · enter save · q quit")
	if m.status == "" {
		return hint
	}
	status := truncate.StringWithTail(m.status, uint(max(width-2, 10)), "…")
	style := m.theme.Footer.Status
	if m.statusErr {
		style = m.theme.Footer.Error
	}
	return style.Render(status) + "\n" + hint
}
