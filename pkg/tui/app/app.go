// Package app is the Bubble Tea model behind "mood ui".
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"go.uber.org/zap"

	appsvc "tableflip.dev/moodtrack/pkg/app"
	"tableflip.dev/moodtrack/pkg/day"
	"tableflip.dev/moodtrack/pkg/mood"
	"tableflip.dev/moodtrack/pkg/store"
	"tableflip.dev/moodtrack/pkg/tui/components/calendar"
	"tableflip.dev/moodtrack/pkg/tui/components/help"
	"tableflip.dev/moodtrack/pkg/tui/theme"
)

type focus int

const (
	focusMood focus = iota
	focusEmotions
	focusJournal
	focusCount
)

type savedMsg struct {
	entry mood.Entry
	err   error
}

type deletedMsg struct {
	key string
	err error
}

type dayChangedMsg struct {
	info day.Info
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

// Model is the root of the mood UI: a week strip, a mood picker, emotion
// chips and a journal line for the selected day.
type Model struct {
	ctx    context.Context
	svc    *appsvc.App
	logger *zap.Logger

	theme   theme.Theme
	calOpts calendar.Options

	width  int
	height int

	selected time.Time
	week     appsvc.WeekView
	logged   bool
	dirty    bool

	picker        int
	emotions      []string
	emotionCursor int
	journal       textinput.Model

	focus    focus
	help     *help.Model
	showHelp bool

	status    string
	statusErr bool
	banner    string

	dayCh       chan day.Info
	unsubscribe func()
	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New builds the model for svc. The caller should have initialized svc so
// the mood cache is loaded.
func New(ctx context.Context, svc *appsvc.App) *Model {
	ti := textinput.New()
	ti.Placeholder = "How did it go?"
	ti.CharLimit = 2000
	ti.Prompt = "✎ "
	ti.VirtualCursor = true
	ti.Styles.Cursor.Color = lipgloss.Color("212")
	ti.Styles.Cursor.Shape = tea.CursorBlock
	ti.Styles.Cursor.Blink = true

	m := &Model{
		ctx:     ctx,
		svc:     svc,
		logger:  zap.NewNop(),
		theme:   theme.Default(),
		calOpts: calendar.DefaultOptions(),
		journal: ti,
		help:    help.New(80, 24),
		dayCh:   make(chan day.Info, 1),
		picker:  mood.DefaultIndex,
	}
	m.help.SetFrame(m.theme.Modal.Frame)
	ch := m.dayCh
	m.unsubscribe = svc.Days.Subscribe(func(info day.Info) {
		select {
		case ch <- info:
		default:
		}
	})
	m.selected = m.today()
	m.refreshWeek()
	m.loadSelection()
	return m
}

// WithLogger sets the logger used for background failures.
func (m *Model) WithLogger(l *zap.Logger) *Model {
	if l != nil {
		m.logger = l
	}
	return m
}

// Close drops the day subscription and stops following the store.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.stopWatch()
}

// Run launches the Bubble Tea program until the user quits or ctx is done.
func Run(ctx context.Context, svc *appsvc.App, logger *zap.Logger) error {
	m := New(ctx, svc).WithLogger(logger)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForDay(), startWatchCmd(m.ctx, m.svc))
}

// Update handles messages and keybindings.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applySizes()
	case savedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			break
		}
		m.logged, m.dirty = true, false
		m.refreshWeek()
		m.setStatus(fmt.Sprintf("Saved %s for %s", msg.entry.Label(), msg.entry.Date))
	case deletedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			break
		}
		m.refreshWeek()
		m.loadSelection()
		m.setStatus("Deleted " + msg.key)
	case dayChangedMsg:
		m.onNewDay(msg.info)
		cmds = append(cmds, m.waitForDay())
	case watchStartedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, appsvc.ErrNoWatch) {
				m.setError(fmt.Errorf("watch: %w", msg.err))
			}
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		cmds = append(cmds, m.waitForWatch())
	case watchEventMsg:
		m.handleWatchEvent(msg.event)
		cmds = append(cmds, m.waitForWatch())
	case watchStoppedMsg:
		m.stopWatch()
	case tea.KeyPressMsg:
		if cmd := m.handleKeyPress(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit
	}
	if m.showHelp {
		switch key {
		case "?", "esc", "q":
			m.showHelp = false
			return nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return cmd
	}
	if m.focus == focusJournal {
		return m.handleJournalKey(msg)
	}

	switch key {
	case "q":
		return tea.Quit
	case "?":
		m.showHelp = true
	case "tab":
		return m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case "[":
		m.moveDay(-1)
	case "]":
		m.moveDay(1)
	case "t":
		m.selectDay(m.today())
	case "enter":
		return m.save()
	case "d":
		return m.remove()
	default:
		if m.focus == focusMood {
			m.handleMoodKey(key)
		} else {
			m.handleEmotionKey(key)
		}
	}
	return nil
}

func (m *Model) handleMoodKey(key string) {
	switch key {
	case "left", "h":
		if m.picker > mood.MinIndex {
			m.picker--
			m.dirty = true
		}
	case "right", "l":
		if m.picker < mood.MaxIndex {
			m.picker++
			m.dirty = true
		}
	default:
		if idx, err := mood.Parse(key); err == nil && len(key) == 1 {
			m.picker = idx
			m.dirty = true
		}
	}
}

func (m *Model) handleEmotionKey(key string) {
	chips := m.chips()
	switch key {
	case "left", "h":
		if m.emotionCursor > 0 {
			m.emotionCursor--
		}
	case "right", "l":
		if m.emotionCursor < len(chips)-1 {
			m.emotionCursor++
		}
	case "space", " ":
		if m.emotionCursor < len(chips) {
			m.emotions = mood.ToggleEmotion(m.emotions, chips[m.emotionCursor])
			m.dirty = true
		}
	}
}

func (m *Model) handleJournalKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return m.setFocus(focusMood)
	case "enter":
		return m.save()
	case "tab":
		return m.setFocus(focusMood)
	case "shift+tab":
		return m.setFocus(focusEmotions)
	}
	prev := m.journal.Value()
	var cmd tea.Cmd
	m.journal, cmd = m.journal.Update(msg)
	if m.journal.Value() != prev {
		m.dirty = true
	}
	return cmd
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	if f == focusJournal {
		return tea.Batch(m.journal.Focus(), textinput.Blink)
	}
	m.journal.Blur()
	return nil
}

func (m *Model) save() tea.Cmd {
	svc := m.svc
	date := m.selected
	idx := m.picker
	emotions := append([]string(nil), m.emotions...)
	journal := strings.TrimSpace(m.journal.Value())
	return func() tea.Msg {
		e, err := svc.Moods.SaveEntry(date, idx, emotions, journal)
		return savedMsg{entry: e, err: err}
	}
}

func (m *Model) remove() tea.Cmd {
	if !m.logged {
		m.setStatus("Nothing logged for " + m.selectedKey())
		return nil
	}
	svc := m.svc
	date := m.selected
	return func() tea.Msg {
		err := svc.Moods.DeleteMood(date)
		return deletedMsg{key: svc.Moods.Key(date), err: err}
	}
}

func (m *Model) today() time.Time {
	return m.svc.Days.DayInfo(m.svc.Now()).Time(m.svc.Days.Location())
}

func (m *Model) selectedKey() string {
	return m.svc.Moods.Key(m.selected)
}

// moveDay steps the selection by delta days. Days after today are not
// selectable.
func (m *Model) moveDay(delta int) {
	next := m.selected.AddDate(0, 0, delta)
	if next.After(m.today()) {
		m.setStatus("Moods can only be logged up to today")
		return
	}
	m.selectDay(next)
}

func (m *Model) selectDay(t time.Time) {
	if m.dirty {
		m.setStatus("Unsaved changes to " + m.selectedKey() + " dropped")
	}
	m.selected = t
	m.refreshWeek()
	m.loadSelection()
}

func (m *Model) refreshWeek() {
	m.week = m.svc.CachedWeek(m.selected)
}

func (m *Model) loadSelection() {
	e, ok := m.svc.Moods.Cached()[m.selectedKey()]
	m.logged, m.dirty = ok, false
	if !ok {
		m.picker = mood.DefaultIndex
		m.emotions = nil
		m.journal.SetValue("")
		return
	}
	m.picker = e.MoodIndex
	m.emotions = append([]string(nil), e.Emotions...)
	m.journal.SetValue(e.Journal)
	m.journal.CursorEnd()
}

func (m *Model) onNewDay(info day.Info) {
	m.banner = fmt.Sprintf("Good morning, it is %s %s", info.DayName, info.Key())
	loc := m.svc.Days.Location()
	if !m.dirty && m.selected.Equal(info.Time(loc).AddDate(0, 0, -1)) {
		m.selected = info.Time(loc)
		m.loadSelection()
	}
	m.refreshWeek()
	m.logger.Debug("new day", zap.String("date", info.Key()))
}

func (m *Model) handleWatchEvent(ev store.Event) {
	if ev.Type != store.EventInvalidated && ev.Key != mood.StoreKey {
		return
	}
	m.refreshWeek()
	if m.dirty {
		m.setStatus("Moods changed elsewhere, your edit is kept")
		return
	}
	m.loadSelection()
	m.setStatus("Moods updated from another session")
}

func (m *Model) waitForDay() tea.Cmd {
	ch, ctx := m.dayCh, m.ctx
	return func() tea.Msg {
		select {
		case info := <-ch:
			return dayChangedMsg{info: info}
		case <-ctx.Done():
			return nil
		}
	}
}

func startWatchCmd(parent context.Context, svc *appsvc.App) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Follow(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(err error) {
	m.logger.Warn("ui action failed", zap.Error(err))
	m.status, m.statusErr = "ERR: "+err.Error(), true
}

func (m *Model) applySizes() {
	w := m.panelWidth()
	m.journal.SetWidth(max(w-8, 10))
	m.help.SetSize(min(m.width-4, 76), max(m.height-4, 8))
}

func (m *Model) panelWidth() int {
	w := m.width
	if w <= 0 {
		w = 80
	}
	return min(w, 80)
}

// chips lists the catalogue emotions followed by any custom tags on the
// selected day.
func (m *Model) chips() []string {
	out := append([]string(nil), mood.Emotions...)
	for _, tag := range m.emotions {
		known := false
		for _, e := range mood.Emotions {
			if strings.EqualFold(e, tag) {
				known = true
				break
			}
		}
		if !known {
			out = append(out, tag)
		}
	}
	return out
}
