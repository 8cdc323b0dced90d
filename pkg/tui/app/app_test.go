package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsvc "tableflip.dev/moodtrack/pkg/app"
	"tableflip.dev/moodtrack/pkg/mood"
	"tableflip.dev/moodtrack/pkg/store"
)

var (
	keyEnter    = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyTab      = tea.KeyPressMsg{Code: tea.KeyTab}
	keyRight    = tea.KeyPressMsg{Code: tea.KeyRight}
	keySpace    = tea.KeyPressMsg{Code: tea.KeySpace}
	keyPrevDay  = tea.KeyPressMsg{Code: '[', Text: "["}
	keyNextDay  = tea.KeyPressMsg{Code: ']', Text: "]"}
	keyDelete   = tea.KeyPressMsg{Code: 'd', Text: "d"}
	keyQuestion = tea.KeyPressMsg{Code: '?', Text: "?"}
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestModel(t *testing.T) (*Model, *appsvc.App, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC)}
	kv := store.NewMemory()
	a := appsvc.NewWithKV(kv, appsvc.WithClock(clock), appsvc.WithLocation(time.UTC))
	require.NoError(t, a.Moods.Refresh())
	m := New(context.Background(), a)
	t.Cleanup(func() {
		m.Close()
		_ = a.Dispose()
	})
	m.Update(tea.WindowSizeMsg{Width: 90, Height: 40})
	return m, a, clock
}

// press runs a key. Saves and deletes are fed back the way the program
// loop would; other commands (cursor blinks) are dropped.
func press(t *testing.T, m *Model, key tea.KeyPressMsg) {
	t.Helper()
	cmd := m.handleKeyPress(key)
	if cmd == nil {
		return
	}
	switch key.String() {
	case "enter", "d":
		m.Update(cmd())
	}
}

func TestSavePickedMood(t *testing.T) {
	m, a, _ := newTestModel(t)
	assert.Equal(t, mood.DefaultIndex, m.picker)
	assert.False(t, m.logged)

	press(t, m, keyRight)
	assert.Equal(t, 3, m.picker)
	assert.True(t, m.dirty)

	press(t, m, keyEnter)
	assert.True(t, m.logged)
	assert.False(t, m.dirty)
	assert.Contains(t, m.status, "Saved Happy for 2024-03-13")

	e, ok, err := a.Moods.GetMood(m.selected)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, e.MoodIndex)
	assert.True(t, m.week.Days[2].Logged)
}

func TestDigitPicksMood(t *testing.T) {
	m, _, _ := newTestModel(t)
	press(t, m, tea.KeyPressMsg{Code: '0', Text: "0"})
	assert.Equal(t, 0, m.picker)
	press(t, m, tea.KeyPressMsg{Code: '9', Text: "9"})
	assert.Equal(t, 0, m.picker)
}

func TestEmotionsAndJournal(t *testing.T) {
	m, a, _ := newTestModel(t)

	press(t, m, keyTab)
	require.Equal(t, focusEmotions, m.focus)
	press(t, m, keySpace)
	press(t, m, keyRight)
	press(t, m, keySpace)
	assert.Equal(t, []string{"Happy", "Excited"}, m.emotions)

	press(t, m, keyTab)
	require.Equal(t, focusJournal, m.focus)
	for _, r := range "ok" {
		press(t, m, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	assert.Equal(t, "ok", m.journal.Value())

	press(t, m, keyEnter)
	e, ok, err := a.Moods.GetMood(m.selected)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"Happy", "Excited"}, e.Emotions)
	assert.Equal(t, "ok", e.Journal)

	press(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, focusMood, m.focus)
}

func TestDayNavigation(t *testing.T) {
	m, a, _ := newTestModel(t)
	today := m.selected

	press(t, m, keyNextDay)
	assert.Equal(t, today, m.selected)
	assert.Contains(t, m.status, "up to today")

	_, err := a.Moods.SaveMood(today.AddDate(0, 0, -1), 1)
	require.NoError(t, err)

	press(t, m, keyPrevDay)
	assert.Equal(t, "2024-03-12", m.selectedKey())
	assert.True(t, m.logged)
	assert.Equal(t, 1, m.picker)

	for i := 0; i < 2; i++ {
		press(t, m, keyPrevDay)
	}
	assert.Equal(t, "2024-03-10", m.selectedKey())
	assert.Equal(t, "2024-03-04", m.week.Start)

	press(t, m, tea.KeyPressMsg{Code: 't', Text: "t"})
	assert.Equal(t, today, m.selected)
}

func TestDeleteSelectedDay(t *testing.T) {
	m, a, _ := newTestModel(t)

	press(t, m, keyDelete)
	assert.Contains(t, m.status, "Nothing logged")

	press(t, m, keyEnter)
	require.True(t, m.logged)
	press(t, m, keyDelete)
	assert.False(t, m.logged)
	assert.Equal(t, "Deleted 2024-03-13", m.status)

	_, ok, err := a.Moods.GetMood(m.selected)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewDayMovesSelection(t *testing.T) {
	m, a, clock := newTestModel(t)

	clock.now = clock.now.AddDate(0, 0, 1)
	m.Update(dayChangedMsg{info: a.Days.DayInfo(clock.now)})

	assert.Equal(t, "2024-03-14", m.selectedKey())
	assert.Contains(t, m.banner, "Thursday 2024-03-14")
}

func TestNewDayKeepsUnsavedEdit(t *testing.T) {
	m, a, clock := newTestModel(t)
	press(t, m, keyRight)

	clock.now = clock.now.AddDate(0, 0, 1)
	m.Update(dayChangedMsg{info: a.Days.DayInfo(clock.now)})

	assert.Equal(t, "2024-03-13", m.selectedKey())
	assert.Equal(t, 3, m.picker)
}

func TestWatchEventReloadsSelection(t *testing.T) {
	m, a, _ := newTestModel(t)

	other := mood.NewStore(a.KV, mood.WithLocation(time.UTC))
	_, err := other.SaveEntry(m.selected, 4, []string{"Energetic"}, "from elsewhere")
	require.NoError(t, err)
	require.NoError(t, a.Moods.Refresh())

	m.Update(watchEventMsg{event: store.Event{Type: store.EventKeyChanged, Key: mood.StoreKey}})
	assert.True(t, m.logged)
	assert.Equal(t, 4, m.picker)
	assert.Equal(t, "from elsewhere", m.journal.Value())
	assert.Contains(t, m.status, "another session")

	m.Update(watchStartedMsg{err: appsvc.ErrNoWatch})
	assert.False(t, m.statusErr)
}

func TestViewAndHelp(t *testing.T) {
	m, _, _ := newTestModel(t)

	view, cursor := m.View()
	assert.Nil(t, cursor)
	for _, want := range []string{"Mood", "How was the day?", "Emotions", "Journal", "Neutral", "Grateful", "13", "of 7 logged"} {
		assert.Contains(t, view, want)
	}

	press(t, m, keyQuestion)
	require.True(t, m.showHelp)
	view, _ = m.View()
	assert.Contains(t, view, "Moving around")

	press(t, m, keyQuestion)
	assert.False(t, m.showHelp)
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	cmd := m.handleKeyPress(tea.KeyPressMsg{Code: 'q', Text: "q"})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)

	press(t, m, keyTab)
	press(t, m, keyTab)
	require.Equal(t, focusJournal, m.focus)
	press(t, m, tea.KeyPressMsg{Code: 'q', Text: "q"})
	assert.True(t, strings.HasSuffix(m.journal.Value(), "q"))
}
