package printers

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/moodtrack/pkg/app"
	"tableflip.dev/moodtrack/pkg/day"
	"tableflip.dev/moodtrack/pkg/mood"
	"tableflip.dev/moodtrack/pkg/store"
)

func init() {
	color.NoColor = true
}

var now = time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC)

func testApp(t *testing.T) *app.App {
	t.Helper()
	a := app.NewWithKV(store.NewMemory(),
		app.WithClock(day.ClockFunc(func() time.Time { return now })),
		app.WithLocation(time.UTC))
	t.Cleanup(func() { _ = a.Dispose() })
	return a
}

func TestWeek(t *testing.T) {
	a := testApp(t)
	_, err := a.Moods.SaveMood(now, 3)
	require.NoError(t, err)
	w, err := a.CurrentWeek()
	require.NoError(t, err)

	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Week(w)

	out := buf.String()
	assert.Contains(t, out, " M  T  W  T  F  S  S")
	assert.Contains(t, out, "11 12 13 14 15 16 17")
	assert.Contains(t, out, "Wednesday Happy")
	assert.Contains(t, out, "1 of 7 days logged")
}

func TestMonth(t *testing.T) {
	a := testApp(t)
	m, err := a.Month(now)
	require.NoError(t, err)

	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Month(m)

	out := buf.String()
	assert.Contains(t, out, "March 2024")
	// 2024-03-01 is a Friday.
	assert.Contains(t, out, "\n             1  2  3 \n 4  5")
}

func TestEntries(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Entries(
		mood.Entry{Date: "2024-03-12", MoodIndex: 0, Emotions: []string{"Tired"}},
		mood.Entry{Date: "2024-03-13", MoodIndex: 4, Journal: "great\nday"},
	)
	out := buf.String()
	assert.Contains(t, out, "2024-03-12")
	assert.Contains(t, out, "Sad")
	assert.Contains(t, out, "Tired")
	assert.Contains(t, out, "great …")

	buf.Reset()
	pp.Entries()
	assert.Contains(t, buf.String(), "none")
}

func TestLegendAndStats(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Legend()
	for _, label := range mood.Labels() {
		assert.Contains(t, buf.String(), label)
	}
	assert.Contains(t, buf.String(), "#FFD700")

	buf.Reset()
	pp.Stats("All time", mood.Summarize(mood.Data{
		"2024-03-12": {Date: "2024-03-12", MoodIndex: 1},
		"2024-03-13": {Date: "2024-03-13", MoodIndex: 1},
	}, now, time.UTC))
	out := buf.String()
	assert.Contains(t, out, "Worried")
	assert.Contains(t, out, "2 day(s)")
	assert.Contains(t, out, "2024-03-12 → 2024-03-13")
}
