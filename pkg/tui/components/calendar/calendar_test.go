package calendar

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWeek(t *testing.T) {
	days := []Day{
		{Abbrev: "M", Date: 11, MoodIndex: 4, Logged: true},
		{Abbrev: "T", Date: 12},
		{Abbrev: "W", Date: 13, IsToday: true, IsSelected: true},
		{Abbrev: "T", Date: 14, IsFuture: true},
		{Abbrev: "F", Date: 15, IsFuture: true},
		{Abbrev: "S", Date: 16, IsFuture: true},
		{Abbrev: "S", Date: 17, IsFuture: true},
	}
	out := RenderWeek(days, DefaultOptions())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)

	for _, want := range []string{"11", "13", "17"} {
		assert.Contains(t, lines[1], want)
	}
	assert.Contains(t, lines[2], "▲")

	width := ansi.PrintableRuneWidth(lines[1])
	for _, line := range lines {
		assert.Equal(t, width, ansi.PrintableRuneWidth(line))
	}
	assert.Equal(t, 7*cellWidth+6, width)
}

func TestRenderWeekEmpty(t *testing.T) {
	assert.Empty(t, RenderWeek(nil, DefaultOptions()))
}
