package options

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	now := time.Date(2024, time.January, 3, 15, 0, 0, 0, time.UTC)
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "2024-01-03"},
		{in: "today", want: "2024-01-03"},
		{in: "Yesterday", want: "2024-01-02"},
		{in: "2023-12-31", want: "2023-12-31"},
		{in: "2024-2-9", want: "2024-02-09"},
		{in: "1/2", want: "2024-01-02"},
		{in: "12/30", want: "2023-12-30"},
		{in: "15", wantErr: true},
		{in: "someday", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDate(tc.in, now, time.UTC)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Format("2006-01-02"))
		})
	}
}

func TestParseDateLeapDay(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		want    string
		wantErr bool
	}{
		{name: "leap year", now: time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC), want: "2024-02-29"},
		{name: "common year", now: time.Date(2025, time.March, 5, 9, 0, 0, 0, time.UTC), wantErr: true},
		{name: "rolls back to common year", now: time.Date(2024, time.January, 3, 9, 0, 0, 0, time.UTC), wantErr: true},
		{name: "rolls back to leap year", now: time.Date(2025, time.January, 3, 9, 0, 0, 0, time.UTC), want: "2024-02-29"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate("2/29", tc.now, time.UTC)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Format("2006-01-02"))
		})
	}
}

func TestRange(t *testing.T) {
	now := time.Date(2024, time.March, 13, 8, 0, 0, 0, time.UTC)

	o := &RangeOptions{}
	from, to, err := o.GetRange(now, time.UTC)
	require.NoError(t, err)
	assert.True(t, from.IsZero())
	assert.Equal(t, "2024-03-13", to.Format("2006-01-02"))
	assert.False(t, o.Bounded())

	o = &RangeOptions{From: "3/1", To: "2024-3-5"}
	from, to, err = o.GetRange(now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", from.Format("2006-01-02"))
	assert.Equal(t, "2024-03-05", to.Format("2006-01-02"))
	assert.True(t, o.Bounded())
}

func TestCompletions(t *testing.T) {
	assert.Equal(t, []string{"Tired"}, EmotionCompletions("ti"))
	assert.Equal(t, []string{"happy"}, MoodCompletions("Ha"))
	assert.Len(t, MoodCompletions(""), 5)
}
