package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"tableflip.dev/moodtrack/pkg/day"
	"tableflip.dev/moodtrack/pkg/mood"
	"tableflip.dev/moodtrack/pkg/store"
	"tableflip.dev/moodtrack/pkg/timeutil"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Wednesday.
var wednesday = time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, kv store.KV) (*App, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: wednesday}
	a := NewWithKV(kv, WithClock(clock), WithLocation(time.UTC), WithInterval(5*time.Millisecond))
	t.Cleanup(func() { _ = a.Dispose() })
	return a, clock
}

func TestInitializeAndDispose(t *testing.T) {
	defer goleak.VerifyNone(t)

	kv := store.NewMemory()
	seed := mood.NewStore(kv, mood.WithLocation(time.UTC))
	_, err := seed.SaveMood(wednesday, 4)
	require.NoError(t, err)

	a := NewWithKV(kv, WithClock(day.ClockFunc(func() time.Time { return wednesday })), WithLocation(time.UTC))
	assert.Empty(t, a.Moods.Cached())

	require.NoError(t, a.Initialize(context.Background()))
	require.NoError(t, a.Initialize(context.Background()))
	assert.True(t, a.Days.Monitoring())
	assert.Equal(t, []string{"2024-03-13"}, a.Moods.Cached().Keys())

	require.NoError(t, a.Dispose())
	require.NoError(t, a.Dispose())
	assert.False(t, a.Days.Monitoring())
	assert.Error(t, a.Initialize(context.Background()))

	_, _, err = a.Moods.GetMood(wednesday)
	assert.ErrorIs(t, err, store.ErrClosed)
}

func TestInitializeCancelled(t *testing.T) {
	a, _ := newTestApp(t, store.NewMemory())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, a.Initialize(ctx), context.Canceled)
	assert.False(t, a.Days.Monitoring())
}

func TestWeek(t *testing.T) {
	a, _ := newTestApp(t, store.NewMemory())
	for _, d := range []int{11, 13, 17, 18} {
		_, err := a.Moods.SaveMood(time.Date(2024, time.March, d, 8, 0, 0, 0, time.UTC), d%5)
		require.NoError(t, err)
	}

	w, err := a.CurrentWeek()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", w.Start)
	assert.True(t, w.Current)
	require.Len(t, w.Days, 7)
	assert.Equal(t, "M", w.Days[0].Info.DayAbbrev)
	assert.Equal(t, "S", w.Days[6].Info.DayAbbrev)
	assert.Equal(t, "2024-03-17", w.Days[6].Key())
	assert.True(t, w.Days[2].Info.IsToday)
	assert.Equal(t, 3, w.Logged())
	assert.Equal(t, 1, w.Days[0].Entry.MoodIndex)
	assert.False(t, w.Days[1].Logged)

	next, err := a.Week(time.Date(2024, time.March, 18, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, next.Current)
	assert.Equal(t, 1, next.Logged())

	require.NoError(t, a.Moods.Refresh())
	cached := a.CachedWeek(wednesday)
	assert.Equal(t, w, cached)
}

func TestMonth(t *testing.T) {
	a, _ := newTestApp(t, store.NewMemory())
	_, err := a.Moods.SaveMood(time.Date(2024, time.February, 29, 8, 0, 0, 0, time.UTC), 3)
	require.NoError(t, err)

	m, err := a.Month(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2024, m.Year)
	assert.Equal(t, 2, m.Month)
	// 2024-02-01 is a Thursday.
	assert.Equal(t, 3, m.Lead)
	require.Len(t, m.Days, 29)
	assert.True(t, m.Days[28].Logged)
	assert.Equal(t, "Happy", m.Days[28].Entry.Label())
}

func TestReport(t *testing.T) {
	a, _ := newTestApp(t, store.NewMemory())
	for _, d := range []int{1, 11, 12, 13} {
		_, err := a.Moods.SaveMood(time.Date(2024, time.March, d, 8, 0, 0, 0, time.UTC), 2)
		require.NoError(t, err)
	}

	w, err := timeutil.ParseWindow("5d")
	require.NoError(t, err)
	r, err := a.Report(w)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC), r.Since)
	assert.Equal(t, time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC), r.Until)
	assert.Equal(t, "5d", r.Label)
	assert.Equal(t, 3, r.Stats.Total)
	assert.Equal(t, 3, r.Stats.Streak)
	assert.Equal(t, []string{"2024-03-09", "2024-03-10"}, r.Missing)
	require.Len(t, r.Entries, 3)
	assert.Equal(t, "2024-03-11", r.Entries[0].Date)
}

func TestTodayDoesNotConsumeRollover(t *testing.T) {
	a, clock := newTestApp(t, store.NewMemory())

	got := make(chan day.Info, 1)
	a.Days.Subscribe(func(info day.Info) { got <- info })

	clock.Set(wednesday.AddDate(0, 0, 1))
	today, err := a.Today()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-14", today.Key())
	assert.False(t, today.Logged)

	require.True(t, a.Days.CheckForNewDay())
	info := <-got
	assert.True(t, info.IsNewDay)
	assert.Equal(t, "2024-03-14", info.Key())
}

func TestFollowRefreshesCache(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	kv, err := store.OpenDisk(dir)
	require.NoError(t, err)
	a := NewWithKV(kv, WithLocation(time.UTC))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, err := a.Follow(ctx)
	require.NoError(t, err)

	other, err := store.OpenDisk(dir)
	require.NoError(t, err)
	_, err = mood.NewStore(other, mood.WithLocation(time.UTC)).SaveMood(wednesday, 1)
	require.NoError(t, err)
	require.NoError(t, other.Close())

	timeout := time.After(3 * time.Second)
	for seen := false; !seen; {
		select {
		case ev := <-events:
			seen = ev.Key == mood.StoreKey || ev.Type == store.EventInvalidated
		case <-timeout:
			t.Fatal("timed out waiting for store event")
		}
	}
	assert.Contains(t, a.Moods.Cached(), "2024-03-13")

	require.NoError(t, a.Dispose())
	for range events {
	}
}

func TestFollowAfterLocalReadKeepsOtherWrites(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	kv, err := store.OpenDisk(dir)
	require.NoError(t, err)
	a := NewWithKV(kv, WithLocation(time.UTC))

	_, err = a.Moods.SaveMood(wednesday, 2)
	require.NoError(t, err)
	require.NoError(t, a.Moods.Refresh())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, err := a.Follow(ctx)
	require.NoError(t, err)

	other, err := store.OpenDisk(dir)
	require.NoError(t, err)
	_, err = mood.NewStore(other, mood.WithLocation(time.UTC)).SaveMood(wednesday.AddDate(0, 0, 1), 4)
	require.NoError(t, err)
	require.NoError(t, other.Close())

	timeout := time.After(3 * time.Second)
	for {
		select {
		case <-events:
		case <-timeout:
			t.Fatal("timed out waiting for the other write")
		}
		if _, ok := a.Moods.Cached()["2024-03-14"]; ok {
			break
		}
	}

	all, err := a.Moods.GetAllMoods()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-13", "2024-03-14"}, all.Keys())

	_, err = a.Moods.SaveMood(wednesday.AddDate(0, 0, 2), 3)
	require.NoError(t, err)
	require.NoError(t, a.Dispose())
	for range events {
	}

	reopened, err := store.OpenDisk(dir)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := mood.NewStore(reopened, mood.WithLocation(time.UTC)).GetAllMoods()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-13", "2024-03-14", "2024-03-15"}, got.Keys())
}

func TestFollowWithoutWatcher(t *testing.T) {
	a, _ := newTestApp(t, store.NewMemory())
	_, err := a.Follow(context.Background())
	assert.ErrorIs(t, err, ErrNoWatch)
}

func TestLoggerHandedToStore(t *testing.T) {
	dir := t.TempDir()
	kv, err := store.OpenDisk(dir)
	require.NoError(t, err)

	logger := zap.NewExample()
	a := NewWithKV(kv, WithLogger(logger))
	assert.Same(t, logger, a.Logger())
	assert.NotNil(t, NewWithKV(store.NewMemory()).Logger())
}
