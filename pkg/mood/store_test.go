package mood

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/moodtrack/pkg/store"
)

var errDiskFull = errors.New("disk full")

// flakyKV wraps a Memory store and fails on demand.
type flakyKV struct {
	*store.Memory
	failGet  bool
	failSet  bool
	failSave bool
	discards int
}

func newFlakyKV() *flakyKV {
	return &flakyKV{Memory: store.NewMemory()}
}

func (f *flakyKV) Get(key string, v any) (bool, error) {
	if f.failGet {
		return false, errDiskFull
	}
	return f.Memory.Get(key, v)
}

func (f *flakyKV) Set(key string, v any) error {
	if f.failSet {
		return errDiskFull
	}
	return f.Memory.Set(key, v)
}

func (f *flakyKV) Save() error {
	if f.failSave {
		return errDiskFull
	}
	return f.Memory.Save()
}

func (f *flakyKV) Discard() {
	f.discards++
	f.Memory.Discard()
}

var fixedNow = time.Date(2024, time.March, 20, 10, 30, 0, 0, time.UTC)

func newTestStore(kv store.KV) *Store {
	return NewStore(kv, WithClock(func() time.Time { return fixedNow }), WithLocation(time.UTC))
}

func onDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	s := newTestStore(store.NewMemory())

	for idx := MinIndex; idx <= MaxIndex; idx++ {
		date := onDay(2024, time.March, 10+idx)
		saved, err := s.SaveMood(date, idx)
		require.NoError(t, err)
		assert.Equal(t, fixedNow.UnixMilli(), saved.Timestamp)

		got, ok, err := s.GetMood(date)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, idx, got.MoodIndex)
		assert.Equal(t, Key(date, time.UTC), got.Date)
	}
}

func TestSaveMoodKeysByCalendarDate(t *testing.T) {
	s := newTestStore(store.NewMemory())

	_, err := s.SaveMood(time.Date(2024, time.March, 15, 23, 59, 0, 0, time.UTC), 3)
	require.NoError(t, err)

	all, err := s.GetAllMoods()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-15"}, all.Keys())
	assert.Equal(t, 3, all["2024-03-15"].MoodIndex)

	require.NoError(t, s.ClearAllMoods())
	all, err = s.GetAllMoods()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSaveMoodLastWriteWins(t *testing.T) {
	s := newTestStore(store.NewMemory())

	_, err := s.SaveMood(onDay(2024, time.March, 15), 1)
	require.NoError(t, err)
	_, err = s.SaveMood(onDay(2024, time.March, 15), 4)
	require.NoError(t, err)

	all, err := s.GetAllMoods()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 4, all["2024-03-15"].MoodIndex)
}

func TestSaveMoodKeepsEmotionsAndJournal(t *testing.T) {
	s := newTestStore(store.NewMemory())

	_, err := s.SaveEntry(onDay(2024, time.March, 15), 3, []string{" Grateful", "grateful", "Tired", ""}, "long walk")
	require.NoError(t, err)
	_, err = s.SaveMood(onDay(2024, time.March, 15), 2)
	require.NoError(t, err)

	got, ok, err := s.GetMood(onDay(2024, time.March, 15))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, got.MoodIndex)
	assert.Equal(t, []string{"Grateful", "Tired"}, got.Emotions)
	assert.Equal(t, "long walk", got.Journal)
}

func TestGetMoodMissing(t *testing.T) {
	s := newTestStore(store.NewMemory())

	got, ok, err := s.GetMood(onDay(2024, time.January, 1))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Entry{}, got)

	all, err := s.GetAllMoods()
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestSaveMoodRejectsInvalidIndex(t *testing.T) {
	kv := newFlakyKV()
	s := newTestStore(kv)
	_, err := s.SaveMood(onDay(2024, time.March, 14), 2)
	require.NoError(t, err)

	for _, idx := range []int{-1, 5, 99} {
		_, err := s.SaveMood(onDay(2024, time.March, 15), idx)
		require.Error(t, err)
		assert.True(t, IsValidation(err), "idx %d: %v", idx, err)
		assert.ErrorIs(t, err, ErrInvalidMood)

		_, err = s.SaveEntry(onDay(2024, time.March, 15), idx, nil, "")
		assert.True(t, IsValidation(err))
	}

	all, err := s.GetAllMoods()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-14"}, all.Keys())
	assert.Zero(t, kv.discards)
}

func TestDeleteMoodIdempotent(t *testing.T) {
	s := newTestStore(store.NewMemory())
	_, err := s.SaveMood(onDay(2024, time.March, 15), 3)
	require.NoError(t, err)

	require.NoError(t, s.DeleteMood(onDay(2024, time.March, 15)))
	require.NoError(t, s.DeleteMood(onDay(2024, time.March, 15)))

	_, ok, err := s.GetMood(onDay(2024, time.March, 15))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPersistenceFailureLeavesStateUntouched(t *testing.T) {
	tests := []struct {
		name string
		fail func(*flakyKV)
	}{
		{name: "write", fail: func(f *flakyKV) { f.failSet = true }},
		{name: "flush", fail: func(f *flakyKV) { f.failSave = true }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kv := newFlakyKV()
			s := newTestStore(kv)
			_, err := s.SaveMood(onDay(2024, time.March, 14), 1)
			require.NoError(t, err)
			before := s.Cached()

			tc.fail(kv)
			_, err = s.SaveMood(onDay(2024, time.March, 15), 3)
			require.Error(t, err)
			assert.True(t, IsPersistence(err))
			assert.ErrorIs(t, err, errDiskFull)

			var perr *PersistenceError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "2024-03-15", perr.Key)

			assert.Equal(t, 1, kv.discards)
			assert.Equal(t, before, s.Cached())

			kv.failSet, kv.failSave = false, false
			all, err := s.GetAllMoods()
			require.NoError(t, err)
			assert.Equal(t, []string{"2024-03-14"}, all.Keys())
		})
	}
}

func TestReadFailureIsPersistenceError(t *testing.T) {
	kv := newFlakyKV()
	s := newTestStore(kv)
	kv.failGet = true

	_, _, err := s.GetMood(onDay(2024, time.March, 15))
	require.Error(t, err)
	assert.True(t, IsPersistence(err))

	_, err = s.SaveMood(onDay(2024, time.March, 15), 2)
	assert.True(t, IsPersistence(err))
}

func TestGetMoodsInRange(t *testing.T) {
	s := newTestStore(store.NewMemory())
	for d := 1; d <= 10; d++ {
		_, err := s.SaveMood(onDay(2024, time.February, 25).AddDate(0, 0, d), d%5)
		require.NoError(t, err)
	}

	got, err := s.GetMoodsInRange(onDay(2024, time.March, 4), onDay(2024, time.February, 28))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04"}, got.Keys())
}

func TestLoadMigratesKeys(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Set(StoreKey, map[string]Entry{
		"2024-3-5":             {MoodIndex: 1, Timestamp: 10},
		"2024-03-05":           {MoodIndex: 4, Timestamp: 20},
		"2024-03-06T08:00:00Z": {MoodIndex: 2, Timestamp: 5},
		"15":                   {MoodIndex: 3, Timestamp: 5},
		"2024-03-07":           {MoodIndex: 42, Timestamp: 5},
	}))
	require.NoError(t, kv.Save())

	s := newTestStore(kv)
	all, err := s.GetAllMoods()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-05", "2024-03-06"}, all.Keys())
	assert.Equal(t, 4, all["2024-03-05"].MoodIndex)
	assert.Equal(t, "2024-03-06", all["2024-03-06"].Date)
}

func TestLoadMigratesLegacyHistory(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Set(legacyKey, map[string]int{"2024-3-1": 0, "2024-03-02": 3}))
	require.NoError(t, kv.Set(StoreKey, map[string]Entry{"2024-03-02": {MoodIndex: 1, Timestamp: 1}}))
	require.NoError(t, kv.Save())

	s := newTestStore(kv)
	all, err := s.GetAllMoods()
	require.NoError(t, err)
	assert.Equal(t, 0, all["2024-03-01"].MoodIndex)
	assert.Equal(t, 1, all["2024-03-02"].MoodIndex)

	_, err = s.SaveMood(onDay(2024, time.March, 3), 2)
	require.NoError(t, err)

	var legacy map[string]int
	ok, err := kv.Get(legacyKey, &legacy)
	require.NoError(t, err)
	assert.False(t, ok)

	all, err = s.GetAllMoods()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01", "2024-03-02", "2024-03-03"}, all.Keys())
}

func TestCachedIsACopy(t *testing.T) {
	s := newTestStore(store.NewMemory())
	_, err := s.SaveEntry(onDay(2024, time.March, 15), 3, []string{"Happy"}, "")
	require.NoError(t, err)

	c := s.Cached()
	e := c["2024-03-15"]
	e.Emotions[0] = "Sad"
	delete(c, "2024-03-15")

	again := s.Cached()
	require.Contains(t, again, "2024-03-15")
	assert.Equal(t, []string{"Happy"}, again["2024-03-15"].Emotions)
}

func TestRefreshPicksUpExternalWrites(t *testing.T) {
	kv := store.NewMemory()
	s := newTestStore(kv)
	require.NoError(t, s.Refresh())
	assert.Empty(t, s.Cached())

	other := newTestStore(kv)
	_, err := other.SaveMood(onDay(2024, time.March, 15), 4)
	require.NoError(t, err)

	assert.Empty(t, s.Cached())
	require.NoError(t, s.Refresh())
	assert.Equal(t, []string{"2024-03-15"}, s.Cached().Keys())
}

func TestStoreOnDiskSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	kv, err := store.OpenDisk(dir)
	require.NoError(t, err)
	_, err = newTestStore(kv).SaveEntry(onDay(2024, time.March, 15), 3, []string{"Peaceful"}, "quiet day")
	require.NoError(t, err)
	require.NoError(t, kv.Close())

	kv, err = store.OpenDisk(dir)
	require.NoError(t, err)
	defer kv.Close()
	got, ok, err := newTestStore(kv).GetMood(onDay(2024, time.March, 15))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "quiet day", got.Journal)
	assert.Equal(t, []string{"Peaceful"}, got.Emotions)
}
