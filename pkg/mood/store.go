package mood

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/moodtrack/pkg/store"
)

const (
	// StoreKey is the single backing-store key holding the whole Data map.
	StoreKey = "moods"

	// legacyKey held a bare date → index map in early builds.
	legacyKey = "moodHistory"
)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces the clock used for entry timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the calendar used to turn times into date keys.
func WithLocation(loc *time.Location) StoreOption {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store maps calendar dates to mood entries on top of a store.KV. Every
// mutation rewrites the whole map and flushes it; on failure nothing is
// applied and the cache keeps the last persisted state.
type Store struct {
	kv     store.KV
	now    func() time.Time
	loc    *time.Location
	logger *zap.Logger

	mu    sync.Mutex
	cache Data
}

// NewStore wraps kv.
func NewStore(kv store.KV, opts ...StoreOption) *Store {
	s := &Store{
		kv:     kv,
		now:    time.Now,
		loc:    time.Local,
		logger: zap.NewNop(),
		cache:  make(Data),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the date key the store uses for t.
func (s *Store) Key(t time.Time) string {
	return Key(t, s.loc)
}

// Location returns the calendar used for date keys.
func (s *Store) Location() *time.Location {
	return s.loc
}

// SaveMood records moodIndex for date, keeping any emotions or journal
// already stored for that date.
func (s *Store) SaveMood(date time.Time, moodIndex int) (Entry, error) {
	if !Valid(moodIndex) {
		return Entry{}, invalidMood(moodIndex)
	}
	key := s.Key(date)
	var saved Entry
	err := s.mutate("save", key, func(d Data) bool {
		e := d[key]
		e.Date = key
		e.MoodIndex = moodIndex
		e.Timestamp = s.now().UnixMilli()
		d[key] = e
		saved = e.clone()
		return true
	})
	if err != nil {
		return Entry{}, err
	}
	s.logger.Debug("mood saved", zap.String("date", key), zap.Int("mood", moodIndex))
	return saved, nil
}

// SaveEntry replaces the entry for date with the given mood, emotions and
// journal.
func (s *Store) SaveEntry(date time.Time, moodIndex int, emotions []string, journal string) (Entry, error) {
	if !Valid(moodIndex) {
		return Entry{}, invalidMood(moodIndex)
	}
	key := s.Key(date)
	e := Entry{
		Date:      key,
		MoodIndex: moodIndex,
		Emotions:  NormalizeEmotions(emotions),
		Journal:   journal,
	}
	err := s.mutate("save", key, func(d Data) bool {
		e.Timestamp = s.now().UnixMilli()
		d[key] = e
		return true
	})
	if err != nil {
		return Entry{}, err
	}
	s.logger.Debug("mood entry saved",
		zap.String("date", key),
		zap.Int("mood", moodIndex),
		zap.Strings("emotions", e.Emotions),
		zap.Bool("journal", e.HasJournal()))
	return e.clone(), nil
}

// GetMood returns the entry for date. A missing entry is (Entry{}, false, nil).
func (s *Store) GetMood(date time.Time) (Entry, bool, error) {
	data, err := s.GetAllMoods()
	if err != nil {
		return Entry{}, false, err
	}
	e, ok := data[s.Key(date)]
	return e, ok, nil
}

// GetAllMoods returns every entry, empty when nothing was ever written.
func (s *Store) GetAllMoods() (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, _, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	s.cache = data.Clone()
	return data, nil
}

// GetMoodsInRange returns entries between start and end inclusive, in either
// order.
func (s *Store) GetMoodsInRange(start, end time.Time) (Data, error) {
	data, err := s.GetAllMoods()
	if err != nil {
		return nil, err
	}
	return data.Range(s.Key(start), s.Key(end)), nil
}

// DeleteMood removes the entry for date. Removing a missing entry is a no-op.
func (s *Store) DeleteMood(date time.Time) error {
	key := s.Key(date)
	removed := false
	err := s.mutate("delete", key, func(d Data) bool {
		if _, ok := d[key]; !ok {
			return false
		}
		delete(d, key)
		removed = true
		return true
	})
	if err != nil {
		return err
	}
	if removed {
		s.logger.Debug("mood deleted", zap.String("date", key))
	}
	return nil
}

// ClearAllMoods persists an empty map. It cannot be undone.
func (s *Store) ClearAllMoods() error {
	err := s.mutate("clear", StoreKey, func(d Data) bool {
		for k := range d {
			delete(d, k)
		}
		return true
	})
	if err != nil {
		return err
	}
	s.logger.Info("all moods cleared")
	return nil
}

// Refresh reloads the cache from the backing store.
func (s *Store) Refresh() error {
	_, err := s.GetAllMoods()
	return err
}

// Cached returns a copy of the entries as of the last successful read or
// write, without touching the backing store.
func (s *Store) Cached() Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Clone()
}

// mutate loads the persisted map, applies fn and, when fn reports a change,
// writes and flushes the whole map.
func (s *Store) mutate(op, key string, fn func(Data) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, legacy, err := s.loadLocked()
	if err != nil {
		return err
	}
	if !fn(data) {
		s.cache = data.Clone()
		return nil
	}
	if err := s.writeLocked(op, key, data); err != nil {
		return err
	}
	if legacy {
		s.dropLegacyLocked()
	}
	return nil
}

func (s *Store) writeLocked(op, key string, data Data) error {
	if err := s.kv.Set(StoreKey, data); err != nil {
		s.kv.Discard()
		s.logger.Error("mood write failed", zap.String("op", op), zap.String("key", key), zap.Error(err))
		return &PersistenceError{Op: op, Key: key, Err: err}
	}
	if err := s.kv.Save(); err != nil {
		s.kv.Discard()
		s.logger.Error("mood flush failed", zap.String("op", op), zap.String("key", key), zap.Error(err))
		return &PersistenceError{Op: op, Key: key, Err: err}
	}
	s.cache = data.Clone()
	return nil
}

// dropLegacyLocked removes the legacy key once its entries are safely merged
// into StoreKey. Failure only leaves the old key behind.
func (s *Store) dropLegacyLocked() {
	if err := s.kv.Delete(legacyKey); err != nil {
		s.kv.Discard()
		s.logger.Warn("drop legacy moods", zap.Error(err))
		return
	}
	if err := s.kv.Save(); err != nil {
		s.kv.Discard()
		s.logger.Warn("drop legacy moods", zap.Error(err))
		return
	}
	s.logger.Info("legacy moods migrated", zap.String("from", legacyKey), zap.String("to", StoreKey))
}

// loadLocked reads the persisted map, migrating keys to canonical form and
// folding in the legacy map. The bool reports whether a legacy map exists.
func (s *Store) loadLocked() (Data, bool, error) {
	var raw map[string]Entry
	if _, err := s.kv.Get(StoreKey, &raw); err != nil {
		return nil, false, &PersistenceError{Op: "read", Key: StoreKey, Err: err}
	}
	data := make(Data, len(raw))
	for k, e := range raw {
		s.absorb(data, k, e)
	}

	var legacy map[string]int
	found, err := s.kv.Get(legacyKey, &legacy)
	if err != nil {
		// An unreadable legacy map must not block the current one.
		s.logger.Warn("read legacy moods", zap.Error(err))
		return data, false, nil
	}
	for k, idx := range legacy {
		nk, err := NormalizeKey(k)
		if err != nil {
			s.logger.Warn("dropping legacy mood", zap.String("key", k), zap.Error(err))
			continue
		}
		if _, ok := data[nk]; ok {
			continue
		}
		s.absorb(data, nk, Entry{Date: nk, MoodIndex: idx})
	}
	return data, found, nil
}

func (s *Store) absorb(data Data, key string, e Entry) {
	nk, err := NormalizeKey(key)
	if err != nil {
		s.logger.Warn("dropping mood with bad key", zap.String("key", key), zap.Error(err))
		return
	}
	if !Valid(e.MoodIndex) {
		s.logger.Warn("dropping mood with bad index", zap.String("key", key), zap.Int("mood", e.MoodIndex))
		return
	}
	if nk != key {
		s.logger.Debug("migrating mood key", zap.String("from", key), zap.String("to", nk))
	}
	e.Date = nk
	e.Emotions = NormalizeEmotions(e.Emotions)
	if prev, ok := data[nk]; ok && prev.Timestamp >= e.Timestamp {
		return
	}
	data[nk] = e
}
