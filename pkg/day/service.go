package day

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval is how often the monitor polls the clock for a rollover.
const DefaultInterval = time.Minute

// Clock reports the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads time.Now.
var SystemClock Clock = ClockFunc(time.Now)

// CallbackError wraps a panic recovered from a subscriber.
type CallbackError struct {
	Value any
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("day: subscriber failed: %v", e.Value)
}

// Unwrap returns the panic value when it was an error.
func (e *CallbackError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithInterval sets the monitor polling interval.
func WithInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLocation sets the calendar used to decide which date "now" is.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger attaches a logger for rollovers and subscriber failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// Service tracks the last observed calendar date and broadcasts rollovers to
// subscribers. The zero value is not usable; construct with New.
type Service struct {
	clock    Clock
	loc      *time.Location
	interval time.Duration
	logger   *zap.Logger

	mu           sync.Mutex
	lastObserved string
	subs         map[uint64]func(Info)
	nextID       uint64

	// monitorMu serializes StartMonitoring/StopMonitoring. It is separate from
	// mu because the monitor goroutine takes mu on every tick.
	monitorMu sync.Mutex
	monitor   *monitor
}

type monitor struct {
	stop chan struct{}
	done chan struct{}
}

// New builds a Service whose last observed date is today.
func New(opts ...Option) *Service {
	s := &Service{
		clock:    SystemClock,
		loc:      time.Local,
		interval: DefaultInterval,
		logger:   zap.NewNop(),
		subs:     make(map[uint64]func(Info)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastObserved = dateString(s.now())
	return s
}

// Interval returns the monitor polling interval.
func (s *Service) Interval() time.Duration {
	return s.interval
}

// Location returns the calendar location the service uses.
func (s *Service) Location() *time.Location {
	return s.loc
}

func (s *Service) now() time.Time {
	return s.clock.Now().In(s.loc)
}

// CurrentDayInfo returns the Info for now. The first call after the date
// changes reports IsNewDay and records the new date; later calls on the same
// date do not.
func (s *Service) CurrentDayInfo() Info {
	now := s.now()
	current := dateString(now)

	s.mu.Lock()
	isNewDay := s.lastObserved != current
	if isNewDay {
		s.lastObserved = current
	}
	s.mu.Unlock()

	return newInfo(now, true, isNewDay)
}

// DayInfo returns the Info for t. IsNewDay is always false.
func (s *Service) DayInfo(t time.Time) Info {
	t = t.In(s.loc)
	return newInfo(t, dateString(t) == dateString(s.now()), false)
}

// IsToday reports whether t falls on the current calendar date.
func (s *Service) IsToday(t time.Time) bool {
	return dateString(t.In(s.loc)) == dateString(s.now())
}

// StartOfWeek returns midnight of the Monday on or before t.
func (s *Service) StartOfWeek(t time.Time) time.Time {
	t = t.In(s.loc)
	// Sunday is the seventh day of an ISO week, not the first.
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, s.loc)
}

// IsCurrentWeek reports whether t falls in the Monday-first week containing now.
func (s *Service) IsCurrentWeek(t time.Time) bool {
	start := s.StartOfWeek(s.now())
	end := start.AddDate(0, 0, 7)
	t = t.In(s.loc)
	return !t.Before(start) && t.Before(end)
}

// WeekData returns the seven days of the current week, Monday first.
func (s *Service) WeekData() []Info {
	return s.Week(s.now())
}

// Week returns the seven days of the week containing t, Monday first.
func (s *Service) Week(t time.Time) []Info {
	start := s.StartOfWeek(t)
	week := make([]Info, 0, 7)
	for i := 0; i < 7; i++ {
		d := time.Date(start.Year(), start.Month(), start.Day()+i, 0, 0, 0, 0, s.loc)
		week = append(week, s.DayInfo(d))
	}
	return week
}

// CheckForNewDay compares the clock against the last observed date. On a
// change it records the new date, notifies every subscriber once and returns
// true. Otherwise it returns false and does nothing.
func (s *Service) CheckForNewDay() bool {
	now := s.now()
	current := dateString(now)

	s.mu.Lock()
	if s.lastObserved == current {
		s.mu.Unlock()
		return false
	}
	previous := s.lastObserved
	s.lastObserved = current
	callbacks := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("day rollover",
		zap.String("from", previous),
		zap.String("to", current),
		zap.Int("subscribers", len(callbacks)))

	info := newInfo(now, true, true)
	for _, cb := range callbacks {
		s.notify(cb, info)
	}
	return true
}

// snapshotLocked returns subscribers in registration order.
func (s *Service) snapshotLocked() []func(Info) {
	ids := make([]uint64, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]func(Info), 0, len(ids))
	for _, id := range ids {
		out = append(out, s.subs[id])
	}
	return out
}

func (s *Service) notify(cb func(Info), info Info) {
	defer func() {
		if r := recover(); r != nil {
			err := &CallbackError{Value: r}
			s.logger.Error("day subscriber failed", zap.Error(err), zap.String("date", info.Key()))
		}
	}()
	cb(info)
}

// Subscribe registers cb for rollover notifications. The returned function
// removes exactly this registration and may be called more than once.
func (s *Service) Subscribe(cb func(Info)) func() {
	if cb == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs[id] = cb
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Subscribers returns the number of live subscriptions.
func (s *Service) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// StartMonitoring polls CheckForNewDay every Interval. A running monitor is
// stopped first, so at most one is ever active.
func (s *Service) StartMonitoring() {
	s.monitorMu.Lock()
	defer s.monitorMu.Unlock()
	s.stopLocked()

	m := &monitor{stop: make(chan struct{}), done: make(chan struct{})}
	s.monitor = m
	go s.run(m, s.interval)
	s.logger.Debug("day monitoring started", zap.Duration("interval", s.interval))
}

func (s *Service) run(m *monitor, interval time.Duration) {
	defer close(m.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			s.CheckForNewDay()
		}
	}
}

// StopMonitoring stops the monitor and waits for it to exit. It is a no-op
// when monitoring is not running. It must not be called from a subscriber.
func (s *Service) StopMonitoring() {
	s.monitorMu.Lock()
	defer s.monitorMu.Unlock()
	s.stopLocked()
}

func (s *Service) stopLocked() {
	if s.monitor == nil {
		return
	}
	close(s.monitor.stop)
	<-s.monitor.done
	s.monitor = nil
	s.logger.Debug("day monitoring stopped")
}

// Monitoring reports whether the monitor is running.
func (s *Service) Monitoring() bool {
	s.monitorMu.Lock()
	defer s.monitorMu.Unlock()
	return s.monitor != nil
}

// Reset re-reads today's date, drops every subscriber and stops monitoring.
func (s *Service) Reset() {
	s.StopMonitoring()
	s.mu.Lock()
	s.lastObserved = dateString(s.now())
	s.subs = make(map[uint64]func(Info))
	s.mu.Unlock()
}
