// Package app wires the day service and mood store together so the CLI,
// the terminal UI and the MCP server share one composition.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/moodtrack/pkg/day"
	"tableflip.dev/moodtrack/pkg/mood"
	"tableflip.dev/moodtrack/pkg/store"
)

// ErrNoWatch is returned by Follow when the backing store cannot report
// changes.
var ErrNoWatch = errors.New("app: backing store does not support watching")

// Option configures an App.
type Option func(*options)

type options struct {
	clock    day.Clock
	loc      *time.Location
	logger   *zap.Logger
	interval time.Duration
}

// WithClock drives both services from clock.
func WithClock(c day.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLocation sets the calendar used for dates.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.loc = loc }
}

// WithLogger sets the logger handed to both services.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithInterval overrides the day monitor polling interval.
func WithInterval(d time.Duration) Option {
	return func(o *options) { o.interval = d }
}

// App owns one day service, one mood store and the backing store under it.
type App struct {
	Days  *day.Service
	Moods *mood.Store
	KV    store.KV

	clock  day.Clock
	logger *zap.Logger

	mu       sync.Mutex
	ready    bool
	disposed bool
	cancels  []context.CancelFunc
}

// New opens the backend named by cfg and builds an App on it.
func New(cfg store.Config, opts ...Option) (*App, error) {
	kv, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("app: open store: %w", err)
	}
	if cfg != nil && cfg.MonitorInterval() > 0 {
		opts = append([]Option{WithInterval(cfg.MonitorInterval())}, opts...)
	}
	return NewWithKV(kv, opts...), nil
}

// NewWithKV builds an App on an already open backing store.
func NewWithKV(kv store.KV, opts ...Option) *App {
	o := &options{
		clock:  day.SystemClock,
		loc:    time.Local,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if ls, ok := kv.(store.LogSetter); ok {
		ls.SetLogger(o.logger.Named("store"))
	}

	dayOpts := []day.Option{
		day.WithClock(o.clock),
		day.WithLocation(o.loc),
		day.WithLogger(o.logger.Named("day")),
	}
	if o.interval > 0 {
		dayOpts = append(dayOpts, day.WithInterval(o.interval))
	}

	return &App{
		Days: day.New(dayOpts...),
		Moods: mood.NewStore(kv,
			mood.WithClock(o.clock.Now),
			mood.WithLocation(o.loc),
			mood.WithLogger(o.logger.Named("mood"))),
		KV:     kv,
		clock:  o.clock,
		logger: o.logger,
	}
}

// Initialize loads the mood cache and starts the day monitor. Calling it
// again is a no-op.
func (a *App) Initialize(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disposed {
		return errors.New("app: initialize after dispose")
	}
	if a.ready {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.Moods.Refresh(); err != nil {
		return err
	}
	a.Days.StartMonitoring()
	a.ready = true
	a.logger.Debug("app initialized", zap.Duration("interval", a.Days.Interval()))
	return nil
}

// Dispose stops the day monitor, ends every Follow and closes the backing
// store. It is safe to call more than once.
func (a *App) Dispose() error {
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return nil
	}
	a.disposed = true
	cancels := a.cancels
	a.cancels = nil
	a.mu.Unlock()

	a.Days.StopMonitoring()
	for _, cancel := range cancels {
		cancel()
	}
	if err := a.KV.Close(); err != nil {
		return fmt.Errorf("app: close store: %w", err)
	}
	a.logger.Debug("app disposed")
	return nil
}

// Follow watches the backing store for outside changes. Each change
// refreshes the mood cache before it is delivered. The channel closes when
// ctx is done or the App is disposed.
func (a *App) Follow(ctx context.Context) (<-chan store.Event, error) {
	w, ok := a.KV.(store.Watcher)
	if !ok {
		return nil, ErrNoWatch
	}

	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return nil, errors.New("app: follow after dispose")
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancels = append(a.cancels, cancel)
	a.mu.Unlock()

	events, err := w.Watch(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan store.Event)
	go func() {
		defer close(out)
		for ev := range events {
			if ev.Type == store.EventInvalidated || ev.Key == mood.StoreKey {
				if err := a.Moods.Refresh(); err != nil {
					a.logger.Warn("refresh after store change", zap.Error(err))
				}
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Now reads the App's clock.
func (a *App) Now() time.Time {
	return a.clock.Now()
}

// Today returns the current day and its entry, if logged. It does not
// consume a pending day rollover.
func (a *App) Today() (DayMood, error) {
	info := a.Days.DayInfo(a.Now())
	e, ok, err := a.Moods.GetMood(info.Time(a.Days.Location()))
	if err != nil {
		return DayMood{}, err
	}
	return DayMood{Info: info, Entry: e, Logged: ok}, nil
}

// Logger returns the logger the app was built with.
func (a *App) Logger() *zap.Logger { return a.logger }
