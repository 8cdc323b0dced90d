// Package watch follows day rollovers and outside changes to the store.
package watch

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"tableflip.dev/moodtrack/pkg/app"
	"tableflip.dev/moodtrack/pkg/day"
	"tableflip.dev/moodtrack/pkg/store"
)

// Watch prints a line for every new day and every store change until ctx is
// done.
type Watch struct {
	App *app.App
	Out io.Writer
}

func (n *Watch) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not watch, no app")
	}
	w := n.Out
	if w == nil {
		w = color.Output
	}
	b := color.New(color.Bold)
	f := color.New(color.Faint)

	if err := n.App.Initialize(ctx); err != nil {
		return err
	}

	days := make(chan day.Info, 1)
	unsubscribe := n.App.Days.Subscribe(func(info day.Info) {
		select {
		case days <- info:
		default:
		}
	})
	defer unsubscribe()

	events, err := n.App.Follow(ctx)
	if errors.Is(err, app.ErrNoWatch) {
		events = nil
	} else if err != nil {
		return err
	}

	today, err := n.App.Today()
	if err != nil {
		return err
	}
	_, _ = f.Fprintf(w, "watching from %s %s, every %s\n", today.Info.DayName, today.Key(), n.App.Days.Interval())

	for {
		select {
		case <-ctx.Done():
			return nil
		case info := <-days:
			_, _ = b.Fprintf(w, "new day: %s %s\n", info.DayName, info.Key())
			e, ok, err := n.App.Moods.GetMood(info.Time(n.App.Days.Location()))
			if err != nil {
				n.App.Logger().Warn("read mood", zap.String("day", info.Key()), zap.Error(err))
				continue
			}
			if !ok {
				_, _ = f.Fprintln(w, "  no mood logged yet")
			} else {
				_, _ = f.Fprintf(w, "  already logged: %s\n", e.Label())
			}
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			describe(w, f, ev, len(n.App.Moods.Cached()))
		}
	}
}

func describe(w io.Writer, f *color.Color, ev store.Event, count int) {
	switch ev.Type {
	case store.EventInvalidated:
		_, _ = f.Fprintf(w, "store changed, %d entries\n", count)
	default:
		_, _ = f.Fprintf(w, "%s changed, %d entries\n", ev.Key, count)
	}
}
