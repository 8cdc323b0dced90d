// Package stats summarises logged moods.
package stats

import (
	"context"
	"errors"

	"tableflip.dev/moodtrack/pkg/app"
	"tableflip.dev/moodtrack/pkg/printers"
	"tableflip.dev/moodtrack/pkg/timeutil"
)

// Stats prints all-time stats, or a report over the last Window when set.
type Stats struct {
	App     *app.App
	Window  string
	JSON    bool
	Printer *printers.PrettyPrint
}

func (n *Stats) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not compute stats, no app")
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}

	if n.Window == "" {
		st, err := n.App.Moods.Stats()
		if err != nil {
			return err
		}
		if n.JSON {
			return pp.JSON(st)
		}
		pp.NewLine()
		pp.Stats("All time", st)
		return nil
	}

	w, err := timeutil.ParseWindow(n.Window)
	if err != nil {
		return err
	}
	r, err := n.App.Report(w)
	if err != nil {
		return err
	}
	if n.JSON {
		return pp.JSON(r)
	}
	pp.NewLine()
	pp.Stats("Last "+r.Label, r.Stats)
	if len(r.Missing) > 0 {
		pp.TitleWithCount("Not logged", len(r.Missing))
		for _, k := range r.Missing {
			pp.Empty(k)
		}
	}
	return nil
}
