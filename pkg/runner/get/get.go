// Package get shows the entry for one day.
package get

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/moodtrack/pkg/app"
	"tableflip.dev/moodtrack/pkg/mood"
	"tableflip.dev/moodtrack/pkg/printers"
)

type Get struct {
	App     *app.App
	Date    time.Time
	JSON    bool
	Printer *printers.PrettyPrint
}

type result struct {
	Date   string      `json:"date"`
	Logged bool        `json:"logged"`
	Entry  *mood.Entry `json:"entry,omitempty"`
}

func (n *Get) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not get, no app")
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}

	key := n.App.Moods.Key(n.Date)
	e, ok, err := n.App.Moods.GetMood(n.Date)
	if err != nil {
		return err
	}
	if n.JSON {
		r := result{Date: key, Logged: ok}
		if ok {
			r.Entry = &e
		}
		return pp.JSON(r)
	}

	pp.NewLine()
	if !ok {
		pp.Title(key)
		pp.Empty("no mood logged")
		return nil
	}
	pp.Entry(e)
	pp.NewLine()
	return nil
}
