// Package list prints entries in a date range.
package list

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/moodtrack/pkg/app"
	"tableflip.dev/moodtrack/pkg/mood"
	"tableflip.dev/moodtrack/pkg/printers"
)

// List prints entries between From and To inclusive. A zero From lists
// everything up to To.
type List struct {
	App     *app.App
	From    time.Time
	To      time.Time
	JSON    bool
	Printer *printers.PrettyPrint
}

func (n *List) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not list, no app")
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}

	var (
		data mood.Data
		err  error
	)
	if n.From.IsZero() {
		data, err = n.App.Moods.GetAllMoods()
		if err == nil {
			data = data.Range("", n.App.Moods.Key(n.To))
		}
	} else {
		data, err = n.App.Moods.GetMoodsInRange(n.From, n.To)
	}
	if err != nil {
		return err
	}

	entries := data.Sorted()
	if n.JSON {
		return pp.JSON(entries)
	}

	title := "Moods"
	if !n.From.IsZero() {
		title = fmt.Sprintf("Moods %s → %s", n.App.Moods.Key(n.From), n.App.Moods.Key(n.To))
	}
	pp.NewLine()
	pp.TitleWithCount(title, len(entries))
	pp.Entries(entries...)
	return nil
}
