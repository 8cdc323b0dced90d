// Package calendar prints week and month views.
package calendar

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/moodtrack/pkg/app"
	"tableflip.dev/moodtrack/pkg/printers"
)

// Week prints the Monday-first week containing Date.
type Week struct {
	App     *app.App
	Date    time.Time
	JSON    bool
	Printer *printers.PrettyPrint
}

func (n *Week) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not show week, no app")
	}
	w, err := n.App.Week(n.Date)
	if err != nil {
		return err
	}
	pp := printer(n.Printer)
	if n.JSON {
		return pp.JSON(w)
	}
	pp.NewLine()
	title := "Week of " + w.Start
	if w.Current {
		title = "This week"
	}
	pp.Title(title)
	pp.Week(w)
	return nil
}

// Month prints the month containing Date.
type Month struct {
	App     *app.App
	Date    time.Time
	JSON    bool
	Printer *printers.PrettyPrint
}

func (n *Month) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not show month, no app")
	}
	m, err := n.App.Month(n.Date)
	if err != nil {
		return err
	}
	pp := printer(n.Printer)
	if n.JSON {
		return pp.JSON(m)
	}
	pp.NewLine()
	pp.Month(m)
	return nil
}

func printer(pp *printers.PrettyPrint) *printers.PrettyPrint {
	if pp == nil {
		return &printers.PrettyPrint{}
	}
	return pp
}
