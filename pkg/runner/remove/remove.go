// Package remove deletes entries.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"tableflip.dev/moodtrack/pkg/app"
	"tableflip.dev/moodtrack/pkg/prompt"
)

// Delete removes the entry for Date. A missing entry is not an error.
type Delete struct {
	App  *app.App
	Date time.Time
	Out  io.Writer
}

func (n *Delete) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not delete, no app")
	}
	if err := n.App.Moods.DeleteMood(n.Date); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out(n.Out), "deleted %s\n", n.App.Moods.Key(n.Date))
	return nil
}

// Clear removes every entry. Without Yes it asks first.
type Clear struct {
	App      *app.App
	Yes      bool
	Prompter *prompt.Prompter
	Out      io.Writer
}

func (n *Clear) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not clear, no app")
	}
	if !n.Yes {
		p := n.Prompter
		if p == nil {
			p = &prompt.Prompter{}
		}
		ok, err := p.Confirm("Delete every logged mood")
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(out(n.Out), "nothing deleted")
			return nil
		}
	}
	if err := n.App.Moods.ClearAllMoods(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out(n.Out), "all moods deleted")
	return nil
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
