// Package transfer moves moods in and out as JSON.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/moodtrack/pkg/app"
)

// Export writes every entry to File, or to Out when File is empty.
type Export struct {
	App  *app.App
	File string
	Out  io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not export, no app")
	}
	b, err := n.App.Moods.Export()
	if err != nil {
		return err
	}
	if n.File == "" {
		w := n.Out
		if w == nil {
			w = os.Stdout
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	if err := os.WriteFile(n.File, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Import reads an export from File ("-" is In) and merges it, or replaces
// everything when Overwrite is set.
type Import struct {
	App       *app.App
	File      string
	Overwrite bool
	In        io.Reader
	Out       io.Writer
}

func (n *Import) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not import, no app")
	}
	var (
		b   []byte
		err error
	)
	if n.File == "-" {
		in := n.In
		if in == nil {
			in = os.Stdin
		}
		b, err = io.ReadAll(in)
	} else {
		b, err = os.ReadFile(n.File)
	}
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if err := n.App.Moods.Import(b, n.Overwrite); err != nil {
		return err
	}

	all := n.App.Moods.Cached()
	w := n.Out
	if w == nil {
		w = os.Stdout
	}
	_, _ = fmt.Fprintf(w, "imported, %d entries stored\n", len(all))
	return nil
}
