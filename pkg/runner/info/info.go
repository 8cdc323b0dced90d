// Package info reports where moods are stored.
package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gosuri/uitable"

	"tableflip.dev/moodtrack/pkg/store"
)

type Info struct {
	Config store.Config
	KV     store.KV
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	w := n.Out
	if w == nil {
		w = os.Stdout
	}

	if override := os.Getenv(store.EnvConfigPath); override != "" {
		_, _ = fmt.Fprintf(w, "%s found on env, using %s\n", store.EnvConfigPath, override)
	} else {
		_, _ = fmt.Fprintf(w, "%s env var not set\n", store.EnvConfigPath)
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.KV == nil {
		return errors.New("failed to open the mood store")
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	if f, ok := n.Config.(interface{ ConfigFile() string }); ok && f.ConfigFile() != "" {
		tbl.AddRow("config file:", f.ConfigFile())
	}
	tbl.AddRow("path:", n.Config.BasePath())
	tbl.AddRow("backend:", n.Config.Backend())
	tbl.AddRow("monitor interval:", n.Config.MonitorInterval())
	tbl.AddRow("log:", n.Config.LogLevel()+" ("+n.Config.LogFormat()+")")

	if d, ok := n.KV.(store.Describer); ok {
		desc := d.Describe()
		if desc.Location != "" {
			tbl.AddRow("location:", desc.Location)
		}
		keys := "none"
		if len(desc.Keys) > 0 {
			keys = fmt.Sprint(desc.Keys)
		}
		tbl.AddRow("keys:", keys)
	}
	_, _ = fmt.Fprintln(w, tbl)
	return nil
}
