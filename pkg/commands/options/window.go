package options

import (
	"github.com/spf13/cobra"
)

// WindowOptions limits a report to recent days.
type WindowOptions struct {
	Last string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Last, "last", "",
		`Only consider the last window of days, example: --last=2w or --last=10d.`)
}
