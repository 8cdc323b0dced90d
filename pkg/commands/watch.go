package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodtrack/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print day rollovers and store changes until interrupted.",
		Example: `
mood watch
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Dispose()

			w := watch.Watch{App: a, Out: cmd.OutOrStdout()}
			return w.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
