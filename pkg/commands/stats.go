package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodtrack/pkg/commands/options"
	"tableflip.dev/moodtrack/pkg/printers"
	"tableflip.dev/moodtrack/pkg/runner/stats"
)

func addStats(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	wo := &options.WindowOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise logged moods: counts, average and streak.",
		Example: `
mood stats
mood stats --last 2w
mood stats --last 30d --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			a, err := openApp()
			if err != nil {
				return oo.HandleError(err)
			}
			defer a.Dispose()

			s := stats.Stats{
				App:     a,
				Window:  wo.Last,
				JSON:    oo.JSON,
				Printer: &printers.PrettyPrint{Out: cmd.OutOrStdout()},
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddWindowArgs(cmd, wo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
