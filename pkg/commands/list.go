package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodtrack/pkg/commands/options"
	"tableflip.dev/moodtrack/pkg/printers"
	"tableflip.dev/moodtrack/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	ro := &options.RangeOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List logged moods.",
		Example: `
mood list
mood list --from 2024-03-01 --to 2024-03-31
mood list --from 3/1 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			a, err := openApp()
			if err != nil {
				return oo.HandleError(err)
			}
			defer a.Dispose()

			from, to, err := ro.GetRange(a.Now(), a.Days.Location())
			if err != nil {
				return oo.HandleError(err)
			}
			l := list.List{
				App:     a,
				From:    from,
				To:      to,
				JSON:    oo.JSON,
				Printer: &printers.PrettyPrint{Out: cmd.OutOrStdout()},
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddRangeArgs(cmd, ro)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
