package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodtrack/pkg/commands/options"
	"tableflip.dev/moodtrack/pkg/printers"
	"tableflip.dev/moodtrack/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the mood logged for a day.",
		Example: `
mood get
mood get --on 2024-03-15
mood get --on yesterday --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			a, err := openApp()
			if err != nil {
				return oo.HandleError(err)
			}
			defer a.Dispose()

			date, err := on.GetOn(a.Now(), a.Days.Location())
			if err != nil {
				return oo.HandleError(err)
			}
			g := get.Get{
				App:     a,
				Date:    date,
				JSON:    oo.JSON,
				Printer: &printers.PrettyPrint{Out: cmd.OutOrStdout()},
			}
			return oo.HandleError(g.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
