package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodtrack/pkg/commands/options"
	"tableflip.dev/moodtrack/pkg/printers"
	"tableflip.dev/moodtrack/pkg/runner/calendar"
)

func addWeek(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the Monday-first week with its moods.",
		Example: `
mood week
mood week --on 2024-03-01
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
			w := calendar.Week{
				App:     a,
				Date:    date,
				JSON:    oo.JSON,
				Printer: &printers.PrettyPrint{Out: cmd.OutOrStdout()},
			}
			return oo.HandleError(w.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addMonth(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show a month calendar coloured by mood.",
		Example: `
mood month
mood month --on 2024-2-1
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
			m := calendar.Month{
				App:     a,
				Date:    date,
				JSON:    oo.JSON,
				Printer: &printers.PrettyPrint{Out: cmd.OutOrStdout()},
			}
			return oo.HandleError(m.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
