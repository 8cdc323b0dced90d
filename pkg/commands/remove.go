package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodtrack/pkg/commands/options"
	"tableflip.dev/moodtrack/pkg/prompt"
	"tableflip.dev/moodtrack/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "Delete the mood logged for a day.",
		Example: `
mood delete --on yesterday
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Dispose()

			date, err := on.GetOn(a.Now(), a.Days.Location())
			if err != nil {
				return err
			}
			d := remove.Delete{App: a, Date: date, Out: cmd.OutOrStdout()}
			return d.Do(cmd.Context())
		},
	}

	options.AddOnArgs(cmd, on)

	topLevel.AddCommand(cmd)
}

func addClear(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every logged mood.",
		Example: `
mood clear
mood clear --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if !co.Yes {
				if err := requireTerminal("confirming clear (pass --yes to skip)"); err != nil {
					return err
				}
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Dispose()

			c := remove.Clear{App: a, Yes: co.Yes, Prompter: &prompt.Prompter{}, Out: cmd.OutOrStdout()}
			return c.Do(cmd.Context())
		},
	}

	options.AddConfirmArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
