package commands

import (
	"github.com/spf13/cobra"

	teaui "tableflip.dev/moodtrack/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "ui",
		Aliases: []string{"tui"},
		Short:   "Open the interactive week view.",
		Example: `
mood ui
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if err := requireTerminal("the ui"); err != nil {
				return err
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Dispose()

			logger := uiLogger()
			defer func() { _ = logger.Sync() }()

			u := teaui.UI{App: a, Logger: logger}
			return u.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
