package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodtrack/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show where moods are stored and how the store is configured.",
		Example: `
mood info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Dispose()

			i := info.Info{Config: global.cfg, KV: a.KV, Out: cmd.OutOrStdout()}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
