package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodtrack/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve moods over the Model Context Protocol on stdio.",
		Long: `Serve moods over the Model Context Protocol on stdio.

Tools: log_mood, get_mood, list_moods, delete_mood, week, mood_stats.
Resources: mood://moods, mood://week and mood://moods/{date}.

Logs go to stderr so stdout stays a clean protocol stream.`,
		Example: `
mood mcp
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Dispose()

			r := mcp.Runner{
				App:     a,
				Name:    "mood",
				Version: version,
				Logger:  global.log(),
				In:      cmd.InOrStdin(),
				Out:     cmd.OutOrStdout(),
			}
			return r.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
