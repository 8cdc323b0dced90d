package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodtrack/pkg/printers"
	"tableflip.dev/moodtrack/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the mood scale and emotion tags.",
		Example: `
mood key
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k := key.Key{Printer: &printers.PrettyPrint{Out: cmd.OutOrStdout()}}
			return k.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
