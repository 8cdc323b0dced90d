package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodtrack/pkg/runner/transfer"
)

func addExport(topLevel *cobra.Command) {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every logged mood as JSON.",
		Example: `
mood export > moods.json
mood export --out moods.json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Dispose()

			e := transfer.Export{App: a, File: file, Out: cmd.OutOrStdout()}
			return e.Do(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&file, "out", "o", "", "File to write, stdout when empty.")

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load moods from a JSON export. Use - for stdin.",
		Long: `Load moods from a JSON export. Values may be full entries or bare mood
indexes. Nothing is written unless every entry is valid.`,
		Example: `
mood import moods.json
cat moods.json | mood import - --overwrite
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Dispose()

			i := transfer.Import{
				App:       a,
				File:      args[0],
				Overwrite: overwrite,
				In:        cmd.InOrStdin(),
				Out:       cmd.OutOrStdout(),
			}
			return i.Do(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace everything stored instead of merging.")

	topLevel.AddCommand(cmd)
}
