package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/moodtrack/pkg/commands/options"
	"tableflip.dev/moodtrack/pkg/mood"
	"tableflip.dev/moodtrack/pkg/printers"
	"tableflip.dev/moodtrack/pkg/prompt"
	logrunner "tableflip.dev/moodtrack/pkg/runner/log"
)

func addLog(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	on := &options.OnOptions{}
	mo := &options.MoodOptions{}
	i := &options.InteractiveOptions{}

	long := strings.Builder{}
	long.WriteString("Log the mood for a day. Logging again replaces the mood.\n\n")
	long.WriteString("Moods:\n")
	for _, m := range mood.All() {
		fmt.Fprintf(&long, "  %d: %s\n", m.Index, m.Label)
	}

	cmd := &cobra.Command{
		Use:   "log <mood>",
		Short: "Log how the day felt.",
		Long:  long.String(),
		Example: `
mood log happy
mood log 1 --on yesterday -e tired,anxious
mood log 3 --journal "long walk by the river"
mood log -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if i.Interactive {
				return cobra.NoArgs(cmd, args)
			}
			if len(args) != 1 {
				return errors.New("expected exactly one mood, an index or a label")
			}
			return nil
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return options.MoodCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			l := &logrunner.Log{
				Emotions:    mo.Emotions,
				EmotionsSet: cmd.Flags().Changed("emotion"),
				Journal:     mo.Journal,
				JournalSet:  cmd.Flags().Changed("journal"),
				JSON:        oo.JSON,
				Printer:     &printers.PrettyPrint{Out: cmd.OutOrStdout()},
			}
			if i.Interactive {
				if err := requireTerminal("interactive logging"); err != nil {
					return oo.HandleError(err)
				}
				l.Prompter = &prompt.Prompter{}
			} else {
				idx, err := mood.Parse(args[0])
				if err != nil {
					return oo.HandleError(err)
				}
				l.Mood = idx
			}

			a, err := openApp()
			if err != nil {
				return oo.HandleError(err)
			}
			defer a.Dispose()

			if l.Date, err = on.GetOn(a.Now(), a.Days.Location()); err != nil {
				return oo.HandleError(err)
			}
			l.App = a
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddMoodArgs(cmd, mo)
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
