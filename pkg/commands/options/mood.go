package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/moodtrack/pkg/mood"
)

// MoodOptions carries the optional parts of an entry.
type MoodOptions struct {
	Emotions []string
	Journal  string
}

func AddMoodArgs(cmd *cobra.Command, o *MoodOptions) {
	cmd.Flags().StringSliceVarP(&o.Emotions, "emotion", "e", nil,
		"Emotion tag, repeatable or comma separated, example: -e tired,grateful.")
	cmd.Flags().StringVarP(&o.Journal, "journal", "j", "",
		"Journal note for the day (markdown).")
	_ = cmd.RegisterFlagCompletionFunc("emotion", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return EmotionCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

// Changed reports whether emotions or a journal were passed, so a plain
// "mood log 3" keeps what was already stored.
func (o *MoodOptions) Changed(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("emotion") || cmd.Flags().Changed("journal")
}

// EmotionCompletions lists catalogue emotions starting with prefix.
func EmotionCompletions(prefix string) []string {
	var out []string
	for _, e := range mood.Emotions {
		if strings.HasPrefix(strings.ToLower(e), strings.ToLower(prefix)) {
			out = append(out, e)
		}
	}
	return out
}

// MoodCompletions lists mood labels starting with prefix.
func MoodCompletions(prefix string) []string {
	var out []string
	for _, l := range mood.Labels() {
		if strings.HasPrefix(strings.ToLower(l), strings.ToLower(prefix)) {
			out = append(out, strings.ToLower(l))
		}
	}
	return out
}
