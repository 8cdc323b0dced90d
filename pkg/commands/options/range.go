package options

import (
	"time"

	"github.com/spf13/cobra"
)

// RangeOptions selects an inclusive span of days.
type RangeOptions struct {
	From string
	To   string
}

func AddRangeArgs(cmd *cobra.Command, o *RangeOptions) {
	cmd.Flags().StringVar(&o.From, "from", "",
		"First day to include. Defaults to the earliest entry.")
	cmd.Flags().StringVar(&o.To, "to", "",
		"Last day to include. Defaults to today.")
}

// Bounded reports whether either end was given.
func (o *RangeOptions) Bounded() bool {
	return o.From != "" || o.To != ""
}

// GetRange resolves both ends. An open start is the zero time.
func (o *RangeOptions) GetRange(now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	var from time.Time
	if o.From != "" {
		var err error
		if from, err = ParseDate(o.From, now, loc); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	to, err := ParseDate(o.To, now, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}
