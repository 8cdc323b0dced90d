package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions selects a single calendar day.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2020-2-28", --on="2/28" or --on=yesterday. Defaults to today.`)
}

// GetOn resolves the flag against now. Empty means today.
func (o *OnOptions) GetOn(now time.Time, loc *time.Location) (time.Time, error) {
	return ParseDate(o.OnString, now, loc)
}

// ParseDate accepts YYYY-MM-DD, YYYY-M-D, M/D, "today" and "yesterday". A
// M/D date that has not happened yet this year is taken from last year.
func ParseDate(s string, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if t, err := time.ParseInLocation(layoutISO, s, loc); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(layoutISOShort, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD, M/D, today or yesterday", s)
	}
	month, dom := t.Month(), t.Day()
	year := today.Year()
	// Moods are logged after the fact, so 12/30 typed on 1/3 means last year.
	if month > today.Month() || (month == today.Month() && dom > today.Day()) {
		year--
	}
	t = time.Date(year, month, dom, 0, 0, 0, 0, loc)
	if t.Day() != dom {
		return time.Time{}, fmt.Errorf("invalid date %q: %d has no %s %d", s, year, month, dom)
	}
	return t, nil
}
