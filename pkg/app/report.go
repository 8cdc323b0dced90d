package app

import (
	"time"

	"tableflip.dev/moodtrack/pkg/mood"
	"tableflip.dev/moodtrack/pkg/timeutil"
)

// ReportResult summarises the entries logged inside a window.
type ReportResult struct {
	Since   time.Time    `json:"since"`
	Until   time.Time    `json:"until"`
	Label   string       `json:"window"`
	Stats   mood.Stats   `json:"stats"`
	Entries []mood.Entry `json:"entries"`
	Missing []string     `json:"missing"`
}

// Report summarises the window ending today. Missing lists the days in the
// window without an entry.
func (a *App) Report(w timeutil.Window) (ReportResult, error) {
	loc := a.Days.Location()
	now := a.Now()
	since, until := w.Bounds(now, loc)

	data, err := a.Moods.GetMoodsInRange(since, until)
	if err != nil {
		return ReportResult{}, err
	}

	missing := make([]string, 0)
	for d := since; !d.After(until); d = time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, loc) {
		key := mood.Key(d, loc)
		if _, ok := data[key]; !ok {
			missing = append(missing, key)
		}
	}

	return ReportResult{
		Since:   since,
		Until:   until,
		Label:   w.Label,
		Stats:   mood.Summarize(data, now, loc),
		Entries: data.Sorted(),
		Missing: missing,
	}, nil
}
