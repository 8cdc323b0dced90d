// Package day answers "what day is it" and "has the day changed since we
// last asked" for the rest of moodtrack.
package day

import "time"

const layoutKey = "2006-01-02"

var (
	dayNames   = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	dayAbbrevs = [...]string{"S", "M", "T", "W", "T", "F", "S"}
)

// Info describes a single calendar day. It is derived on every query and is
// never mutated after construction.
type Info struct {
	Date      int    `json:"date"`
	DayName   string `json:"dayName"`
	DayAbbrev string `json:"dayAbbrev"`
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	IsToday   bool   `json:"isToday"`
	IsNewDay  bool   `json:"isNewDay"`
	Timestamp int64  `json:"timestamp"`
}

// Time returns local midnight of the day described by i.
func (i Info) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(i.Year, time.Month(i.Month), i.Date, 0, 0, 0, 0, loc)
}

// Key returns the YYYY-MM-DD form of the day.
func (i Info) Key() string {
	return time.Date(i.Year, time.Month(i.Month), i.Date, 0, 0, 0, 0, time.UTC).Format(layoutKey)
}

func newInfo(t time.Time, isToday, isNewDay bool) Info {
	wd := t.Weekday()
	return Info{
		Date:      t.Day(),
		DayName:   dayNames[wd],
		DayAbbrev: dayAbbrevs[wd],
		Month:     int(t.Month()),
		Year:      t.Year(),
		IsToday:   isToday,
		IsNewDay:  isNewDay,
		Timestamp: t.UnixMilli(),
	}
}

// dateString is the comparison form of a calendar date.
func dateString(t time.Time) string {
	return t.Format(layoutKey)
}
