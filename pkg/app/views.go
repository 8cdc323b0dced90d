package app

import (
	"time"

	"tableflip.dev/moodtrack/pkg/day"
	"tableflip.dev/moodtrack/pkg/mood"
)

// DayMood pairs a calendar day with its entry.
type DayMood struct {
	Info   day.Info   `json:"day"`
	Entry  mood.Entry `json:"entry"`
	Logged bool       `json:"logged"`
}

// Key returns the date key of the day.
func (d DayMood) Key() string {
	return d.Info.Key()
}

// WeekView is a Monday-first week with moods attached.
type WeekView struct {
	Start   string    `json:"start"`
	Current bool      `json:"current"`
	Days    []DayMood `json:"days"`
}

// Logged counts the days with an entry.
func (w WeekView) Logged() int {
	n := 0
	for _, d := range w.Days {
		if d.Logged {
			n++
		}
	}
	return n
}

// Week returns the week containing t.
func (a *App) Week(t time.Time) (WeekView, error) {
	days := a.Days.Week(t)
	loc := a.Days.Location()
	data, err := a.Moods.GetMoodsInRange(days[0].Time(loc), days[len(days)-1].Time(loc))
	if err != nil {
		return WeekView{}, err
	}
	return WeekView{
		Start:   days[0].Key(),
		Current: a.Days.IsCurrentWeek(t),
		Days:    attach(days, data),
	}, nil
}

// CurrentWeek returns the week containing now.
func (a *App) CurrentWeek() (WeekView, error) {
	return a.Week(a.Now())
}

// CachedWeek builds the week containing t from the mood cache without
// touching the backing store. Renderers call it on every frame.
func (a *App) CachedWeek(t time.Time) WeekView {
	days := a.Days.Week(t)
	data := a.Moods.Cached()
	return WeekView{
		Start:   days[0].Key(),
		Current: a.Days.IsCurrentWeek(t),
		Days:    attach(days, data),
	}
}

// MonthView is one calendar month laid out in Monday-first weeks. Lead is the
// number of blank cells before the first day.
type MonthView struct {
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Lead  int       `json:"lead"`
	Days  []DayMood `json:"days"`
}

// Month returns the month containing t.
func (a *App) Month(t time.Time) (MonthView, error) {
	loc := a.Days.Location()
	t = t.In(loc)
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	data, err := a.Moods.GetMoodsInRange(first, last)
	if err != nil {
		return MonthView{}, err
	}
	days := make([]day.Info, 0, last.Day())
	for i := 0; i < last.Day(); i++ {
		days = append(days, a.Days.DayInfo(time.Date(first.Year(), first.Month(), 1+i, 0, 0, 0, 0, loc)))
	}
	return MonthView{
		Year:  first.Year(),
		Month: int(first.Month()),
		Lead:  (int(first.Weekday()) + 6) % 7,
		Days:  attach(days, data),
	}, nil
}

func attach(days []day.Info, data mood.Data) []DayMood {
	out := make([]DayMood, 0, len(days))
	for _, info := range days {
		e, ok := data[info.Key()]
		out = append(out, DayMood{Info: info, Entry: e, Logged: ok})
	}
	return out
}
