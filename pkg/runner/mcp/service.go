// Package mcp provides the Model Context Protocol server integration for
// mood tracking.
package mcp

import (
	"context"
	"errors"
	"strings"
	"time"

	"tableflip.dev/moodtrack/pkg/app"
	"tableflip.dev/moodtrack/pkg/mood"
)

// Service coordinates the mood operations shared by the MCP tools and
// resources.
type Service struct {
	App *app.App
}

// ErrNotLogged is returned when no entry exists for the requested date.
var ErrNotLogged = errors.New("no mood logged for that date")

// LogMoodOptions captures the parameters used to log a mood.
type LogMoodOptions struct {
	Date     string
	Mood     string
	Emotions []string
	Journal  *string
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	Date      string   `json:"date"`
	MoodIndex int      `json:"moodIndex"`
	Mood      string   `json:"mood"`
	Color     string   `json:"color"`
	Emotions  []string `json:"emotions,omitempty"`
	Journal   string   `json:"journal,omitempty"`
	Updated   string   `json:"updated"`
}

// DayDTO is one day of a week.
type DayDTO struct {
	Date    string    `json:"date"`
	Weekday string    `json:"weekday"`
	IsToday bool      `json:"isToday"`
	Entry   *EntryDTO `json:"entry,omitempty"`
}

// WeekDTO is a Monday-first week.
type WeekDTO struct {
	Start   string   `json:"start"`
	Current bool     `json:"current"`
	Logged  int      `json:"logged"`
	Days    []DayDTO `json:"days"`
}

// NewService builds a service on a.
func NewService(a *app.App) *Service {
	return &Service{App: a}
}

func (s *Service) check(ctx context.Context) error {
	if s.App == nil {
		return errors.New("app is not configured")
	}
	return ctx.Err()
}

// ParseDate resolves "", "today", "yesterday" or a date key against the
// app's clock.
func (s *Service) ParseDate(value string) (time.Time, error) {
	loc := s.App.Days.Location()
	now := s.App.Now().In(loc)
	v := strings.TrimSpace(value)
	switch strings.ToLower(v) {
	case "", "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	default:
		key, err := mood.NormalizeKey(v)
		if err != nil {
			return time.Time{}, err
		}
		return mood.ParseKey(key, loc)
	}
}

// LogMood saves a mood. Emotions and Journal are merged with any stored
// entry: nil keeps what is there.
func (s *Service) LogMood(ctx context.Context, opts LogMoodOptions) (EntryDTO, error) {
	if err := s.check(ctx); err != nil {
		return EntryDTO{}, err
	}
	idx, err := mood.Parse(opts.Mood)
	if err != nil {
		return EntryDTO{}, err
	}
	date, err := s.ParseDate(opts.Date)
	if err != nil {
		return EntryDTO{}, err
	}

	moods := s.App.Moods
	if opts.Emotions == nil && opts.Journal == nil {
		e, err := moods.SaveMood(date, idx)
		if err != nil {
			return EntryDTO{}, err
		}
		return toDTO(e), nil
	}

	current, _, err := moods.GetMood(date)
	if err != nil {
		return EntryDTO{}, err
	}
	emotions, journal := current.Emotions, current.Journal
	if opts.Emotions != nil {
		emotions = opts.Emotions
	}
	if opts.Journal != nil {
		journal = *opts.Journal
	}
	e, err := moods.SaveEntry(date, idx, emotions, journal)
	if err != nil {
		return EntryDTO{}, err
	}
	return toDTO(e), nil
}

// GetMood returns the entry for date.
func (s *Service) GetMood(ctx context.Context, date string) (EntryDTO, error) {
	if err := s.check(ctx); err != nil {
		return EntryDTO{}, err
	}
	t, err := s.ParseDate(date)
	if err != nil {
		return EntryDTO{}, err
	}
	e, ok, err := s.App.Moods.GetMood(t)
	if err != nil {
		return EntryDTO{}, err
	}
	if !ok {
		return EntryDTO{}, ErrNotLogged
	}
	return toDTO(e), nil
}

// ListMoods returns entries in chronological order. Empty bounds list
// everything.
func (s *Service) ListMoods(ctx context.Context, from, to string) ([]EntryDTO, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	var (
		data mood.Data
		err  error
	)
	if from == "" && to == "" {
		data, err = s.App.Moods.GetAllMoods()
	} else {
		var start, end time.Time
		if start, err = s.boundary(from, time.Time{}); err != nil {
			return nil, err
		}
		if end, err = s.boundary(to, s.App.Now()); err != nil {
			return nil, err
		}
		data, err = s.App.Moods.GetMoodsInRange(start, end)
	}
	if err != nil {
		return nil, err
	}
	out := make([]EntryDTO, 0, len(data))
	for _, e := range data.Sorted() {
		out = append(out, toDTO(e))
	}
	return out, nil
}

func (s *Service) boundary(value string, fallback time.Time) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		if fallback.IsZero() {
			return time.Date(1, time.January, 1, 0, 0, 0, 0, s.App.Days.Location()), nil
		}
		return fallback, nil
	}
	return s.ParseDate(value)
}

// DeleteMood removes the entry for date and returns its key.
func (s *Service) DeleteMood(ctx context.Context, date string) (string, error) {
	if err := s.check(ctx); err != nil {
		return "", err
	}
	t, err := s.ParseDate(date)
	if err != nil {
		return "", err
	}
	if err := s.App.Moods.DeleteMood(t); err != nil {
		return "", err
	}
	return s.App.Moods.Key(t), nil
}

// Week returns the week containing date.
func (s *Service) Week(ctx context.Context, date string) (WeekDTO, error) {
	if err := s.check(ctx); err != nil {
		return WeekDTO{}, err
	}
	t, err := s.ParseDate(date)
	if err != nil {
		return WeekDTO{}, err
	}
	w, err := s.App.Week(t)
	if err != nil {
		return WeekDTO{}, err
	}
	out := WeekDTO{Start: w.Start, Current: w.Current, Logged: w.Logged(), Days: make([]DayDTO, 0, len(w.Days))}
	for _, d := range w.Days {
		dto := DayDTO{Date: d.Key(), Weekday: d.Info.DayName, IsToday: d.Info.IsToday}
		if d.Logged {
			e := toDTO(d.Entry)
			dto.Entry = &e
		}
		out.Days = append(out.Days, dto)
	}
	return out, nil
}

// Stats summarises every entry, or the days between from and to.
func (s *Service) Stats(ctx context.Context, from, to string) (mood.Stats, error) {
	if err := s.check(ctx); err != nil {
		return mood.Stats{}, err
	}
	if from == "" && to == "" {
		return s.App.Moods.Stats()
	}
	start, err := s.boundary(from, time.Time{})
	if err != nil {
		return mood.Stats{}, err
	}
	end, err := s.boundary(to, s.App.Now())
	if err != nil {
		return mood.Stats{}, err
	}
	return s.App.Moods.StatsInRange(start, end)
}

func toDTO(e mood.Entry) EntryDTO {
	m := e.Mood()
	return EntryDTO{
		Date:      e.Date,
		MoodIndex: e.MoodIndex,
		Mood:      m.Label,
		Color:     m.Color,
		Emotions:  e.Emotions,
		Journal:   e.Journal,
		Updated:   e.UpdatedAt().UTC().Format(time.RFC3339),
	}
}
