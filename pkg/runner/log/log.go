// Package log records a day's mood.
package log

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/moodtrack/pkg/app"
	"tableflip.dev/moodtrack/pkg/mood"
	"tableflip.dev/moodtrack/pkg/printers"
	"tableflip.dev/moodtrack/pkg/prompt"
)

// Log saves a mood for Date. Emotions and Journal replace the stored values
// only when their Set flag is true.
type Log struct {
	App  *app.App
	Date time.Time
	Mood int

	Emotions    []string
	EmotionsSet bool
	Journal     string
	JournalSet  bool

	// Prompter, when set, asks for everything interactively and Mood,
	// Emotions and Journal are ignored.
	Prompter *prompt.Prompter

	JSON    bool
	Printer *printers.PrettyPrint
}

// Do writes the entry and prints what was stored.
func (n *Log) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not log, no app")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}

	saved, err := n.save()
	if err != nil {
		return err
	}
	if n.JSON {
		return pp.JSON(saved)
	}
	pp.NewLine()
	pp.Entry(saved)
	pp.NewLine()
	return nil
}

func (n *Log) save() (mood.Entry, error) {
	moods := n.App.Moods

	if n.Prompter == nil && !n.EmotionsSet && !n.JournalSet {
		return moods.SaveMood(n.Date, n.Mood)
	}

	current, logged, err := moods.GetMood(n.Date)
	if err != nil {
		return mood.Entry{}, err
	}

	if n.Prompter != nil {
		a, err := n.Prompter.Entry(current, logged)
		if err != nil {
			return mood.Entry{}, err
		}
		return moods.SaveEntry(n.Date, a.MoodIndex, a.Emotions, a.Journal)
	}

	emotions, journal := current.Emotions, current.Journal
	if n.EmotionsSet {
		emotions = n.Emotions
	}
	if n.JournalSet {
		journal = n.Journal
	}
	return moods.SaveEntry(n.Date, n.Mood, emotions, journal)
}
