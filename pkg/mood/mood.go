// Package mood holds the mood catalogue, persisted mood entries, and the
// Store that maps calendar dates to them.
package mood

import (
	"fmt"
	"strconv"
	"strings"
)

// Mood is one step on the Unpleasant → Pleasant scale.
type Mood struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Index bounds and the initial selection used by pickers.
const (
	MinIndex     = 0
	MaxIndex     = 4
	DefaultIndex = 2
)

var catalogue = [...]Mood{
	{Index: 0, Label: "Sad", Color: "#D16BA5"},
	{Index: 1, Label: "Worried", Color: "#FF94C2"},
	{Index: 2, Label: "Neutral", Color: "#FFD700"},
	{Index: 3, Label: "Happy", Color: "#ADFF2F"},
	{Index: 4, Label: "Excited", Color: "#32CD32"},
}

// All returns the catalogue in index order.
func All() []Mood {
	out := make([]Mood, len(catalogue))
	copy(out, catalogue[:])
	return out
}

// Valid reports whether i names a mood.
func Valid(i int) bool {
	return i >= MinIndex && i <= MaxIndex
}

// Lookup returns the mood for index i.
func Lookup(i int) (Mood, bool) {
	if !Valid(i) {
		return Mood{}, false
	}
	return catalogue[i], true
}

// Label returns the label for index i, or "?" when out of range.
func Label(i int) string {
	if m, ok := Lookup(i); ok {
		return m.Label
	}
	return "?"
}

// Parse accepts an index ("3") or a label ("happy").
func Parse(s string) (int, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		if !Valid(i) {
			return 0, invalidMood(i)
		}
		return i, nil
	}
	for _, m := range catalogue {
		if strings.EqualFold(m.Label, s) {
			return m.Index, nil
		}
	}
	return 0, &ValidationError{
		Field:  "mood",
		Value:  s,
		Reason: fmt.Sprintf("expected %d-%d or one of %s", MinIndex, MaxIndex, strings.Join(Labels(), ", ")),
		err:    ErrInvalidMood,
	}
}

// Labels returns the catalogue labels in index order.
func Labels() []string {
	out := make([]string, 0, len(catalogue))
	for _, m := range catalogue {
		out = append(out, m.Label)
	}
	return out
}

// Emotions is the catalogue offered by pickers. Entries may carry any tag.
var Emotions = []string{
	"Happy", "Excited", "Peaceful",
	"Anxious", "Sad", "Angry",
	"Grateful", "Tired", "Energetic",
	"Stressed", "Relaxed", "Frustrated",
}

// NormalizeEmotions trims tags, drops empties and removes case-insensitive
// duplicates, keeping first-seen order.
func NormalizeEmotions(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		k := strings.ToLower(tag)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ToggleEmotion adds tag when absent and removes it when present.
func ToggleEmotion(tags []string, tag string) []string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return tags
	}
	out := make([]string, 0, len(tags)+1)
	removed := false
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			removed = true
			continue
		}
		out = append(out, t)
	}
	if !removed {
		out = append(out, tag)
	}
	return NormalizeEmotions(out)
}
