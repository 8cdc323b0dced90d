package mood

import (
	"sort"
	"strings"
	"time"
)

// Entry is the mood recorded for one date.
type Entry struct {
	Date      string   `json:"date"`
	MoodIndex int      `json:"moodIndex"`
	Timestamp int64    `json:"timestamp"`
	Emotions  []string `json:"emotions,omitempty"`
	Journal   string   `json:"journal,omitempty"`
}

// Mood returns the catalogue entry for e.MoodIndex.
func (e Entry) Mood() Mood {
	m, _ := Lookup(e.MoodIndex)
	return m
}

// Label returns the mood label.
func (e Entry) Label() string {
	return Label(e.MoodIndex)
}

// UpdatedAt returns the time of the last write.
func (e Entry) UpdatedAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// HasJournal reports whether a non-blank note is attached.
func (e Entry) HasJournal() bool {
	return strings.TrimSpace(e.Journal) != ""
}

func (e Entry) clone() Entry {
	if e.Emotions != nil {
		e.Emotions = append([]string(nil), e.Emotions...)
	}
	return e
}

// Data maps date keys to entries.
type Data map[string]Entry

// Keys returns the date keys in chronological order.
func (d Data) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sorted returns the entries in chronological order.
func (d Data) Sorted() []Entry {
	out := make([]Entry, 0, len(d))
	for _, k := range d.Keys() {
		out = append(out, d[k])
	}
	return out
}

// Clone returns a deep copy.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	for k, e := range d {
		out[k] = e.clone()
	}
	return out
}

// Range returns the entries whose keys fall in [startKey, endKey].
func (d Data) Range(startKey, endKey string) Data {
	if startKey > endKey {
		startKey, endKey = endKey, startKey
	}
	out := make(Data)
	for k, e := range d {
		if k >= startKey && k <= endKey {
			out[k] = e.clone()
		}
	}
	return out
}
