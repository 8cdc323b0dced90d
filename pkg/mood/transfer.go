package mood

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Export returns every entry as indented JSON keyed by date.
func (s *Store) Export() ([]byte, error) {
	data, err := s.GetAllMoods()
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mood: export: %w", err)
	}
	return out, nil
}

// Import loads entries produced by Export. Values may also be bare mood
// indexes, the legacy layout. Every key and entry is validated before
// anything is written; one bad record rejects the whole import. With
// overwrite the imported map replaces the stored one, otherwise imported
// entries win per date.
func (s *Store) Import(raw []byte, overwrite bool) error {
	imported, err := DecodeData(raw, s.now().UnixMilli())
	if err != nil {
		return err
	}
	err = s.mutate("import", StoreKey, func(d Data) bool {
		if overwrite {
			for k := range d {
				delete(d, k)
			}
		}
		for k, e := range imported {
			d[k] = e
		}
		return true
	})
	if err != nil {
		return err
	}
	s.logger.Info("moods imported", zap.Int("entries", len(imported)), zap.Bool("overwrite", overwrite))
	return nil
}

// DecodeData parses and validates an exported map. Entries without a
// timestamp get stamp.
func DecodeData(raw []byte, stamp int64) (Data, error) {
	var values map[string]json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, &ValidationError{Field: "import", Value: "document", Reason: err.Error()}
	}
	out := make(Data, len(values))
	for k, v := range values {
		key, err := NormalizeKey(k)
		if err != nil {
			return nil, err
		}
		e, err := decodeEntry(k, v)
		if err != nil {
			return nil, err
		}
		if !Valid(e.MoodIndex) {
			return nil, invalidMood(e.MoodIndex)
		}
		e.Date = key
		e.Emotions = NormalizeEmotions(e.Emotions)
		if e.Timestamp == 0 {
			e.Timestamp = stamp
		}
		if prev, ok := out[key]; ok && prev.Timestamp >= e.Timestamp {
			continue
		}
		out[key] = e
	}
	return out, nil
}

func decodeEntry(key string, v json.RawMessage) (Entry, error) {
	v = bytes.TrimSpace(v)
	invalid := func(reason string) (Entry, error) {
		return Entry{}, &ValidationError{Field: "import entry", Value: key, Reason: reason}
	}
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return invalid("missing mood")
	}
	if v[0] != '{' {
		var idx int
		if err := json.Unmarshal(v, &idx); err != nil {
			return invalid(err.Error())
		}
		return Entry{MoodIndex: idx}, nil
	}
	var rec struct {
		Entry
		MoodIndex *int `json:"moodIndex"`
	}
	if err := json.Unmarshal(v, &rec); err != nil {
		return invalid(err.Error())
	}
	if rec.MoodIndex == nil {
		return invalid("moodIndex is required")
	}
	e := rec.Entry
	e.MoodIndex = *rec.MoodIndex
	return e, nil
}
