package mood

import (
	"regexp"
	"time"
)

// LayoutKey is the canonical date key layout.
const LayoutKey = "2006-01-02"

const layoutLoose = "2006-1-2"

var canonicalKey = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Key returns the canonical date key of t in loc (time.Local when nil).
// Every code path that indexes moods goes through Key.
func Key(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(LayoutKey)
}

// ParseKey parses a canonical key as midnight in loc (time.Local when nil).
func ParseKey(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if !canonicalKey.MatchString(s) {
		return time.Time{}, invalidKey(s, "want YYYY-MM-DD")
	}
	t, err := time.ParseInLocation(LayoutKey, s, loc)
	if err != nil {
		return time.Time{}, invalidKey(s, err.Error())
	}
	return t, nil
}

// NormalizeKey migrates a stored key to canonical form. It accepts the
// canonical form, unpadded YYYY-M-D, and RFC 3339 timestamps (using the
// timestamp's own offset). Day-of-month-only keys are ambiguous across months
// and are rejected.
func NormalizeKey(s string) (string, error) {
	if canonicalKey.MatchString(s) {
		if _, err := time.Parse(LayoutKey, s); err != nil {
			return "", invalidKey(s, err.Error())
		}
		return s, nil
	}
	if t, err := time.Parse(layoutLoose, s); err == nil {
		return t.Format(LayoutKey), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.Format(LayoutKey), nil
	}
	return "", invalidKey(s, "want YYYY-MM-DD")
}

func invalidKey(s, reason string) error {
	return &ValidationError{Field: "date key", Value: s, Reason: reason, err: ErrInvalidDateKey}
}
