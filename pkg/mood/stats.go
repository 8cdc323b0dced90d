package mood

import (
	"time"
)

// Stats summarises a set of entries.
type Stats struct {
	Total      int         `json:"total"`
	Counts     map[int]int `json:"counts"`
	Average    float64     `json:"average"`
	MostCommon int         `json:"mostCommon"`
	Streak     int         `json:"currentStreak"`
	First      string      `json:"first,omitempty"`
	Last       string      `json:"last,omitempty"`
}

// MostCommonLabel returns the label of MostCommon, or "" when there is no
// data.
func (s Stats) MostCommonLabel() string {
	if s.Total == 0 {
		return ""
	}
	return Label(s.MostCommon)
}

// Stats summarises every stored entry.
func (s *Store) Stats() (Stats, error) {
	data, err := s.GetAllMoods()
	if err != nil {
		return Stats{}, err
	}
	return Summarize(data, s.now(), s.loc), nil
}

// StatsInRange summarises entries between start and end inclusive. The
// streak is still measured against today.
func (s *Store) StatsInRange(start, end time.Time) (Stats, error) {
	data, err := s.GetMoodsInRange(start, end)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(data, s.now(), s.loc), nil
}

// Summarize computes Stats for data. MostCommon ties resolve to the lower
// index; with no data MostCommon is -1. The streak counts consecutive logged
// days ending today, or yesterday when today has no entry yet.
func Summarize(data Data, today time.Time, loc *time.Location) Stats {
	st := Stats{Counts: make(map[int]int, MaxIndex+1), MostCommon: -1}
	for i := MinIndex; i <= MaxIndex; i++ {
		st.Counts[i] = 0
	}
	if len(data) == 0 {
		return st
	}

	sum := 0
	for _, e := range data {
		st.Counts[e.MoodIndex]++
		sum += e.MoodIndex
	}
	st.Total = len(data)
	st.Average = float64(sum) / float64(st.Total)

	best := 0
	for i := MinIndex; i <= MaxIndex; i++ {
		if st.Counts[i] > best {
			best = st.Counts[i]
			st.MostCommon = i
		}
	}

	keys := data.Keys()
	st.First, st.Last = keys[0], keys[len(keys)-1]
	st.Streak = streak(data, today, loc)
	return st
}

func streak(data Data, today time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	t := today.In(loc)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	if _, ok := data[Key(day, loc)]; !ok {
		day = day.AddDate(0, 0, -1)
	}
	n := 0
	for {
		if _, ok := data[Key(day, loc)]; !ok {
			return n
		}
		n++
		day = day.AddDate(0, 0, -1)
	}
}
