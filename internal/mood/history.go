package mood

import (
	"sort"
	"time"
)

// DateLayout is the on-disk date format of an entry.
const DateLayout = "2006-01-02"

const (
	WindowWeek  = 7
	WindowMonth = 30

	// DefaultLowThreshold is the highest ordinal that counts as a low day.
	DefaultLowThreshold = 2
)

// Entry is one day's check-in.
type Entry struct {
	Date    string  `json:"date"`
	Emotion Emotion `json:"emotion"`
}

// Value returns the entry's ordinal, or 0 if its emotion is unknown.
func (e Entry) Value() int {
	return ordinals[e.Emotion]
}

// Stats summarizes a history. Max and Min are nil and Count is zero for an
// empty history; Average is only meaningful when Count > 0.
type Stats struct {
	Max     *Entry
	Min     *Entry
	Average float64
	Count   int
}

func (s Stats) HasData() bool { return s.Count > 0 }

// SortDescending returns a copy ordered most recent first.
func SortDescending(entries []Entry) []Entry {
	out := clone(entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// SortAscending returns a copy in chronological order.
func SortAscending(entries []Entry) []Entry {
	out := clone(entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// FilterByWindow keeps entries dated on or after reference minus windowDays
// calendar days. Entries with an unparseable date are dropped. A negative
// window is treated as zero.
func FilterByWindow(entries []Entry, windowDays int, reference time.Time) []Entry {
	if windowDays < 0 {
		windowDays = 0
	}
	ref := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, time.UTC)
	limit := ref.AddDate(0, 0, -windowDays)

	out := []Entry{}
	for _, e := range entries {
		d, err := time.Parse(DateLayout, e.Date)
		if err != nil {
			continue
		}
		if !d.Before(limit) {
			out = append(out, e)
		}
	}
	return out
}

// ComputeStats finds the highest and lowest entries (first occurrence wins
// ties) and the mean ordinal rounded to two decimals. Entries with an unknown
// emotion are ignored.
func ComputeStats(entries []Entry) Stats {
	var st Stats
	sum := 0
	for i := range entries {
		v, err := ToOrdinal(entries[i].Emotion)
		if err != nil {
			continue
		}
		e := entries[i]
		if st.Max == nil || v > st.Max.Value() {
			st.Max = &e
		}
		if st.Min == nil || v < st.Min.Value() {
			st.Min = &e
		}
		sum += v
		st.Count++
	}
	if st.Count > 0 {
		st.Average = meanHundredths(sum, st.Count)
	}
	return st
}

// CountLowDays counts entries whose ordinal is at most threshold.
func CountLowDays(entries []Entry, threshold int) int {
	n := 0
	for _, e := range entries {
		if v, err := ToOrdinal(e.Emotion); err == nil && v <= threshold {
			n++
		}
	}
	return n
}

// MostFrequentEmotion returns the label logged most often. On a tie the label
// whose first occurrence comes earliest in entries wins.
func MostFrequentEmotion(entries []Entry) (Emotion, bool) {
	counts := make(map[Emotion]int)
	var order []Emotion
	for _, e := range entries {
		if counts[e.Emotion] == 0 {
			order = append(order, e.Emotion)
		}
		counts[e.Emotion]++
	}

	var best Emotion
	bestCount := 0
	for _, em := range order {
		if counts[em] > bestCount {
			best, bestCount = em, counts[em]
		}
	}
	return best, bestCount > 0
}

// Latest returns the most recently dated entry.
func Latest(entries []Entry) (Entry, bool) {
	if len(entries) == 0 {
		return Entry{}, false
	}
	latest := entries[0]
	for _, e := range entries[1:] {
		if e.Date > latest.Date {
			latest = e
		}
	}
	return latest, true
}

// Today formats t as an entry date.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}

// meanHundredths rounds sum/count to two decimals, half away from zero.
// Works on integers: 41/40 is 1.03, not 1.02. sum is never negative.
func meanHundredths(sum, count int) float64 {
	q := (sum*200 + count) / (2 * count)
	return float64(q) / 100
}

func clone(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
