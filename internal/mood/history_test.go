package mood

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(date string, e Emotion) Entry { return Entry{Date: date, Emotion: e} }

func dates(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Date
	}
	return out
}

func TestParseEmotion(t *testing.T) {
	for _, e := range Emotions {
		got, err := ParseEmotion(string(e))
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}

	_, err := ParseEmotion("Feliz")
	require.ErrorIs(t, err, ErrUnknownEmotion)
	_, err = ParseEmotion("bien")
	require.ErrorIs(t, err, ErrUnknownEmotion, "labels are case sensitive")
}

func TestToOrdinal(t *testing.T) {
	tests := []struct {
		in   Emotion
		want int
	}{
		{Bien, 5},
		{Tranquilo, 4},
		{Neutral, 3},
		{Ansioso, 2},
		{Triste, 1},
	}
	for _, tt := range tests {
		got, err := ToOrdinal(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ToOrdinal("Contento")
	assert.ErrorIs(t, err, ErrUnknownEmotion)
}

func TestOrdinalToLabel(t *testing.T) {
	tests := []struct {
		in   float64
		want Emotion
	}{
		{5, Bien},
		{4.49, Tranquilo},
		{4.5, Bien},
		{3.0, Neutral},
		{2.5, Neutral},
		{1.2, Triste},
		{0, Triste},
		{-3, Triste},
		{9, Bien},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OrdinalToLabel(tt.in), "OrdinalToLabel(%v)", tt.in)
	}
}

func TestOutlook(t *testing.T) {
	assert.Equal(t, "Muy positivo", Outlook(4.5))
	assert.Equal(t, "Estable", Outlook(3.5))
	assert.Equal(t, "Inestable", Outlook(2.5))
	assert.Equal(t, "Bajo", Outlook(2.49))
}

func TestEmoji(t *testing.T) {
	assert.Equal(t, "😄", Bien.Emoji())
	assert.Equal(t, "", Emotion("x").Emoji())
}

// ============================================================
// Sorting
// ============================================================

func TestSortDescending(t *testing.T) {
	h := []Entry{day("2024-01-02", Bien), day("2024-01-05", Triste), day("2024-01-01", Neutral)}
	got := SortDescending(h)
	assert.Equal(t, []string{"2024-01-05", "2024-01-02", "2024-01-01"}, dates(got))
	assert.Equal(t, "2024-01-02", h[0].Date, "input must not be mutated")
}

func TestSortAscending(t *testing.T) {
	h := []Entry{day("2024-01-02", Bien), day("2024-01-05", Triste), day("2024-01-01", Neutral)}
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-05"}, dates(SortAscending(h)))
}

func TestSortReversalAgrees(t *testing.T) {
	h := []Entry{
		day("2024-03-10", Bien), day("2023-12-31", Triste), day("2024-02-29", Neutral),
		day("2024-01-01", Ansioso),
	}
	desc := SortDescending(h)

	reversed := make([]Entry, len(h))
	for i := range h {
		reversed[i] = h[len(h)-1-i]
	}
	asc := SortAscending(reversed)

	for i := range desc {
		assert.Equal(t, desc[i].Date, asc[len(asc)-1-i].Date)
	}
}

func TestSortTiesDoNotPanic(t *testing.T) {
	h := []Entry{day("2024-01-01", Bien), day("2024-01-01", Triste)}
	got := SortDescending(h)
	assert.Equal(t, Bien, got[0].Emotion, "stable sort keeps input order on ties")
	assert.Len(t, SortAscending(nil), 0)
}

// ============================================================
// Window filter
// ============================================================

func TestFilterByWindowInclusiveBoundary(t *testing.T) {
	ref := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	h := []Entry{
		day("2024-03-10", Bien),
		day("2024-03-03", Neutral), // exactly 7 days before
		day("2024-03-02", Triste),  // 8 days before
	}
	got := FilterByWindow(h, WindowWeek, ref)
	assert.Equal(t, []string{"2024-03-10", "2024-03-03"}, dates(got))
}

func TestFilterByWindowCalendarArithmetic(t *testing.T) {
	// Crosses a leap day and a month boundary.
	ref := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	h := []Entry{day("2024-02-23", Bien), day("2024-02-22", Triste)}
	got := FilterByWindow(h, 7, ref)
	assert.Equal(t, []string{"2024-02-23"}, dates(got))
}

func TestFilterByWindowMonth(t *testing.T) {
	ref := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	h := []Entry{day("2024-03-01", Bien), day("2024-02-29", Triste)}
	assert.Equal(t, []string{"2024-03-01"}, dates(FilterByWindow(h, WindowMonth, ref)))
}

func TestFilterByWindowEdgeCases(t *testing.T) {
	ref := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	got := FilterByWindow(nil, 7, ref)
	require.NotNil(t, got)
	assert.Empty(t, got)

	got = FilterByWindow([]Entry{day("2024-03-10", Bien), day("2024-03-09", Bien)}, 0, ref)
	assert.Equal(t, []string{"2024-03-10"}, dates(got))

	got = FilterByWindow([]Entry{day("2024-03-10", Bien)}, -4, ref)
	assert.Len(t, got, 1, "negative window behaves like zero")

	got = FilterByWindow([]Entry{day("10/03/2024", Bien)}, 30, ref)
	assert.Empty(t, got, "unparseable dates are dropped")
}

// ============================================================
// Stats
// ============================================================

func TestComputeStatsEmpty(t *testing.T) {
	st := ComputeStats(nil)
	assert.Nil(t, st.Max)
	assert.Nil(t, st.Min)
	assert.Zero(t, st.Count)
	assert.False(t, st.HasData())
}

func TestComputeStatsSingle(t *testing.T) {
	e := day("2024-01-01", Bien)
	st := ComputeStats([]Entry{e})
	require.NotNil(t, st.Max)
	require.NotNil(t, st.Min)
	assert.Equal(t, e, *st.Max)
	assert.Equal(t, e, *st.Min)
	assert.Equal(t, 5.0, st.Average)
	assert.Equal(t, 1, st.Count)
}

func TestComputeStatsTieBreakFirstOccurrence(t *testing.T) {
	h := SortDescending([]Entry{
		day("2024-01-01", Bien),
		day("2024-01-03", Bien),
		day("2024-01-02", Triste),
		day("2024-01-04", Triste),
	})
	st := ComputeStats(h)
	assert.Equal(t, "2024-01-03", st.Max.Date, "most recent Bien wins when sorted descending")
	assert.Equal(t, "2024-01-04", st.Min.Date)
	assert.Equal(t, 3.0, st.Average)
}

func TestComputeStatsRounding(t *testing.T) {
	// (5+4+4)/3 = 4.333...
	st := ComputeStats([]Entry{day("a", Bien), day("b", Tranquilo), day("c", Tranquilo)})
	assert.Equal(t, 4.33, st.Average)

	// (5+4+4+4+4+4+4+4)/8 = 4.125 -> 4.13 (half away from zero)
	h := []Entry{day("a", Bien)}
	for i := 0; i < 7; i++ {
		h = append(h, day("x", Tranquilo))
	}
	assert.Equal(t, 4.13, ComputeStats(h).Average)

	// (2+1+1)/3 = 1.666... -> 1.67
	assert.Equal(t, 1.67, ComputeStats([]Entry{day("a", Ansioso), day("b", Triste), day("c", Triste)}).Average)

	// Exact halves over 40 entries round up.
	tests := []struct {
		sum  int
		want float64
	}{
		{41, 1.03},
		{87, 2.18},
		{169, 4.23},
		{199, 4.98},
	}
	for _, tt := range tests {
		h := fortyEntries(tt.sum)
		assert.Equal(t, tt.want, ComputeStats(h).Average, "sum %d", tt.sum)
	}
}

// fortyEntries builds 40 entries whose ordinals add up to sum (40..200).
func fortyEntries(sum int) []Entry {
	labels := []Emotion{Triste, Ansioso, Neutral, Tranquilo, Bien}
	extra := sum - 40
	h := make([]Entry, 0, 40)
	for i := 0; i < 40; i++ {
		bump := extra
		if bump > 4 {
			bump = 4
		}
		extra -= bump
		h = append(h, day(fmt.Sprintf("d%d", i), labels[bump]))
	}
	return h
}

func TestComputeStatsIgnoresUnknown(t *testing.T) {
	st := ComputeStats([]Entry{day("a", "Feliz"), day("b", Neutral)})
	assert.Equal(t, 1, st.Count)
	assert.Equal(t, 3.0, st.Average)
}

func TestCountLowDays(t *testing.T) {
	h := []Entry{day("a", Triste), day("b", Ansioso), day("c", Neutral), day("d", Bien), day("e", "???")}
	assert.Equal(t, 2, CountLowDays(h, DefaultLowThreshold))
	assert.Equal(t, 3, CountLowDays(h, 3))
	assert.Equal(t, 0, CountLowDays(nil, DefaultLowThreshold))
}

func TestMostFrequentEmotion(t *testing.T) {
	_, ok := MostFrequentEmotion(nil)
	assert.False(t, ok)

	got, ok := MostFrequentEmotion([]Entry{day("a", Neutral), day("b", Bien), day("c", Bien)})
	require.True(t, ok)
	assert.Equal(t, Bien, got)
}

func TestMostFrequentEmotionFirstSeenWinsTies(t *testing.T) {
	h := []Entry{
		day("a", Triste),
		day("b", Bien),
		day("c", Bien),
		day("d", Triste),
		day("e", Neutral),
	}
	got, _ := MostFrequentEmotion(h)
	assert.Equal(t, Triste, got)

	// Same multiset, different first occurrence.
	h[0], h[1] = h[1], h[0]
	got, _ = MostFrequentEmotion(h)
	assert.Equal(t, Bien, got)
}

func TestLatest(t *testing.T) {
	_, ok := Latest(nil)
	assert.False(t, ok)

	e, ok := Latest([]Entry{day("2024-01-01", Bien), day("2024-02-01", Triste), day("2024-01-15", Neutral)})
	require.True(t, ok)
	assert.Equal(t, Triste, e.Emotion)
}

func TestToday(t *testing.T) {
	assert.Equal(t, "2024-07-04", Today(time.Date(2024, 7, 4, 23, 59, 0, 0, time.UTC)))
}
