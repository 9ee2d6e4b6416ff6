// Package insights maps mood statistics and survey answers to risk tiers,
// severity levels and the fixed recommendation shown for each.
package insights

import (
	"time"

	"github.com/sadopc/calma/internal/mood"
)

// Tier is the outcome of classifying a mood window.
type Tier string

const (
	UrgentPattern  Tier = "URGENT_PATTERN"
	StablePositive Tier = "STABLE_POSITIVE"
	LowAverage     Tier = "LOW_AVERAGE"
	NeutralTier    Tier = "NEUTRAL"
)

// Severity is the outcome of scoring the self-assessment survey.
type Severity string

const (
	Leve     Severity = "leve"
	Moderado Severity = "moderado"
	Alto     Severity = "alto"
)

const urgentLowDays = 3

// ClassifyMood evaluates the rules in order; the first match wins. The low
// day rule is checked before the average so a high average never masks a run
// of low days.
func ClassifyMood(stats mood.Stats, lowDayCount int) Tier {
	avg := stats.Average
	switch {
	case lowDayCount >= urgentLowDays:
		return UrgentPattern
	case avg >= 4.0:
		return StablePositive
	case avg < 3.0:
		return LowAverage
	default:
		return NeutralTier
	}
}

// ClassifySurvey sums a complete set of answers. Callers must check
// completeness first; unanswered sentinels are not handled here.
func ClassifySurvey(answers []int) Severity {
	total := 0
	for _, a := range answers {
		total += a
	}
	switch {
	case total > 10:
		return Alto
	case total > 5:
		return Moderado
	default:
		return Leve
	}
}

// Insight is everything the trends and home views show for one window.
type Insight struct {
	WindowDays     int
	Entries        []mood.Entry // ascending, for charting
	Stats          mood.Stats
	LowDays        int
	Tier           Tier
	Recommendation Recommendation
}

// Enough reports whether the window has enough points to chart and advise on.
func (in Insight) Enough() bool { return len(in.Entries) > 1 }

// Analyze filters history to the window ending at reference and classifies it.
func Analyze(history []mood.Entry, windowDays int, reference time.Time) Insight {
	window := mood.SortAscending(mood.FilterByWindow(history, windowDays, reference))
	stats := mood.ComputeStats(mood.SortDescending(window))
	low := mood.CountLowDays(window, mood.DefaultLowThreshold)
	tier := ClassifyMood(stats, low)
	return Insight{
		WindowDays:     windowDays,
		Entries:        window,
		Stats:          stats,
		LowDays:        low,
		Tier:           tier,
		Recommendation: ForTier(tier),
	}
}

// Overview is the home screen summary over the whole history.
type Overview struct {
	Last         *mood.Entry
	Average      float64
	HasAverage   bool
	Outlook      string
	ShowAlert    bool
	MostFrequent mood.Emotion
}

// minOverviewEntries is how many check-ins the home screen waits for before
// showing an average.
const minOverviewEntries = 3

func Summarize(history []mood.Entry) Overview {
	var ov Overview
	if last, ok := mood.Latest(history); ok {
		ov.Last = &last
	}
	ov.MostFrequent, _ = mood.MostFrequentEmotion(mood.SortDescending(history))
	if len(history) < minOverviewEntries {
		return ov
	}
	st := mood.ComputeStats(history)
	ov.Average = st.Average
	ov.HasAverage = st.HasData()
	ov.Outlook = mood.Outlook(st.Average)
	ov.ShowAlert = mood.CountLowDays(history, mood.DefaultLowThreshold) >= urgentLowDays
	return ov
}
