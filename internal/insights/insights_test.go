package insights

import (
	"testing"
	"time"

	"github.com/sadopc/calma/internal/mood"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stats(avg float64) mood.Stats { return mood.Stats{Average: avg, Count: 1} }

func TestClassifyMoodCascade(t *testing.T) {
	tests := []struct {
		name    string
		avg     float64
		lowDays int
		want    Tier
	}{
		{"urgent wins over high average", 4.5, 3, UrgentPattern},
		{"urgent with low average", 1.2, 5, UrgentPattern},
		{"stable at exactly 4", 4.0, 2, StablePositive},
		{"stable high", 5.0, 0, StablePositive},
		{"low average", 2.99, 2, LowAverage},
		{"neutral at exactly 3", 3.0, 0, NeutralTier},
		{"neutral just below 4", 3.99, 1, NeutralTier},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyMood(stats(tt.avg), tt.lowDays))
		})
	}
}

func TestClassifyMoodEmptyStats(t *testing.T) {
	// An empty window has no average; it reads as zero.
	assert.Equal(t, LowAverage, ClassifyMood(mood.Stats{}, 0))
}

func TestClassifySurvey(t *testing.T) {
	tests := []struct {
		answers []int
		want    Severity
	}{
		{[]int{0, 0, 0, 0, 0}, Leve},
		{[]int{1, 1, 1, 1, 1}, Leve},
		{[]int{2, 1, 1, 1, 1}, Moderado},
		{[]int{2, 2, 2, 2, 2}, Moderado},
		{[]int{3, 2, 2, 2, 2}, Alto},
		{[]int{3, 3, 3, 3, 3}, Alto},
		{[]int{4, 4, 4, 4, 4}, Alto},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifySurvey(tt.answers), "%v", tt.answers)
	}
}

func TestForTier(t *testing.T) {
	urgent := ForTier(UrgentPattern)
	assert.True(t, urgent.SuggestContact)
	assert.Equal(t, []string{"respiracion", "grounding"}, urgent.ExerciseIDs)

	for _, tier := range []Tier{StablePositive, LowAverage, NeutralTier} {
		r := ForTier(tier)
		assert.False(t, r.SuggestContact, tier)
		assert.NotEmpty(t, r.Message, tier)
		assert.NotEmpty(t, r.ExerciseIDs, tier)
	}

	assert.Equal(t, ForTier(NeutralTier), ForTier("SOMETHING_ELSE"))
}

func TestForSeverityFallsBackToAlto(t *testing.T) {
	alto := ForSeverity(Alto)
	assert.True(t, alto.Escalate)
	assert.Equal(t, "No estás solo/a", alto.Title)
	assert.Equal(t, alto, ForSeverity("grave"))
	assert.Equal(t, alto, ForSeverity(""))

	assert.False(t, ForSeverity(Leve).Escalate)
	assert.Equal(t, []string{"grounding", "escritura"}, ForSeverity(Moderado).ExerciseIDs)
}

func TestPayloadsAreCopies(t *testing.T) {
	r := ForTier(UrgentPattern)
	r.ExerciseIDs[0] = "changed"
	assert.Equal(t, "respiracion", ForTier(UrgentPattern).ExerciseIDs[0])
}

func TestAnalyze(t *testing.T) {
	ref := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	history := []mood.Entry{
		{Date: "2024-03-10", Emotion: mood.Bien},
		{Date: "2024-03-09", Emotion: mood.Triste},
		{Date: "2024-03-08", Emotion: mood.Ansioso},
		{Date: "2024-03-05", Emotion: mood.Triste},
		{Date: "2024-02-01", Emotion: mood.Bien}, // outside the week
	}
	in := Analyze(history, mood.WindowWeek, ref)

	require.Len(t, in.Entries, 4)
	assert.Equal(t, "2024-03-05", in.Entries[0].Date, "entries are chronological")
	assert.Equal(t, 3, in.LowDays)
	assert.Equal(t, UrgentPattern, in.Tier)
	assert.True(t, in.Recommendation.SuggestContact)
	assert.Equal(t, 2.25, in.Stats.Average)
	assert.Equal(t, "2024-03-09", in.Stats.Min.Date, "ties resolve to the most recent entry")
	assert.True(t, in.Enough())
}

func TestAnalyzeEmptyWindow(t *testing.T) {
	in := Analyze(nil, mood.WindowMonth, time.Now())
	assert.False(t, in.Enough())
	assert.False(t, in.Stats.HasData())
	assert.Zero(t, in.LowDays)
}

func TestSummarize(t *testing.T) {
	ov := Summarize(nil)
	assert.Nil(t, ov.Last)
	assert.False(t, ov.HasAverage)

	two := []mood.Entry{{Date: "2024-01-01", Emotion: mood.Triste}, {Date: "2024-01-02", Emotion: mood.Bien}}
	ov = Summarize(two)
	require.NotNil(t, ov.Last)
	assert.Equal(t, mood.Bien, ov.Last.Emotion)
	assert.False(t, ov.HasAverage, "average needs three check-ins")

	low := []mood.Entry{
		{Date: "2024-01-04", Emotion: mood.Bien},
		{Date: "2024-01-03", Emotion: mood.Triste},
		{Date: "2024-01-02", Emotion: mood.Ansioso},
		{Date: "2024-01-01", Emotion: mood.Triste},
	}
	ov = Summarize(low)
	assert.True(t, ov.HasAverage)
	assert.Equal(t, 2.25, ov.Average)
	assert.Equal(t, "Bajo", ov.Outlook)
	assert.True(t, ov.ShowAlert)
	assert.Equal(t, mood.Triste, ov.MostFrequent)
}
