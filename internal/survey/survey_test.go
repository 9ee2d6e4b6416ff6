package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedQuestionnaire(t *testing.T) {
	assert.Len(t, Questions, 5)
	assert.Equal(t, []string{"Nada", "Poco", "Regular", "Mucho", "Demasiado"}, ScaleLabels)
}

func TestNewResponseIsUnanswered(t *testing.T) {
	r := NewResponse()
	assert.False(t, r.IsComplete())
	assert.Equal(t, []int{-1, -1, -1, -1, -1}, r.Answers())

	_, err := r.TotalScore()
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestRecordAnswerValidation(t *testing.T) {
	r := NewResponse()
	tests := []struct {
		index, value int
		ok           bool
	}{
		{0, 0, true},
		{4, 4, true},
		{-1, 2, false},
		{5, 2, false},
		{2, -1, false},
		{2, 5, false},
	}
	for _, tt := range tests {
		err := r.RecordAnswer(tt.index, tt.value)
		if tt.ok {
			assert.NoError(t, err, "(%d,%d)", tt.index, tt.value)
		} else {
			assert.ErrorIs(t, err, ErrInvalidAnswer, "(%d,%d)", tt.index, tt.value)
		}
	}
	// Rejected answers leave state untouched.
	assert.Equal(t, Unanswered, r.Answers()[2])
}

func TestCompleteAndTotal(t *testing.T) {
	r := NewResponse()
	for i := range Questions {
		require.NoError(t, r.RecordAnswer(i, 2))
	}
	require.True(t, r.IsComplete())
	total, err := r.TotalScore()
	require.NoError(t, err)
	assert.Equal(t, 10, total)

	// Changing an answer is allowed.
	require.NoError(t, r.RecordAnswer(0, 4))
	total, _ = r.TotalScore()
	assert.Equal(t, 12, total)
}

func TestAnswersIsACopy(t *testing.T) {
	r := NewResponse()
	a := r.Answers()
	a[0] = 3
	assert.Equal(t, Unanswered, r.Answers()[0])
}

func TestFromAnswers(t *testing.T) {
	r, err := FromAnswers([]int{0, 1, 2, 3, 4})
	require.NoError(t, err)
	total, err := r.TotalScore()
	require.NoError(t, err)
	assert.Equal(t, 10, total)

	_, err = FromAnswers([]int{1, 2})
	assert.ErrorIs(t, err, ErrInvalidAnswer)

	_, err = FromAnswers([]int{1, 2, 3, 4, 9})
	assert.ErrorIs(t, err, ErrInvalidAnswer)
}
