// Package survey holds the fixed self-assessment questionnaire and scores a
// single session's answers.
package survey

import (
	"errors"
	"fmt"
)

// Unanswered marks a question the user has not answered yet.
const Unanswered = -1

const (
	MinValue = 0
	MaxValue = 4
)

var (
	ErrInvalidAnswer = errors.New("invalid survey answer")
	ErrIncomplete    = errors.New("survey incomplete")
)

// Questions is the fixed questionnaire, in order.
var Questions = []string{
	"Hoy me siento muy ansioso o alterado.",
	"Siento que no puedo controlar mis pensamientos negativos.",
	"He tenido pensamientos de rendirme o no querer continuar.",
	"Me cuesta respirar o me siento con presión en el pecho.",
	"Siento que no tengo a nadie con quien hablar.",
}

// ScaleLabels names the answer values 0 through 4.
var ScaleLabels = []string{"Nada", "Poco", "Regular", "Mucho", "Demasiado"}

// Response is one session's answers. It is never persisted.
type Response struct {
	answers []int
}

func NewResponse() *Response {
	a := make([]int, len(Questions))
	for i := range a {
		a[i] = Unanswered
	}
	return &Response{answers: a}
}

// RecordAnswer sets the answer for question index.
func (r *Response) RecordAnswer(index, value int) error {
	if index < 0 || index >= len(r.answers) {
		return fmt.Errorf("%w: question %d out of range [0,%d)", ErrInvalidAnswer, index, len(r.answers))
	}
	if value < MinValue || value > MaxValue {
		return fmt.Errorf("%w: value %d out of range [%d,%d]", ErrInvalidAnswer, value, MinValue, MaxValue)
	}
	r.answers[index] = value
	return nil
}

func (r *Response) IsComplete() bool {
	for _, a := range r.answers {
		if a == Unanswered {
			return false
		}
	}
	return true
}

// TotalScore sums the answers. It fails with ErrIncomplete until every
// question is answered.
func (r *Response) TotalScore() (int, error) {
	if !r.IsComplete() {
		return 0, ErrIncomplete
	}
	total := 0
	for _, a := range r.answers {
		total += a
	}
	return total, nil
}

// Answers returns a copy of the current answers.
func (r *Response) Answers() []int {
	return append([]int(nil), r.answers...)
}

// FromAnswers builds a response from a full answer list, validating each.
func FromAnswers(values []int) (*Response, error) {
	if len(values) != len(Questions) {
		return nil, fmt.Errorf("%w: got %d answers, want %d", ErrInvalidAnswer, len(values), len(Questions))
	}
	r := NewResponse()
	for i, v := range values {
		if err := r.RecordAnswer(i, v); err != nil {
			return nil, err
		}
	}
	return r, nil
}
