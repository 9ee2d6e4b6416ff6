// Package mood holds the daily mood entry model and the pure functions that
// derive sorted, windowed and summarized views from a mood history.
package mood

import (
	"errors"
	"fmt"
	"math"
)

// Emotion is one of the five fixed mood labels.
type Emotion string

const (
	Bien      Emotion = "Bien"
	Tranquilo Emotion = "Tranquilo"
	Neutral   Emotion = "Neutral"
	Ansioso   Emotion = "Ansioso"
	Triste    Emotion = "Triste"
)

// ErrUnknownEmotion is returned for a label outside the fixed set.
var ErrUnknownEmotion = errors.New("unknown emotion")

// Emotions lists the labels from most to least positive.
var Emotions = []Emotion{Bien, Tranquilo, Neutral, Ansioso, Triste}

var ordinals = map[Emotion]int{
	Bien:      5,
	Tranquilo: 4,
	Neutral:   3,
	Ansioso:   2,
	Triste:    1,
}

var emoji = map[Emotion]string{
	Bien:      "😄",
	Tranquilo: "🙂",
	Neutral:   "😐",
	Ansioso:   "😟",
	Triste:    "😢",
}

// ParseEmotion validates a stored or typed label.
func ParseEmotion(s string) (Emotion, error) {
	e := Emotion(s)
	if _, ok := ordinals[e]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEmotion, s)
	}
	return e, nil
}

// ToOrdinal maps a label onto the 1-5 scale.
func ToOrdinal(e Emotion) (int, error) {
	v, ok := ordinals[e]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownEmotion, string(e))
	}
	return v, nil
}

// Emoji returns the face shown next to a label, or "" if unknown.
func (e Emotion) Emoji() string { return emoji[e] }

func (e Emotion) Valid() bool {
	_, ok := ordinals[e]
	return ok
}

// OrdinalToLabel maps a (possibly fractional) score to the nearest label,
// clamped to [1,5].
func OrdinalToLabel(value float64) Emotion {
	n := int(math.Round(value))
	if n < 1 {
		n = 1
	}
	if n > 5 {
		n = 5
	}
	return Emotions[5-n]
}

// Outlook is the home screen wording for an average score.
func Outlook(average float64) string {
	switch {
	case average >= 4.5:
		return "Muy positivo"
	case average >= 3.5:
		return "Estable"
	case average >= 2.5:
		return "Inestable"
	default:
		return "Bajo"
	}
}
