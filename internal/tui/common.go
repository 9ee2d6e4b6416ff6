package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/calma/internal/mood"
)

// viewState represents the currently active view.
type viewState int

const (
	viewHome viewState = iota
	viewCheckIn
	viewTrends
	viewSurvey
	viewExercises
	viewContact
)

var viewNames = []string{"Inicio", "Registro", "Tendencias", "Encuesta", "Ejercicios", "Contacto"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// historyChangedMsg is sent after a check-in or a clear so every view that
// shows history reloads.
type historyChangedMsg struct {
	history []mood.Entry
}

type exerciseCompletedMsg struct {
	id string
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(prefix string, err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("%s: %v", prefix, err), isError: true}
	}
}

// formatCountdown renders a pacer phase countdown, rounding up so the last
// second reads 1 rather than 0.
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func formatAverage(avg float64) string {
	return fmt.Sprintf("%.2f", avg)
}

func emotionLabel(e mood.Emotion) string {
	return e.Emoji() + " " + string(e)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
