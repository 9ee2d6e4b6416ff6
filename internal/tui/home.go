package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/calma/internal/exercise"
	"github.com/sadopc/calma/internal/insights"
	"github.com/sadopc/calma/internal/mood"
	"github.com/sadopc/calma/internal/moodlog"
)

type homeModel struct {
	mlog   *moodlog.Log
	now    func() time.Time
	width  int
	height int

	history   []mood.Entry
	overview  insights.Overview
	completed []string
	// Custom exercise titles by id, for the completed list.
	customTitles map[string]string

	// Clearing history asks for confirmation first.
	confirming bool
}

func newHomeModel(l *moodlog.Log, now func() time.Time) homeModel {
	return homeModel{mlog: l, now: now}
}

func (h homeModel) Init() tea.Cmd {
	return h.loadData()
}

func (h *homeModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

type homeDataMsg struct {
	history   []mood.Entry
	completed []string
	custom    []exercise.Custom
}

func (h homeModel) loadData() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		return homeDataMsg{
			history:   h.mlog.LoadHistory(ctx),
			completed: h.mlog.LoadCompleted(ctx),
			custom:    h.mlog.LoadCustomExercises(ctx),
		}
	}
}

func (h homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case homeDataMsg:
		h.setHistory(msg.history)
		h.completed = msg.completed
		h.customTitles = make(map[string]string, len(msg.custom))
		for _, c := range msg.custom {
			h.customTitles[c.ID] = c.Title
		}
		return h, nil

	case historyChangedMsg:
		h.setHistory(msg.history)
		return h, nil

	case exerciseCompletedMsg:
		return h, h.loadData()

	case tea.KeyMsg:
		if h.confirming {
			return h.updateConfirm(msg)
		}
		if key.Matches(msg, keys.Delete) && len(h.history) > 0 {
			h.confirming = true
		}
	}
	return h, nil
}

func (h *homeModel) setHistory(history []mood.Entry) {
	h.history = history
	h.overview = insights.Summarize(history)
}

func (h homeModel) updateConfirm(msg tea.KeyMsg) (homeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Confirm):
		h.confirming = false
		return h, h.clearHistory()
	case key.Matches(msg, keys.Back):
		h.confirming = false
	}
	return h, nil
}

func (h homeModel) clearHistory() tea.Cmd {
	return func() tea.Msg {
		if err := h.mlog.ClearAll(context.Background()); err != nil {
			return statusMsg{text: fmt.Sprintf("No se pudo borrar el historial: %v", err), isError: true}
		}
		return historyChangedMsg{history: []mood.Entry{}}
	}
}

func (h homeModel) view() string {
	if h.width < 20 {
		return "Terminal demasiado pequeña"
	}
	w := h.width - 4

	panels := []string{h.renderTodayPanel(w), h.renderSummaryPanel(w)}
	if h.overview.ShowAlert {
		panels = append(panels, h.renderAlertPanel(w))
	}
	panels = append(panels, h.renderCompletedPanel(w))
	if h.confirming {
		panels = append(panels, h.renderConfirm(w))
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func (h homeModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("¿Cómo te sientes hoy?")
	today := mood.Today(h.now())

	if last := h.overview.Last; last != nil && last.Date == today {
		face := emotionStyle(last.Emotion).Bold(true).Render(emotionLabel(last.Emotion))
		content := lipgloss.JoinVertical(lipgloss.Center,
			title,
			"",
			face,
			mutedStyle.Render("Ya registraste tu emoción de hoy. Pulsa 2 para cambiarla."),
		)
		return activePanelStyle.Width(w).Align(lipgloss.Center).Render(content)
	}

	hint := mutedStyle.Render("Aún no registras tu emoción de hoy. Pulsa 2 para hacerlo.")
	if last := h.overview.Last; last != nil {
		hint = lipgloss.JoinVertical(lipgloss.Center,
			mutedStyle.Render(fmt.Sprintf("Último registro: %s (%s)", emotionLabel(last.Emotion), last.Date)),
			hint,
		)
	}
	return panelStyle.Width(w).Align(lipgloss.Center).Render(
		lipgloss.JoinVertical(lipgloss.Center, title, "", hint),
	)
}

func (h homeModel) renderSummaryPanel(w int) string {
	title := titleStyle.Render("Resumen")
	count := highlightStyle.Render(fmt.Sprintf("%d registros", len(h.history)))
	header := fmt.Sprintf("%s  %s", title, count)

	if !h.overview.HasAverage {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			mutedStyle.Render("Registra al menos 3 días para ver tu promedio emocional."),
		)
		return panelStyle.Width(w).Render(content)
	}

	rows := []string{
		header,
		fmt.Sprintf("  Promedio      %s  %s", highlightStyle.Render(formatAverage(h.overview.Average)), h.overview.Outlook),
		fmt.Sprintf("  Más frecuente %s", emotionStyle(h.overview.MostFrequent).Render(emotionLabel(h.overview.MostFrequent))),
		"",
		mutedStyle.Render("  d: borrar historial emocional"),
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (h homeModel) renderAlertPanel(w int) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		errorStyle.Bold(true).Render("Has tenido varios días bajos"),
		"Considera hablar con tu persona de confianza (6) o hacer un ejercicio de respiración (5).",
	)
	return alertPanelStyle.Width(w).Render(content)
}

func (h homeModel) renderCompletedPanel(w int) string {
	title := titleStyle.Render("Ejercicios completados")
	if len(h.completed) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Aún no has completado ningún ejercicio."),
		))
	}

	rows := []string{title}
	for _, id := range h.completed {
		name, ok := h.customTitles[id]
		if !ok {
			name = exercise.Title(id)
		}
		rows = append(rows, successStyle.Render("  ✓ ")+name)
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (h homeModel) renderConfirm(w int) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		warningStyle.Bold(true).Render("¿Borrar historial?"),
		"Esta acción no se puede deshacer.",
		"",
		mutedStyle.Render("  y: borrar  esc: cancelar"),
	)
	return activePanelStyle.Width(w).Render(content)
}
