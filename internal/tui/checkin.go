package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/calma/internal/mood"
	"github.com/sadopc/calma/internal/moodlog"
)

type checkInModel struct {
	mlog   *moodlog.Log
	now    func() time.Time
	width  int
	height int

	cursor int
	// Emotion already recorded for today, if any.
	today mood.Emotion
}

func newCheckInModel(l *moodlog.Log, now func() time.Time) checkInModel {
	return checkInModel{mlog: l, now: now}
}

func (c *checkInModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c checkInModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return historyChangedMsg{history: c.mlog.LoadHistory(context.Background())}
	}
}

func (c checkInModel) update(msg tea.Msg) (checkInModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyChangedMsg:
		c.setToday(msg.history)
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, keys.Down):
			if c.cursor < len(mood.Emotions)-1 {
				c.cursor++
			}
		case key.Matches(msg, keys.Enter):
			return c, c.save(mood.Emotions[c.cursor])
		}
	}
	return c, nil
}

func (c *checkInModel) setToday(history []mood.Entry) {
	c.today = ""
	today := mood.Today(c.now())
	for _, e := range history {
		if e.Date == today {
			c.today = e.Emotion
			c.cursor = indexOfEmotion(e.Emotion)
			return
		}
	}
}

func indexOfEmotion(e mood.Emotion) int {
	for i, em := range mood.Emotions {
		if em == e {
			return i
		}
	}
	return 0
}

func (c checkInModel) save(e mood.Emotion) tea.Cmd {
	today := mood.Today(c.now())
	return func() tea.Msg {
		history, err := c.mlog.UpsertToday(context.Background(), e, today)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("No se pudo guardar tu registro: %v", err), isError: true}
		}
		return checkInSavedMsg{history: history, emotion: e}
	}
}

type checkInSavedMsg struct {
	history []mood.Entry
	emotion mood.Emotion
}

func (c checkInModel) view() string {
	w := c.width - 4
	title := titleStyle.Render("Registro diario")
	date := mutedStyle.Render(mood.Today(c.now()))

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", date),
		"",
		"¿Cómo te sientes hoy?",
		"",
	}
	for i, e := range mood.Emotions {
		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		mark := ""
		if e == c.today {
			mark = successStyle.Render("  ✓ hoy")
		}
		rows = append(rows, style.Render(cursor)+emotionStyle(e).Render(emotionLabel(e))+mark)
	}

	rows = append(rows, "")
	if c.today != "" {
		rows = append(rows, mutedStyle.Render("  Registrar de nuevo reemplaza la emoción de hoy."))
	}
	rows = append(rows, mutedStyle.Render("  ↑/↓: elegir  enter: guardar"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
