package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/calma/internal/exercise"
	"github.com/sadopc/calma/internal/insights"
	"github.com/sadopc/calma/internal/mood"
	"github.com/sadopc/calma/internal/moodlog"
)

type trendsModel struct {
	mlog   *moodlog.Log
	now    func() time.Time
	width  int
	height int

	windowDays int
	history    []mood.Entry
	insight    insights.Insight

	chart barchart.Model
}

func newTrendsModel(l *moodlog.Log, now func() time.Time, windowDays int) trendsModel {
	if windowDays <= 0 {
		windowDays = mood.WindowWeek
	}
	return trendsModel{
		mlog:       l,
		now:        now,
		windowDays: windowDays,
		chart:      barchart.New(60, 12),
	}
}

func (r *trendsModel) setSize(w, h int) {
	r.width = w
	r.height = h
	r.buildChart()
}

func (r trendsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return historyChangedMsg{history: r.mlog.LoadHistory(context.Background())}
	}
}

func (r trendsModel) update(msg tea.Msg) (trendsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyChangedMsg:
		r.history = msg.history
		r.analyze()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.windowDays = mood.WindowWeek
			r.analyze()
		case key.Matches(msg, keys.Right):
			r.windowDays = mood.WindowMonth
			r.analyze()
		}
	}
	return r, nil
}

func (r *trendsModel) analyze() {
	r.insight = insights.Analyze(r.history, r.windowDays, r.now())
	r.buildChart()
}

func (r *trendsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 30 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	labelLayout := "02/01"
	if r.windowDays > mood.WindowWeek {
		labelLayout = "02"
	}

	var bars []barchart.BarData
	for _, e := range r.insight.Entries {
		label := e.Date
		if d, err := time.Parse(mood.DateLayout, e.Date); err == nil {
			label = d.Format(labelLayout)
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  string(e.Emotion),
				Value: float64(e.Value()),
				Style: emotionStyle(e.Emotion),
			}},
		})
	}
	if len(bars) == 0 {
		return
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r trendsModel) view() string {
	w := r.width - 4

	weekTab := inactiveTabStyle.Render("7 días")
	monthTab := inactiveTabStyle.Render("30 días")
	if r.windowDays <= mood.WindowWeek {
		weekTab = activeTabStyle.Render("7 días")
	} else {
		monthTab = activeTabStyle.Render("30 días")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Tendencias"), "  ", weekTab, monthTab,
	)
	nav := mutedStyle.Render("  ←: 7 días  →: 30 días")

	if !r.insight.Enough() {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("Necesitas al menos 2 registros en este periodo para ver tu gráfica."),
			"",
			nav,
		))
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", r.renderLegend(), "", r.renderStats(), "", r.renderRecommendation(), "", nav,
		),
	)
}

func (r trendsModel) renderLegend() string {
	var items []string
	for _, e := range mood.Emotions {
		v, _ := mood.ToOrdinal(e)
		items = append(items, fmt.Sprintf("%s %d %s", emotionStyle(e).Render("●"), v, e))
	}
	return "  " + strings.Join(items, "  ")
}

func (r trendsModel) renderStats() string {
	st := r.insight.Stats
	avgLabel := mood.OrdinalToLabel(st.Average)
	rows := []string{
		mutedStyle.Render(fmt.Sprintf("  %-16s %s", "Estadística", "Valor")),
		mutedStyle.Render("  " + strings.Repeat("─", 40)),
		fmt.Sprintf("  %-16s %s", "Promedio", highlightStyle.Render(formatAverage(st.Average))+" "+emotionLabel(avgLabel)),
	}
	if st.Max != nil {
		rows = append(rows, fmt.Sprintf("  %-16s %s (%s)", "Mejor día", emotionLabel(st.Max.Emotion), st.Max.Date))
	}
	if st.Min != nil {
		rows = append(rows, fmt.Sprintf("  %-16s %s (%s)", "Día más bajo", emotionLabel(st.Min.Emotion), st.Min.Date))
	}
	rows = append(rows, fmt.Sprintf("  %-16s %d", "Días bajos", r.insight.LowDays))
	return strings.Join(rows, "\n")
}

func (r trendsModel) renderRecommendation() string {
	rec := r.insight.Recommendation
	style := successStyle
	switch r.insight.Tier {
	case insights.UrgentPattern:
		style = errorStyle
	case insights.LowAverage:
		style = warningStyle
	}

	rows := []string{
		style.Bold(true).Render(rec.Title),
		rec.Message,
	}
	if len(rec.ExerciseIDs) > 0 {
		rows = append(rows, mutedStyle.Render("Ejercicios sugeridos: ")+strings.Join(exercise.Titles(rec.ExerciseIDs), ", "))
	}
	if rec.SuggestContact {
		rows = append(rows, accentStyle.Render("Pulsa 6 para contactar a tu persona de confianza."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
