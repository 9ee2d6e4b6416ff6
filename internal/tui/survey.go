package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/calma/internal/contact"
	"github.com/sadopc/calma/internal/exercise"
	"github.com/sadopc/calma/internal/insights"
	"github.com/sadopc/calma/internal/survey"
)

type surveyResult struct {
	total          int
	severity       insights.Severity
	recommendation insights.Recommendation
}

type surveyModel struct {
	dispatcher contact.Dispatcher
	helpLine   contact.HelpLine
	width      int
	height     int

	formActive bool
	form       *huh.Form
	// Backing store for the form's select values; the slice header is
	// copied with the model but the array is shared.
	answers []int

	result *surveyResult
}

func newSurveyModel(d contact.Dispatcher, h contact.HelpLine) surveyModel {
	return surveyModel{
		dispatcher: d,
		helpLine:   h,
		answers:    make([]int, len(survey.Questions)),
	}
}

func (s *surveyModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s surveyModel) update(msg tea.Msg) (surveyModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		case key.Matches(msg, keys.Back):
			s.result = nil
			return s, nil
		}
		if s.result != nil && s.result.recommendation.Escalate {
			return s, helpLineKey(msg, s.dispatcher, s.helpLine)
		}
	}
	return s, nil
}

func (s surveyModel) showForm() (surveyModel, tea.Cmd) {
	options := make([]huh.Option[int], len(survey.ScaleLabels))
	for i, label := range survey.ScaleLabels {
		options[i] = huh.NewOption(label, i)
	}

	fields := make([]huh.Field, len(survey.Questions))
	for i, q := range survey.Questions {
		s.answers[i] = survey.MinValue
		fields[i] = huh.NewSelect[int]().
			Title(fmt.Sprintf("%d. %s", i+1, q)).
			Options(options...).
			Value(&s.answers[i])
	}

	s.form = huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).WithShowErrors(true)
	s.formActive = true
	s.result = nil
	return s, s.form.Init()
}

func (s surveyModel) updateForm(msg tea.Msg) (surveyModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		res, err := scoreSurvey(s.answers)
		if err != nil {
			return s, errorCmd("Encuesta inválida", err)
		}
		s.result = &res
		return s, nil
	}

	return s, cmd
}

func scoreSurvey(answers []int) (surveyResult, error) {
	resp, err := survey.FromAnswers(answers)
	if err != nil {
		return surveyResult{}, err
	}
	total, err := resp.TotalScore()
	if err != nil {
		return surveyResult{}, err
	}
	sev := insights.ClassifySurvey(resp.Answers())
	return surveyResult{
		total:          total,
		severity:       sev,
		recommendation: insights.ForSeverity(sev),
	}, nil
}

func (s surveyModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Autoevaluación")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	if s.result == nil {
		intro := []string{
			title,
			"",
			"Responde 5 preguntas breves sobre cómo te has sentido hoy.",
			"Tus respuestas no se guardan.",
			"",
			mutedStyle.Render("  enter: comenzar"),
		}
		return panelStyle.Width(w).Render(strings.Join(intro, "\n"))
	}

	return s.renderResult(w)
}

func (s surveyModel) renderResult(w int) string {
	res := s.result
	rec := res.recommendation

	style := successStyle
	switch res.severity {
	case insights.Moderado:
		style = warningStyle
	case insights.Alto:
		style = errorStyle
	}

	rows := []string{
		titleStyle.Render("Resultado") + "  " + mutedStyle.Render(fmt.Sprintf("puntaje %d de %d", res.total, survey.MaxValue*len(survey.Questions))),
		"",
		style.Bold(true).Render(rec.Title),
		rec.Message,
		"",
		mutedStyle.Render("Te recomendamos:"),
	}
	for _, name := range exercise.Titles(rec.ExerciseIDs) {
		rows = append(rows, "  • "+name)
	}
	rows = append(rows, "", mutedStyle.Render("  enter: repetir  esc: cerrar  5: ejercicios"))

	panel := panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	if !rec.Escalate {
		return panel
	}
	return lipgloss.JoinVertical(lipgloss.Left, panel, renderHelpLine(s.helpLine, w, true))
}
