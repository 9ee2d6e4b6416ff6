package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/calma/internal/exercise"
	"github.com/sadopc/calma/internal/moodlog"
)

// exerciseItem is a catalog or custom exercise as listed.
type exerciseItem struct {
	id          string
	title       string
	description string
	steps       []string
	audio       bool
	custom      bool
}

func catalogItems() []exerciseItem {
	var items []exerciseItem
	for _, e := range exercise.All() {
		items = append(items, exerciseItem{
			id:          e.ID,
			title:       e.Title,
			description: e.Description,
			steps:       e.Steps,
			audio:       e.HasAudio,
		})
	}
	return items
}

type exercisesModel struct {
	mlog   *moodlog.Log
	now    func() time.Time
	width  int
	height int

	items     []exerciseItem
	completed map[string]bool
	cursor    int
	viewing   bool // true = detail of the selected exercise

	pacer *exercise.Pacer

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formTitle *string
	formDesc  *string
	formSteps *string
}

func newExercisesModel(l *moodlog.Log, now func() time.Time) exercisesModel {
	title, desc, steps := "", "", ""
	return exercisesModel{
		mlog:      l,
		now:       now,
		items:     catalogItems(),
		completed: map[string]bool{},
		pacer:     exercise.NewPacer(),
		formTitle: &title,
		formDesc:  &desc,
		formSteps: &steps,
	}
}

func (m *exercisesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type exercisesDataMsg struct {
	custom    []exercise.Custom
	completed []string
}

func (m exercisesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		return exercisesDataMsg{
			custom:    m.mlog.LoadCustomExercises(ctx),
			completed: m.mlog.LoadCompleted(ctx),
		}
	}
}

func (m exercisesModel) selected() (exerciseItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return exerciseItem{}, false
	}
	return m.items[m.cursor], true
}

func (m exercisesModel) update(msg tea.Msg) (exercisesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case exercisesDataMsg:
		m.items = catalogItems()
		for _, c := range msg.custom {
			m.items = append(m.items, exerciseItem{
				id:          c.ID,
				title:       c.Title,
				description: c.Description,
				steps:       c.Steps,
				custom:      true,
			})
		}
		m.completed = make(map[string]bool, len(msg.completed))
		for _, id := range msg.completed {
			m.completed[id] = true
		}
		if m.cursor >= len(m.items) {
			m.cursor = max(0, len(m.items)-1)
		}
		return m, nil

	case exerciseCompletedMsg:
		m.completed[msg.id] = true
		return m, nil

	case tickMsg:
		if m.pacer.Running() {
			m.pacer.Tick(time.Time(msg))
			if m.pacer.Phase() == exercise.PhaseDone {
				return m, statusCmd("Respiración completada. Pulsa c para registrarla.")
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.formActive && m.form != nil {
			return m.updateForm(msg)
		}
		if m.viewing {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m exercisesModel) updateList(msg tea.KeyMsg) (exercisesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(m.items) > 0 {
			m.viewing = true
			m.pacer.Stop()
		}
	case key.Matches(msg, keys.New):
		return m.showNewExerciseForm()
	}
	return m, nil
}

func (m exercisesModel) updateDetail(msg tea.KeyMsg) (exercisesModel, tea.Cmd) {
	item, ok := m.selected()
	if !ok {
		m.viewing = false
		return m, nil
	}
	switch {
	case key.Matches(msg, keys.Back):
		m.viewing = false
		m.pacer.Stop()
	case key.Matches(msg, keys.Start):
		if item.id == exercise.Respiracion && !m.pacer.Running() {
			m.pacer.Start(m.now())
		}
	case key.Matches(msg, keys.Stop):
		if m.pacer.Running() {
			m.pacer.Stop()
			return m, statusCmd("Respiración detenida")
		}
	case key.Matches(msg, keys.Done):
		return m, m.markCompleted(item.id)
	}
	return m, nil
}

func (m exercisesModel) markCompleted(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.mlog.MarkExerciseCompleted(context.Background(), id); err != nil {
			return statusMsg{text: fmt.Sprintf("No se pudo guardar el progreso: %v", err), isError: true}
		}
		return exerciseCompletedMsg{id: id}
	}
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " es obligatorio")
		}
		return nil
	}
}

func (m exercisesModel) showNewExerciseForm() (exercisesModel, tea.Cmd) {
	*m.formTitle = ""
	*m.formDesc = ""
	*m.formSteps = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Título").Placeholder("Ej. Afirmaciones para autoestima").
				Validate(notBlank("El título")).Value(m.formTitle),
			huh.NewInput().Title("Descripción").Placeholder("Breve descripción del ejercicio").
				Validate(notBlank("La descripción")).Value(m.formDesc),
			huh.NewText().Title("Pasos (uno por línea)").
				Validate(notBlank("Al menos un paso")).Value(m.formSteps),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m exercisesModel) updateForm(msg tea.Msg) (exercisesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.form = nil
		c, err := exercise.NewCustom(*m.formTitle, *m.formDesc, exercise.SplitSteps(*m.formSteps), m.now())
		if err != nil {
			return m, errorCmd("Campos incompletos", err)
		}
		return m, m.saveCustom(c)
	}

	return m, cmd
}

func (m exercisesModel) saveCustom(c exercise.Custom) tea.Cmd {
	return func() tea.Msg {
		if err := m.mlog.SaveCustomExercise(context.Background(), c); err != nil {
			return statusMsg{text: fmt.Sprintf("No se pudo guardar el ejercicio: %v", err), isError: true}
		}
		return customSavedMsg{title: c.Title}
	}
}

type customSavedMsg struct {
	title string
}

func (m exercisesModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("Crear ejercicio personalizado")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(m.width - 4).Render(content)
	}

	if m.viewing {
		return m.renderDetail()
	}
	return m.renderList()
}

func (m exercisesModel) renderList() string {
	w := m.width - 4
	rows := []string{titleStyle.Render("Ejercicios"), ""}

	for i, it := range m.items {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		var tags []string
		if it.audio {
			tags = append(tags, "audio")
		}
		if it.custom {
			tags = append(tags, "personal")
		}
		suffix := ""
		if len(tags) > 0 {
			suffix = mutedStyle.Render(" [" + strings.Join(tags, ", ") + "]")
		}
		if m.completed[it.id] {
			suffix += successStyle.Render(" ✓")
		}
		rows = append(rows, style.Render(cursor+it.title)+suffix)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: abrir  n: crear ejercicio"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m exercisesModel) renderDetail() string {
	w := m.width - 4
	it, _ := m.selected()

	rows := []string{
		titleStyle.Render(it.title),
		subtitleStyle.Render(it.description),
		"",
		"Pasos:",
	}
	for _, step := range it.steps {
		rows = append(rows, "  • "+step)
	}
	if it.audio {
		rows = append(rows, "", mutedStyle.Render("  Este ejercicio tiene una guía de audio."))
	}

	controls := "  c: finalizar ejercicio  esc: volver"
	if it.id == exercise.Respiracion {
		rows = append(rows, "", m.renderPacer(w))
		controls = "  s: iniciar respiración  x: detener  " + strings.TrimSpace(controls)
	}
	if m.completed[it.id] {
		rows = append(rows, "", successStyle.Render("  ✓ Ya completaste este ejercicio."))
	}
	rows = append(rows, "", mutedStyle.Render(controls))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m exercisesModel) renderPacer(w int) string {
	p := m.pacer
	inner := w - 6

	var display string
	switch p.Phase() {
	case exercise.PhaseIdle:
		display = pacerStyle.Width(inner).Render(p.Phase().String())
	case exercise.PhaseDone:
		display = successStyle.Bold(true).Width(inner).Align(lipgloss.Center).Render(p.Phase().String())
	case exercise.PhaseHold:
		display = pacerHoldStyle.Width(inner).Render(p.Phase().String() + "  " + formatCountdown(p.Remaining()))
	case exercise.PhaseExhale:
		display = pacerExhaleStyle.Width(inner).Render(p.Phase().String() + "  " + formatCountdown(p.Remaining()))
	default:
		display = pacerStyle.Width(inner).Render(p.Phase().String() + "  " + formatCountdown(p.Remaining()))
	}

	var dots []string
	for i := 1; i <= p.Cycles; i++ {
		switch {
		case p.Phase() == exercise.PhaseDone || i < p.Cycle():
			dots = append(dots, successStyle.Render("●"))
		case i == p.Cycle():
			dots = append(dots, accentStyle.Render("◐"))
		default:
			dots = append(dots, mutedStyle.Render("○"))
		}
	}
	progress := strings.Join(dots, " ") + mutedStyle.Render(fmt.Sprintf("  %.0f%%", p.Progress()*100))

	return activePanelStyle.Width(w - 4).Render(
		lipgloss.JoinVertical(lipgloss.Center, display, "", progress),
	)
}
