package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/calma/internal/contact"
	"github.com/sadopc/calma/internal/export"
	"github.com/sadopc/calma/internal/mood"
	"github.com/sadopc/calma/internal/moodlog"
)

// Options configures the App. Zero values fall back to defaults.
type Options struct {
	Dispatcher contact.Dispatcher
	HelpLine   contact.HelpLine
	WindowDays int
	// ExportDir is where exports are written; empty means the home directory.
	ExportDir string
	Now       func() time.Time
}

// App is the root Bubble Tea model.
type App struct {
	mlog   *moodlog.Log
	opts   Options
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	home      homeModel
	checkIn   checkInModel
	trends    trendsModel
	survey    surveyModel
	exercises exercisesModel
	contact   contactModel

	help    help.Model
	status  string
	isError bool
}

func NewApp(l *moodlog.Log, opts Options) App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.HelpLine == (contact.HelpLine{}) {
		opts.HelpLine = contact.DefaultHelpLine()
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = mood.WindowWeek
	}

	h := help.New()
	h.ShowAll = false

	return App{
		mlog:       l,
		opts:       opts,
		activeView: viewHome,
		home:       newHomeModel(l, opts.Now),
		checkIn:    newCheckInModel(l, opts.Now),
		trends:     newTrendsModel(l, opts.Now, opts.WindowDays),
		survey:     newSurveyModel(opts.Dispatcher, opts.HelpLine),
		exercises:  newExercisesModel(l, opts.Now),
		contact:    newContactModel(l, opts.Dispatcher, opts.HelpLine),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.home.Init(),
		a.checkIn.refresh(),
		a.trends.refresh(),
		a.exercises.refresh(),
		a.contact.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.home.setSize(a.width, contentHeight)
		a.checkIn.setSize(a.width, contentHeight)
		a.trends.setSize(a.width, contentHeight)
		a.survey.setSize(a.width, contentHeight)
		a.exercises.setSize(a.width, contentHeight)
		a.contact.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewHome)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewCheckIn)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewTrends)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewSurvey)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewExercises)
		case key.Matches(msg, keys.Tab6):
			return a.switchTo(viewContact)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		// The pacer keeps running while other views are shown.
		var cmd tea.Cmd
		a.exercises, cmd = a.exercises.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		a.isError = msg.isError
		return a, nil

	case checkInSavedMsg:
		a.setStatus(fmt.Sprintf("Registro guardado: %s", emotionLabel(msg.emotion)))
		return a.broadcast(historyChangedMsg{history: msg.history})

	case historyChangedMsg:
		return a.broadcast(msg)

	case exerciseCompletedMsg:
		a.setStatus("¡Ejercicio completado!")
		return a.broadcast(msg)

	case customSavedMsg:
		a.setStatus("Ejercicio guardado: " + msg.title)
		return a, a.exercises.refresh()

	case contactSavedMsg:
		a.setStatus("Contacto guardado")
		return a, a.contact.refresh()

	case exportDoneMsg:
		a.setStatus("Exportado a " + msg.path)
		a.exportPicking = false
		return a, nil

	// Data messages go to their view whichever one is active.
	case homeDataMsg:
		a.home, _ = a.home.update(msg)
		return a, nil
	case exercisesDataMsg:
		a.exercises, _ = a.exercises.update(msg)
		return a, nil
	case contactDataMsg:
		a.contact, _ = a.contact.update(msg)
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) setStatus(text string) {
	a.status = text
	a.isError = false
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	return a, a.refreshCurrentView()
}

// broadcast hands msg to every view that tracks it.
func (a App) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.home, cmd = a.home.update(msg)
	cmds = append(cmds, cmd)
	a.checkIn, cmd = a.checkIn.update(msg)
	cmds = append(cmds, cmd)
	a.trends, cmd = a.trends.update(msg)
	cmds = append(cmds, cmd)
	a.exercises, cmd = a.exercises.update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewHome:
		a.home, cmd = a.home.update(msg)
	case viewCheckIn:
		a.checkIn, cmd = a.checkIn.update(msg)
	case viewTrends:
		a.trends, cmd = a.trends.update(msg)
	case viewSurvey:
		a.survey, cmd = a.survey.update(msg)
	case viewExercises:
		a.exercises, cmd = a.exercises.update(msg)
	case viewContact:
		a.contact, cmd = a.contact.update(msg)
	}
	return a, cmd
}

// isFormActive reports whether the active view owns the keyboard, either
// through a form or a pending confirmation.
func (a App) isFormActive() bool {
	switch a.activeView {
	case viewHome:
		return a.home.confirming
	case viewSurvey:
		return a.survey.formActive
	case viewExercises:
		return a.exercises.formActive
	case viewContact:
		return a.contact.formActive || a.contact.confirming
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewHome:
		return a.home.loadData()
	case viewCheckIn:
		return a.checkIn.refresh()
	case viewTrends:
		return a.trends.refresh()
	case viewExercises:
		return a.exercises.refresh()
	case viewContact:
		return a.contact.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewHome:
		content = a.home.view()
	case viewCheckIn:
		content = a.checkIn.view()
	case viewTrends:
		content = a.trends.view()
	case viewSurvey:
		content = a.survey.view()
	case viewExercises:
		content = a.exercises.view()
	case viewContact:
		content = a.contact.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("calma")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.isError {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Pacer indicator while it runs in the background.
	pacerInfo := ""
	if p := a.exercises.pacer; p.Running() && a.activeView != viewExercises {
		pacerInfo = accentStyle.Render(" ● " + p.Phase().String() + " " + formatCountdown(p.Remaining()))
	}

	left := footerStyle.Render(helpView)
	right := pacerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Exportar historial")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range export.Formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+strings.ToUpper(f)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: exportar  esc: cancelar"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format string) tea.Cmd {
	return func() tea.Msg {
		dir := a.opts.ExportDir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Error al exportar: %v", err), isError: true}
			}
			dir = home
		}

		entries := a.mlog.LoadHistory(context.Background())
		path := export.DefaultPath(dir, format, a.opts.Now())
		if err := export.ToFile(format, entries, path); err != nil {
			return statusMsg{text: fmt.Sprintf("Error al exportar %s: %v", strings.ToUpper(format), err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
