package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/calma/internal/contact"
	"github.com/sadopc/calma/internal/moodlog"
)

type contactModel struct {
	mlog       *moodlog.Log
	dispatcher contact.Dispatcher
	helpLine   contact.HelpLine
	width      int
	height     int

	trusted    contact.Contact
	hasContact bool
	confirming bool

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	formName  *string
	formPhone *string
}

func newContactModel(l *moodlog.Log, d contact.Dispatcher, h contact.HelpLine) contactModel {
	name, phone := "", ""
	return contactModel{
		mlog:       l,
		dispatcher: d,
		helpLine:   h,
		formName:   &name,
		formPhone:  &phone,
	}
}

func (c *contactModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type contactDataMsg struct {
	contact contact.Contact
	ok      bool
}

type contactSavedMsg struct{}

func (c contactModel) refresh() tea.Cmd {
	return func() tea.Msg {
		ct, ok := c.mlog.LoadContact(context.Background())
		return contactDataMsg{contact: ct, ok: ok}
	}
}

func (c contactModel) update(msg tea.Msg) (contactModel, tea.Cmd) {
	if msg, ok := msg.(contactDataMsg); ok {
		c.trusted = msg.contact
		c.hasContact = msg.ok
		return c, nil
	}
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if c.confirming {
			return c.updateConfirm(msg)
		}
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return c.showForm()
		case key.Matches(msg, keys.Delete) && c.hasContact:
			c.confirming = true
			return c, nil
		case key.Matches(msg, keys.Call) && c.hasContact:
			return c, openCmd(c.dispatcher, c.trusted.CallURI(), "la llamada a "+c.trusted.Name)
		case key.Matches(msg, keys.Message) && c.hasContact:
			return c, openCmd(c.dispatcher, c.trusted.WhatsAppURI(), "WhatsApp con "+c.trusted.Name)
		}
		return c, helpLineKey(msg, c.dispatcher, c.helpLine)
	}
	return c, nil
}

func (c contactModel) updateConfirm(msg tea.KeyMsg) (contactModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Confirm):
		c.confirming = false
		return c, c.clear()
	case key.Matches(msg, keys.Back):
		c.confirming = false
	}
	return c, nil
}

func (c contactModel) clear() tea.Cmd {
	return func() tea.Msg {
		if err := c.mlog.ClearContact(context.Background()); err != nil {
			return statusMsg{text: fmt.Sprintf("No se pudo eliminar el contacto: %v", err), isError: true}
		}
		return contactDataMsg{}
	}
}

func (c contactModel) showForm() (contactModel, tea.Cmd) {
	*c.formName = c.trusted.Name
	*c.formPhone = c.trusted.Phone

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Nombre").Placeholder("Nombre de tu contacto").
				Value(c.formName),
			huh.NewInput().Title("Teléfono").Placeholder("10 a 15 dígitos, con lada").
				CharLimit(15).Value(c.formPhone),
		).Title("Contacto de confianza"),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c contactModel) updateForm(msg tea.Msg) (contactModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		c.form = nil
		return c, c.save(contact.Contact{Name: *c.formName, Phone: *c.formPhone})
	}

	return c, cmd
}

func (c contactModel) save(ct contact.Contact) tea.Cmd {
	return func() tea.Msg {
		err := c.mlog.SaveContact(context.Background(), ct)
		switch {
		case errors.Is(err, contact.ErrIncomplete):
			return statusMsg{text: "Completa nombre y teléfono", isError: true}
		case errors.Is(err, contact.ErrInvalidPhone):
			return statusMsg{text: "Número inválido: usa de 10 a 15 dígitos", isError: true}
		case err != nil:
			return statusMsg{text: fmt.Sprintf("No se pudo guardar el contacto: %v", err), isError: true}
		}
		return contactSavedMsg{}
	}
}

func (c contactModel) view() string {
	w := c.width - 4
	title := titleStyle.Render("Contacto de confianza")

	if c.formActive && c.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", c.form.View()),
		)
	}

	var rows []string
	rows = append(rows, title, "")
	if c.hasContact {
		label := lipgloss.NewStyle().Width(12)
		rows = append(rows,
			fmt.Sprintf("  %s %s", label.Render("Nombre"), highlightStyle.Render(c.trusted.Name)),
			fmt.Sprintf("  %s %s", label.Render("Teléfono"), highlightStyle.Render(c.trusted.Phone)),
			"",
			mutedStyle.Render("  l: llamar  w: WhatsApp  enter: editar  d: eliminar"),
		)
	} else {
		rows = append(rows,
			"Aún no tienes un contacto de confianza.",
			"Agrega a alguien a quien puedas llamar cuando lo necesites.",
			"",
			mutedStyle.Render("  enter: agregar contacto"),
		)
	}
	if c.confirming {
		rows = append(rows, "", warningStyle.Render(fmt.Sprintf("¿Eliminar a %s? y: sí  esc: no", c.trusted.Name)))
	}

	panel := panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.JoinVertical(lipgloss.Left, panel, renderHelpLine(c.helpLine, w, !c.hasContact))
}
