package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/calma/internal/contact"
)

// openCmd hands uri to the dispatcher and reports the outcome in the footer.
func openCmd(d contact.Dispatcher, uri, what string) tea.Cmd {
	return func() tea.Msg {
		if err := d.Open(context.Background(), uri); err != nil {
			return statusMsg{text: fmt.Sprintf("No se pudo abrir %s: %v", what, err), isError: true}
		}
		return statusMsg{text: "Abriendo " + what}
	}
}

// helpLineKey maps the help line shortcuts to dispatches. It returns nil for
// any other key.
func helpLineKey(msg tea.KeyMsg, d contact.Dispatcher, h contact.HelpLine) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Urgent):
		return openCmd(d, h.CallURI(), "la línea de ayuda")
	case key.Matches(msg, keys.Message):
		return openCmd(d, h.WhatsAppURI(), "WhatsApp de apoyo")
	case key.Matches(msg, keys.Video) && h.VideoURL != "":
		return openCmd(d, h.VideoURL, "el video de respiración")
	case key.Matches(msg, keys.Guide) && h.GuideURL != "":
		return openCmd(d, h.GuideURL, "la guía de primeros auxilios psicológicos")
	}
	return nil
}

// renderHelpLine draws the help line panel. withMessage lists the WhatsApp
// shortcut, which the contact view keeps for the trusted contact when one is set.
func renderHelpLine(h contact.HelpLine, w int, withMessage bool) string {
	rows := []string{
		errorStyle.Bold(true).Render("Ayuda urgente"),
		"Si sientes que estás en peligro o necesitas hablar con alguien ahora, no estás solo/a.",
		"",
		fmt.Sprintf("  a  Llamar a la línea de ayuda (%s)", h.Phone),
	}
	if withMessage {
		rows = append(rows, "  w  Enviar WhatsApp de apoyo")
	}
	if h.VideoURL != "" {
		rows = append(rows, "  v  Video de respiración guiada")
	}
	if h.GuideURL != "" {
		rows = append(rows, "  g  Guía de primeros auxilios psicológicos (OMS)")
	}
	return alertPanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
