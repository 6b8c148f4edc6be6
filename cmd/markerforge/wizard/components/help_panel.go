package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/markerforge/cmd/markerforge/wizard/help"
)

var (
	helpPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1)

	helpTitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("63")).
		Bold(true)

	helpDescStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	helpDetailStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	helpValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))
)

const minHelpWidth = 30

// HelpPanel explains the focused form field and echoes its current value.
type HelpPanel struct {
	field string
	value string
	width int
}

// NewHelpPanel creates a help panel with no field focused.
func NewHelpPanel() *HelpPanel {
	return &HelpPanel{width: 64}
}

// Focus selects the field to explain. value is the field's current content;
// nil or empty values are not shown.
func (h *HelpPanel) Focus(field string, value any) {
	h.field = field
	h.value = ""
	if value != nil {
		h.value = fmt.Sprint(value)
	}
}

// SetWidth resizes the panel, never below minHelpWidth.
func (h *HelpPanel) SetWidth(width int) {
	h.width = max(width, minHelpWidth)
}

// View renders the help panel.
func (h *HelpPanel) View() string {
	style := helpPanelStyle.Width(h.width - 2)

	text, ok := help.Texts[h.field]
	if !ok {
		return style.Render(helpDetailStyle.Render("Move to a field to see what it does"))
	}

	lines := []string{
		helpTitleStyle.Render(text.Title) + "  " + helpDescStyle.Render(text.Description),
		"",
		helpDetailStyle.Render(text.Details),
	}
	if h.value != "" {
		lines = append(lines, "", helpDetailStyle.Render("Current: ")+helpValueStyle.Render(h.value))
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
