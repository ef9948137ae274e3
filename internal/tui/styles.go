package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todo/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	frameStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
)

const (
	boxChecked   = "☑"
	boxUnchecked = "☐"
	boxActive    = "◪"
)

func statusBox(s model.Status) string {
	switch s {
	case model.StatusDone:
		return successStyle.Render(boxChecked)
	case model.StatusInProgress:
		return activeStyle.Render(boxActive)
	}
	return mutedStyle.Render(boxUnchecked)
}
