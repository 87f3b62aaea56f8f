package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/taskboard/internal/notify"
	"github.com/nibzard/taskboard/internal/task"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	formStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 2)

	toastBase = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

func badgeStyle(c task.Category) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	switch c {
	case task.CategoryUrgent:
		return base.Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160"))
	case task.CategoryWork:
		return base.Foreground(lipgloss.Color("231")).Background(lipgloss.Color("33"))
	default:
		return base.Foreground(lipgloss.Color("231")).Background(lipgloss.Color("35"))
	}
}

func toastStyle(k notify.Kind) (lipgloss.Style, string) {
	switch k {
	case notify.KindSuccess:
		return toastBase.BorderForeground(lipgloss.Color("35")), "✓"
	case notify.KindError:
		return toastBase.BorderForeground(lipgloss.Color("196")), "✗"
	default:
		return toastBase.BorderForeground(lipgloss.Color("33")), "i"
	}
}
