package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/workbench/internal/ui/style"
)

var (
	colorWhite = lipgloss.Color("#FFFFFF")

	listStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(style.Slate).
			MarginRight(1).
			PaddingRight(1)

	logStyle = lipgloss.NewStyle().
			PaddingLeft(1)

	targetPendingStyle = lipgloss.NewStyle().
				Foreground(style.Slate)

	targetRunningStyle = lipgloss.NewStyle().
				Foreground(style.Iris).
				Bold(true)

	targetDoneStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	targetSkippedStyle = lipgloss.NewStyle().
				Foreground(style.Slate).
				Faint(true)

	targetPartialStyle = lipgloss.NewStyle().
				Foreground(style.Yellow)

	targetErrorStyle = lipgloss.NewStyle().
				Foreground(style.Red)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(colorWhite)
)
